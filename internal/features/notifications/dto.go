package notifications

type GetNotificationsRequest struct {
	UnreadOnly bool `form:"unreadOnly" json:"unreadOnly"`
	Limit      int  `form:"limit"      json:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int64           `json:"unreadCount"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}
