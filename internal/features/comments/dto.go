package comments

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

type ListCommentsResponse struct {
	Comments []*Comment `json:"comments"`
}
