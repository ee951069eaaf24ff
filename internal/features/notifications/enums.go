package notifications

type NotificationType string

const (
	NotificationTypeTeamInvite         NotificationType = "TEAM_INVITE"
	NotificationTypeRoleChanged        NotificationType = "ROLE_CHANGED"
	NotificationTypeRemovedFromProject NotificationType = "REMOVED_FROM_PROJECT"
	NotificationTypeTaskAssigned       NotificationType = "TASK_ASSIGNED"
	NotificationTypeTaskComment        NotificationType = "TASK_COMMENT"
)
