package activities

type ActivityType string

const (
	ActivityTypeCreated       ActivityType = "created"
	ActivityTypeUpdated       ActivityType = "updated"
	ActivityTypeDeleted       ActivityType = "deleted"
	ActivityTypeMoved         ActivityType = "moved"
	ActivityTypeAssigned      ActivityType = "assigned"
	ActivityTypeUnassigned    ActivityType = "unassigned"
	ActivityTypeCompleted     ActivityType = "completed"
	ActivityTypeCommented     ActivityType = "commented"
	ActivityTypeAttached      ActivityType = "attached"
	ActivityTypeMemberAdded   ActivityType = "member_added"
	ActivityTypeMemberRemoved ActivityType = "member_removed"
	ActivityTypeRoleChanged   ActivityType = "role_changed"
)

type EntityType string

const (
	EntityTypeProject    EntityType = "project"
	EntityTypeBoard      EntityType = "board"
	EntityTypeTask       EntityType = "task"
	EntityTypeComment    EntityType = "comment"
	EntityTypeAttachment EntityType = "attachment"
)
