package activities

import "fmt"

// ActivityMessage renders the feed line shown for an activity.
func ActivityMessage(activityType ActivityType, entity EntityType, userName *string, details *string) string {
	name := "Someone"
	if userName != nil && *userName != "" {
		name = *userName
	}

	switch activityType {
	case ActivityTypeCreated:
		return fmt.Sprintf("%s created a %s", name, entity)
	case ActivityTypeUpdated:
		return fmt.Sprintf("%s updated a %s", name, entity)
	case ActivityTypeDeleted:
		return fmt.Sprintf("%s deleted a %s", name, entity)
	case ActivityTypeMoved:
		if details != nil && *details != "" {
			return fmt.Sprintf("%s moved a %s %s", name, entity, *details)
		}
		return fmt.Sprintf("%s moved a %s", name, entity)
	case ActivityTypeAssigned:
		return fmt.Sprintf("%s assigned a %s", name, entity)
	case ActivityTypeUnassigned:
		return fmt.Sprintf("%s unassigned a %s", name, entity)
	case ActivityTypeCompleted:
		return fmt.Sprintf("%s completed a %s", name, entity)
	case ActivityTypeCommented:
		return fmt.Sprintf("%s commented on a %s", name, entity)
	case ActivityTypeAttached:
		return fmt.Sprintf("%s attached a file to a %s", name, entity)
	case ActivityTypeMemberAdded:
		return fmt.Sprintf("%s added a member to the project", name)
	case ActivityTypeMemberRemoved:
		return fmt.Sprintf("%s removed a member from the project", name)
	case ActivityTypeRoleChanged:
		return fmt.Sprintf("%s changed a member's role", name)
	default:
		return fmt.Sprintf("%s performed an action on a %s", name, entity)
	}
}
