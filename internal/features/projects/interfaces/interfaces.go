package projects_interfaces

import "github.com/google/uuid"

// DeletionCleanup runs once the rows are gone. It cannot fail the deletion.
type DeletionCleanup func()

// ProjectDeletionListener prepares for a project deletion. An error aborts
// the deletion. The returned cleanup, if any, runs after the delete succeeds.
type ProjectDeletionListener interface {
	OnBeforeProjectDeletion(projectID uuid.UUID) (DeletionCleanup, error)
}

type BoardDeletionListener interface {
	OnBeforeBoardDeletion(boardID uuid.UUID) (DeletionCleanup, error)
}

type InviteEmailSender interface {
	SendTeamInviteEmail(to string, inviterName string, projectTitle string, role string, projectURL string)
}
