package projects_models

import (
	"time"

	tasks_enums "taskflow/internal/features/tasks/enums"
	tasks_models "taskflow/internal/features/tasks/models"

	"github.com/google/uuid"
)

type Board struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	Title     string                  `json:"title"     gorm:"column:title"`
	Position  int                     `json:"position"  gorm:"column:position"`
	ProjectID uuid.UUID               `json:"projectId" gorm:"column:project_id"`
	Status    *tasks_enums.TaskStatus `json:"status"    gorm:"column:status"`
	CreatedAt time.Time               `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time               `json:"updatedAt" gorm:"column:updated_at"`

	Tasks []tasks_models.Task `json:"tasks,omitempty" gorm:"foreignKey:BoardID"`
}

func (Board) TableName() string {
	return "boards"
}

type defaultBoard struct {
	title  string
	status tasks_enums.TaskStatus
}

var defaultBoards = []defaultBoard{
	{title: "To Do", status: tasks_enums.TaskStatusTodo},
	{title: "In Progress", status: tasks_enums.TaskStatusInProgress},
	{title: "Done", status: tasks_enums.TaskStatusDone},
}

// NewDefaultBoards returns the boards every new project starts with,
// positioned 0..2 and mapped to the matching task status.
func NewDefaultBoards(projectID uuid.UUID, now time.Time) []Board {
	boards := make([]Board, 0, len(defaultBoards))

	for i, board := range defaultBoards {
		status := board.status
		boards = append(boards, Board{
			ID:        uuid.New(),
			Title:     board.title,
			Position:  i,
			ProjectID: projectID,
			Status:    &status,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return boards
}
