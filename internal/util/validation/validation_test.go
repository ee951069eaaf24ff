package validation

import (
	"testing"

	tasks_enums "taskflow/internal/features/tasks/enums"
	users_enums "taskflow/internal/features/users/enums"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Role     users_enums.ProjectRole  `validate:"required,project_role"`
	Priority tasks_enums.TaskPriority `validate:"task_priority"`
	Status   *tasks_enums.TaskStatus  `validate:"omitempty,task_status"`
}

func Test_Register_WithKnownValues_Passes(t *testing.T) {
	validate := validator.New()
	assert.NoError(t, Register(validate))

	status := tasks_enums.TaskStatusDone
	err := validate.Struct(sample{
		Role:     users_enums.ProjectRoleViewer,
		Priority: tasks_enums.TaskPriorityUrgent,
		Status:   &status,
	})

	assert.NoError(t, err)
}

func Test_Register_WithEmptyOptionalValues_Passes(t *testing.T) {
	validate := validator.New()
	assert.NoError(t, Register(validate))

	assert.NoError(t, validate.Struct(sample{Role: users_enums.ProjectRoleMember}))
}

func Test_Register_WithUnknownValues_FailsOnEachField(t *testing.T) {
	validate := validator.New()
	assert.NoError(t, Register(validate))

	status := tasks_enums.TaskStatus("blocked")
	err := validate.Struct(sample{
		Role:     "SUPERUSER",
		Priority: "critical",
		Status:   &status,
	})

	var validationErrors validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrors)
	assert.Len(t, validationErrors, 3)
}
