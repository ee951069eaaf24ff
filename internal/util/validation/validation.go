package validation

import (
	"fmt"

	tasks_enums "taskflow/internal/features/tasks/enums"
	users_enums "taskflow/internal/features/users/enums"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain enum rules to gin's binding validator:
// `binding:"project_role"`, `binding:"task_priority"` and `binding:"task_status"`.
// Empty values pass, combine with `required` when the field is mandatory.
func RegisterValidators() error {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}

	return Register(validate)
}

func Register(validate *validator.Validate) error {
	rules := map[string]validator.Func{
		"project_role": func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == "" || users_enums.ProjectRole(value).IsValid()
		},
		"task_priority": func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == "" || tasks_enums.TaskPriority(value).IsValid()
		},
		"task_status": func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == "" || tasks_enums.TaskStatus(value).IsValid()
		},
	}

	for tag, rule := range rules {
		if err := validate.RegisterValidation(tag, rule); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}

	return nil
}
