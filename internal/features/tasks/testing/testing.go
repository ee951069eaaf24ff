package tasks_testing

import (
	projects_dto "taskflow/internal/features/projects/dto"
	projects_testing "taskflow/internal/features/projects/testing"
	tasks_dto "taskflow/internal/features/tasks/dto"
	tasks_models "taskflow/internal/features/tasks/models"
	tasks_services "taskflow/internal/features/tasks/services"
	users_dto "taskflow/internal/features/users/dto"
	users_testing "taskflow/internal/features/users/testing"
)

// CreateTestTask creates a task on the project's "To Do" board as creator.
func CreateTestTask(
	title string,
	project *projects_dto.ProjectDetailsResponseDTO,
	creator *users_dto.SignInResponseDTO,
) *tasks_models.Task {
	task, err := tasks_services.GetTaskService().CreateTask(
		&tasks_dto.CreateTaskRequestDTO{
			Title:   title,
			BoardID: projects_testing.GetBoardIDByTitle(project, "To Do"),
		},
		users_testing.GetTestUser(creator.UserID),
	)
	if err != nil {
		panic(err)
	}

	return task
}
