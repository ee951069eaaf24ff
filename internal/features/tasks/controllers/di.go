package tasks_controllers

import (
	tasks_services "taskflow/internal/features/tasks/services"
)

var taskController = &TaskController{
	tasks_services.GetTaskService(),
}

func GetTaskController() *TaskController {
	return taskController
}
