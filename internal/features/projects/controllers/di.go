package projects_controllers

import (
	projects_services "taskflow/internal/features/projects/services"
)

var projectController = &ProjectController{
	projects_services.GetProjectService(),
}

var membershipController = &MembershipController{
	projects_services.GetMembershipService(),
}

var boardController = &BoardController{
	projects_services.GetBoardService(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetMembershipController() *MembershipController {
	return membershipController
}

func GetBoardController() *BoardController {
	return boardController
}
