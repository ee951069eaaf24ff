package projects_services

import (
	"taskflow/internal/features/activities"
	"taskflow/internal/features/notifications"
	projects_interfaces "taskflow/internal/features/projects/interfaces"
	projects_repositories "taskflow/internal/features/projects/repositories"
	users_services "taskflow/internal/features/users/services"
	"taskflow/internal/util/logger"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}
var boardRepository = &projects_repositories.BoardRepository{}

var accessService = &AccessService{
	projectRepository,
	membershipRepository,
}

var projectService = &ProjectService{
	projectRepository,
	membershipRepository,
	boardRepository,
	accessService,
	users_services.GetUserService(),
	activities.GetActivityService(),
	logger.GetLogger(),
	[]projects_interfaces.ProjectDeletionListener{},
}

var membershipService = &MembershipService{
	membershipRepository,
	projectRepository,
	accessService,
	users_services.GetUserService(),
	activities.GetActivityService(),
	notifications.GetNotificationService(),
	nil,
	logger.GetLogger(),
}

var boardService = &BoardService{
	boardRepository,
	accessService,
	activities.GetActivityService(),
	logger.GetLogger(),
	[]projects_interfaces.BoardDeletionListener{},
}

func GetAccessService() *AccessService {
	return accessService
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}

func GetBoardService() *BoardService {
	return boardService
}
