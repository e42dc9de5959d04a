package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-dashboard/internal/authz"
	"sales-dashboard/internal/controllers"
	"sales-dashboard/pkg/middleware"
)

func runAdminRouter(secureGroup *echo.Group, svcs *Services, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewAdminController(svcs.Profiles, svcs.Goals, svcs.Appointments, logger)
	webhookCtrl := controllers.NewWebhookController(svcs.Webhook, logger)

	admin := secureGroup.Group("/admin")
	admin.GET("/profiles", ctrl.ListProfiles, authMW.Require(authz.ProfilesView))
	admin.POST("/profiles", ctrl.CreateProfile, authMW.Require(authz.ProfilesManage))
	admin.PUT("/profiles/:id", ctrl.UpdateProfile, authMW.Require(authz.ProfilesManage))

	admin.GET("/task-types", ctrl.ListTaskTypes, authMW.Require(authz.TaskTypesView))
	admin.POST("/task-types", ctrl.CreateTaskType, authMW.Require(authz.TaskTypesManage))
	admin.PUT("/task-types/:id", ctrl.UpdateTaskType, authMW.Require(authz.TaskTypesManage))
	admin.DELETE("/task-types/:id", ctrl.DeleteTaskType, authMW.Require(authz.TaskTypesManage))

	admin.PUT("/goals", ctrl.UpsertUserGoal, authMW.Require(authz.GoalsManage))
	admin.DELETE("/goals/:id", ctrl.DeleteUserGoal, authMW.Require(authz.GoalsManage))

	admin.GET("/company-goals", ctrl.GetCompanyGoals, authMW.Require(authz.CompanyGoalsManage))
	admin.PUT("/company-goals", ctrl.UpdateCompanyGoals, authMW.Require(authz.CompanyGoalsManage))

	admin.PATCH("/appointments/:id/status", ctrl.UpdateAppointmentStatus, authMW.Require(authz.AppointmentsUpdate))

	admin.GET("/webhook-logs", webhookCtrl.ListLogs, authMW.Require(authz.WebhookLogsView))
}
