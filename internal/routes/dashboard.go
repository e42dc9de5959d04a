package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-dashboard/internal/authz"
	"sales-dashboard/internal/controllers"
	"sales-dashboard/internal/services"
	"sales-dashboard/pkg/middleware"
)

func runDashboardRouter(secureGroup *echo.Group, dashboardService services.DashboardServiceInterface, location *time.Location, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	dashCtrl := controllers.NewDashboardController(dashboardService, location, logger)
	reportCtrl := controllers.NewReportController(dashboardService, location, logger)

	secureGroup.GET("/dashboard", dashCtrl.GetDashboard, authMW.Require(authz.DashboardView))
	secureGroup.GET("/dashboard/export", reportCtrl.ExportDashboard, authMW.Require(authz.DashboardExport))
	secureGroup.GET("/my-goals", dashCtrl.GetMyGoals, authMW.Require(authz.GoalsViewOwn))
}
