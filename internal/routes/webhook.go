package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-dashboard/internal/controllers"
	"sales-dashboard/internal/services"
	"sales-dashboard/pkg/middleware"
)

func runWebhookRouter(api *echo.Group, webhookService services.WebhookServiceInterface, secret string, logger *zap.Logger) {
	ctrl := controllers.NewWebhookController(webhookService, logger)

	hooks := api.Group("", middleware.WebhookToken(secret, logger))
	hooks.POST("/activity", ctrl.ReceiveActivity)
	hooks.POST("/agendamento", ctrl.ReceiveAgendamento)
	hooks.POST("/call-status", ctrl.ReceiveCallStatus)
}
