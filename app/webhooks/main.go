package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"sales-dashboard/internal/repositories"
	"sales-dashboard/internal/routes"
	"sales-dashboard/internal/services"
	"sales-dashboard/pkg/config"
	"sales-dashboard/pkg/customvalidator"
	"sales-dashboard/pkg/database/postgresql"
	"sales-dashboard/pkg/eventbus"
	applogger "sales-dashboard/pkg/logger"
	appmiddleware "sales-dashboard/pkg/middleware"
	"sales-dashboard/pkg/utils"
)

// Standalone receiver for the collaborator webhooks. Dashboard refreshes reach
// the main API through the crm_changes notifications.
func main() {
	cfg := config.New()

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger().Named("webhook")
	defer logger.Sync()

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(appmiddleware.InjectLogger(logger))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Erro ao registrar regras de validação", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	if cfg.Webhook.Secret == "" {
		logger.Fatal("WEBHOOK_SECRET não configurado, o receptor não pode iniciar")
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	bus := eventbus.New(logger)
	base := services.NewBaseService(repositories.NewRedisCacheRepository(redisClient), bus, logger)
	webhookSvc := services.NewWebhookService(
		repositories.NewTxManager(dbConn),
		repositories.NewActivityRepository(dbConn, logger),
		repositories.NewAppointmentRepository(dbConn, logger),
		repositories.NewWebhookLogRepository(dbConn),
		base,
		logger,
	)

	routes.InitWebhookRouter(e, webhookSvc, cfg.Webhook.Secret, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("🚀 Receptor de webhooks iniciado", zap.String("port", cfg.Server.WebhookPort))
		if err := e.Start(":" + cfg.Server.WebhookPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Erro ao iniciar o receptor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = e.Shutdown(shutdownCtx)
}
