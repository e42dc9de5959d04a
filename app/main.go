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

	"sales-dashboard/internal/analytics"
	"sales-dashboard/internal/listeners"
	"sales-dashboard/internal/realtime"
	"sales-dashboard/internal/routes"
	"sales-dashboard/pkg/config"
	"sales-dashboard/pkg/customvalidator"
	"sales-dashboard/pkg/database/postgresql"
	apperrors "sales-dashboard/pkg/errors"
	"sales-dashboard/pkg/eventbus"
	applogger "sales-dashboard/pkg/logger"
	appmiddleware "sales-dashboard/pkg/middleware"
	"sales-dashboard/pkg/service"
	"sales-dashboard/pkg/utils"
	"sales-dashboard/pkg/websocket"
)

func main() {
	cfg := config.New()

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger()
	defer logger.Sync()

	loggers := &routes.Loggers{
		Main:    logger,
		Auth:    logger.Named("auth"),
		Webhook: logger.Named("webhook"),
	}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! PANIC DETECTADO !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Erro interno do servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))
	e.Use(appmiddleware.InjectLogger(logger))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Erro ao registrar regras de validação", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()
	if err := postgresql.Migrate(dbConn); err != nil {
		logger.Fatal("falha ao aplicar migrações", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("não foi possível conectar ao Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(logger)
	hub := websocket.NewHub(logger)
	go hub.Run()

	if cfg.Webhook.Secret == "" {
		logger.Warn("WEBHOOK_SECRET não configurado, /api/activity, /api/agendamento e /api/call-status responderão 401")
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)
	svcs := routes.BuildServices(dbConn, redisClient, bus, jwtSvc, cfg, loggers)

	dashboardListener := listeners.NewDashboardListener(svcs.Dashboard, hub, analytics.NewCelebrationTracker(), cfg.Realtime.Debounce, logger).
		InLocation(cfg.Dashboard.Location)
	dashboardListener.Register(bus)

	if cfg.Realtime.ListenToPG {
		go realtime.NewPGListener(dbConn, bus, logger).Run(ctx)
	}

	routes.InitRouter(e, svcs, hub, jwtSvc, cfg, loggers)

	go func() {
		logger.Info("🚀 Servidor iniciado", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Erro ao iniciar o servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("erro ao encerrar o servidor", zap.Error(err))
	}
	logger.Info("servidor encerrado")
}
