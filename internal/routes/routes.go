package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-dashboard/internal/controllers"
	"sales-dashboard/internal/repositories"
	"sales-dashboard/internal/services"
	"sales-dashboard/pkg/config"
	"sales-dashboard/pkg/eventbus"
	"sales-dashboard/pkg/middleware"
	"sales-dashboard/pkg/service"
	"sales-dashboard/pkg/websocket"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Webhook *zap.Logger
}

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth         services.AuthServiceInterface
	Dashboard    services.DashboardServiceInterface
	Webhook      services.WebhookServiceInterface
	Profiles     services.ProfileServiceInterface
	Goals        services.GoalServiceInterface
	Appointments services.AppointmentServiceInterface
}

// BuildServices wires repositories and services on top of Postgres and Redis.
func BuildServices(dbConn *pgxpool.Pool, redisClient *redis.Client, bus *eventbus.Bus, jwtSvc service.JWTService, cfg *config.Config, loggers *Loggers) *Services {
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	activityRepo := repositories.NewActivityRepository(dbConn, loggers.Main)
	appointmentRepo := repositories.NewAppointmentRepository(dbConn, loggers.Main)
	profileRepo := repositories.NewProfileRepository(dbConn, loggers.Main)
	goalRepo := repositories.NewUserGoalRepository(dbConn)
	taskTypeRepo := repositories.NewTaskTypeRepository(dbConn)
	companyGoalsRepo := repositories.NewCompanyGoalsRepository(dbConn)
	webhookLogRepo := repositories.NewWebhookLogRepository(dbConn)

	base := services.NewBaseService(cacheRepo, bus, loggers.Main)

	return &Services{
		Auth: services.NewAuthService(profileRepo, cacheRepo, jwtSvc, cfg.Auth, loggers.Auth),
		Dashboard: services.NewDashboardService(services.DashboardRepositories{
			Activities:   activityRepo,
			Appointments: appointmentRepo,
			Profiles:     profileRepo,
			Goals:        goalRepo,
			TaskTypes:    taskTypeRepo,
			CompanyGoals: companyGoalsRepo,
		}, base, cfg.Dashboard.Location, cfg.Dashboard.CacheTTL, loggers.Main),
		Webhook:      services.NewWebhookService(txManager, activityRepo, appointmentRepo, webhookLogRepo, base, loggers.Webhook),
		Profiles:     services.NewProfileService(txManager, profileRepo, goalRepo, taskTypeRepo, base, loggers.Main),
		Goals:        services.NewGoalService(txManager, taskTypeRepo, goalRepo, profileRepo, companyGoalsRepo, base, loggers.Main),
		Appointments: services.NewAppointmentService(txManager, appointmentRepo, base, loggers.Main),
	}
}

// InitRouter registers the full API: auth, dashboard, admin, webhooks and the websocket.
func InitRouter(e *echo.Echo, svcs *Services, hub *websocket.Hub, jwtSvc service.JWTService, cfg *config.Config, loggers *Loggers) {
	loggers.Main.Info("InitRouter: registrando rotas")

	e.GET("/health", controllers.Health)
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, svcs.Auth, loggers.Auth)

	runAuthRouter(api, svcs.Auth, loggers.Auth, authMW)
	runWebhookRouter(api, svcs.Webhook, cfg.Webhook.Secret, loggers.Webhook)

	secureGroup := api.Group("", authMW.Auth)
	runDashboardRouter(secureGroup, svcs.Dashboard, cfg.Dashboard.Location, loggers.Main, authMW)
	runAdminRouter(secureGroup, svcs, loggers.Main, authMW)

	if hub != nil {
		wsCtrl := controllers.NewWebSocketController(hub, jwtSvc, svcs.Auth, loggers.Main)
		e.GET("/ws", wsCtrl.ServeWs)
	}

	loggers.Main.Info("InitRouter: rotas registradas")
}

// InitWebhookRouter registers only the collaborator endpoints, for the standalone receiver.
func InitWebhookRouter(e *echo.Echo, webhookService services.WebhookServiceInterface, secret string, logger *zap.Logger) {
	e.GET("/health", controllers.Health)
	runWebhookRouter(e.Group("/api"), webhookService, secret, logger)
}
