package routes

import (
	"log"
	"strconv"

	_ "tumblecup_admin/docs" // This will be auto-generated
	"tumblecup_admin/internal/adapter/http/handlers"
	"tumblecup_admin/internal/adapter/http/middleware"
	repository2 "tumblecup_admin/internal/adapter/persistence/repository"
	"tumblecup_admin/internal/config"
	"tumblecup_admin/internal/infrastructure/database"
	"tumblecup_admin/internal/infrastructure/mail"
	"tumblecup_admin/internal/usecase"
	"tumblecup_admin/internal/usecase/interfaces"
	"tumblecup_admin/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.NewLogger(cfg.LogLevel)

	setMiddlewares(l)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg, l)

	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg *config.Config, l logger.Logger) {
	orderRepo := newOrderRepository(cfg, l)

	var notifier interfaces.INotifier
	smtpNotifier, err := mail.NewSMTPNotifier(cfg.SMTP, l)
	if err != nil {
		l.Warn("Mail notifier not configured, customer notifications disabled", "error", err)
	} else {
		notifier = smtpNotifier
	}

	orderUseCase := usecase.NewOrderUseCase(orderRepo, notifier, l)
	analyticsUseCase := usecase.NewAnalyticsUseCase(orderUseCase, l)

	orderHandler := handlers.NewOrderHandler(orderUseCase)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Everything past the health check requires the shared admin secret.
	admin := v1.Group("", middleware.AdminAuth(cfg.AdminSecret))
	addOrderRoutes(admin, orderHandler, analyticsHandler)
}

// newOrderRepository selects the backing store from configuration. Both
// backends satisfy the same contract, so nothing above this point knows
// which one is active.
func newOrderRepository(cfg *config.Config, l logger.Logger) interfaces.IOrderRepository {
	switch cfg.Backend {
	case config.BackendPostgres:
		pg, err := database.ConnectPostgres(cfg, l)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}
		if err := pg.EnsureSchema(); err != nil {
			log.Fatalf("Failed to prepare orders schema: %v", err)
		}
		return repository2.NewOrderPostgresRepository(pg, cfg.StoreTimeout, l)
	default:
		ddb := database.ConnectDynamoDB(cfg.Dynamo)
		return repository2.NewOrderDynamoRepository(ddb, cfg.Dynamo.OrdersTable, cfg.StoreTimeout)
	}
}

func setMiddlewares(l logger.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		l.Error("Recovered from panic", "panic", recovered)
		c.AbortWithStatus(500)
	}))
}
