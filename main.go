package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nmhung1294/INT3505E-02-demo/audit"
	"github.com/nmhung1294/INT3505E-02-demo/auth"
	"github.com/nmhung1294/INT3505E-02-demo/cache"
	"github.com/nmhung1294/INT3505E-02-demo/config"
	"github.com/nmhung1294/INT3505E-02-demo/controller"
	"github.com/nmhung1294/INT3505E-02-demo/db"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/router"
	"github.com/nmhung1294/INT3505E-02-demo/service"
	"github.com/nmhung1294/INT3505E-02-demo/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize the database
	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize utilities
	validationUtil := util.NewValidationUtil()
	responseCache := cache.New(config.GetDuration("cache.defaultTTL"))
	notificationService := util.NewNotificationService(config.GetStringSlice("webhook.urls"))
	notificationService.Register(eventBus)
	var auditService audit.Service
	if auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url")); err != nil {
		logger.Warn("Audit logging disabled", zap.Error(err))
	} else {
		auditService = audit.NewService(auditRepository)
	}

	// Initialize services
	google := service.NewGoogleOAuth(
		config.GetString("google.clientID"),
		config.GetString("google.clientSecret"),
		config.GetString("google.redirectURI"),
		config.GetStringSlice("google.scopes"),
	)
	services := service.InitializeServices(db.DB, auditService, validationUtil, eventBus, service.Config{
		TokenSecret: []byte(config.GetString("auth.secret")),
		TokenTTL:    config.GetDuration("auth.tokenTTL"),
		FinePerDay:  config.GetFloat64("library.finePerDay"),
		Google:      google,
	})

	// Initialize the auth gate; the user service doubles as its principal
	// directory.
	gate, err := auth.NewGate(auth.Config{
		Mode:        config.GetString("auth.mode"),
		Secret:      config.GetString("auth.secret"),
		CookieName:  config.GetString("auth.cookieName"),
		PublicPaths: config.GetStringSlice("auth.publicPaths"),
		Introspection: auth.IntrospectionConfig{
			URL:          config.GetString("oauth2.introspectionURL"),
			ClientID:     config.GetString("oauth2.clientID"),
			ClientSecret: config.GetString("oauth2.clientSecret"),
			SubjectField: config.GetString("oauth2.subjectField"),
			Timeout:      config.GetDuration("oauth2.timeout"),
		},
	}, services.UserService)
	if err != nil {
		logger.Fatal("Failed to initialize auth gate", zap.Error(err))
	}

	// Initialize controllers
	controllers := controller.InitializeControllers(services, responseCache, notificationService, controller.CookieConfig{
		Name:   config.GetString("auth.cookieName"),
		MaxAge: int(config.GetDuration("auth.tokenTTL").Seconds()),
		Secure: config.GetBool("auth.cookieSecure"),
	})

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		controllers,
		gate,
		config.GetInt("server.rateLimit"),
		config.GetDuration("server.rateLimitWindow"),
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
