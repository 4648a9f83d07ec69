// @title trackme API
// @version 1.0
// @description Personal coding-problem tracker: Google login, a shared LeetCode / GeeksforGeeks catalog and per-user revision history.
// @contact.name API Support
// @host localhost:5000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_TOKEN' to authorize. The session cookie is accepted as well.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"trackme/internal/adapter"
	"trackme/internal/cache"
	"trackme/internal/config"
	"trackme/internal/database"
	"trackme/internal/handler"
	"trackme/internal/logger"
	"trackme/internal/middleware"
	"trackme/internal/repository"
	"trackme/internal/service"

	_ "trackme/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Connect to MongoDB and apply index migrations
	mongoClient, db, err := database.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := database.RunMigrations(mongoClient, cfg.Mongo.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize Redis Client
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize repositories
	problemRepository := repository.NewMongoProblemRepository(db)
	userProblemRepository := repository.NewMongoUserProblemRepository(db)
	userRepository := repository.NewMongoUserRepository(db)

	// Initialize the auth bridge
	sessionStore := service.NewSessionStore(cacheAdapter, cfg.Auth.SessionTTL)
	tokenStore := service.NewMemoryTokenStore(cfg.Auth.TokenTTL)
	stateSigner := service.NewStateSigner(cfg.Auth.StateSecret, cfg.Auth.StateTTL)
	identityResolver := service.NewIdentityResolver(sessionStore, tokenStore, userRepository)
	authService := service.NewAuthService(
		adapter.NewGoogleOAuthAdapter(cfg.GoogleOAuth),
		userRepository,
		sessionStore,
		tokenStore,
		stateSigner,
	)
	appLogger.Info("AuthService initialized")

	// Initialize services
	catalogService := service.NewCatalogService(
		problemRepository,
		adapter.NewLeetCodeFetcher(cfg.Fetcher),
		adapter.NewGFGFetcher(cfg.Fetcher),
	)
	trackingService := service.NewTrackingService(catalogService, problemRepository, userProblemRepository)
	userService := service.NewUserService(userRepository)

	router := &handler.Router{
		Resolver:          identityResolver,
		SessionCookieName: cfg.Auth.SessionCookieName,
		Auth:              handler.NewAuthHandler(authService, cfg.Auth, cfg.ClientURL),
		User:              handler.NewUserHandler(userService),
		Problem:           handler.NewProblemHandler(catalogService, trackingService),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"mongo": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
			"redis": cacheAdapter.Ping,
		}),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	router.Register(app)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	tokenStore.Close()
	if err := database.DisconnectMongo(mongoClient); err != nil {
		appLogger.Error("Failed to disconnect MongoDB", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		appLogger.Error("Failed to close Redis client", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
