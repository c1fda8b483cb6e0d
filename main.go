// File: skiply/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"skiply/config"
	"skiply/cron"
	"skiply/database"
	bookingRepo "skiply/database/repository/booking"
	businessRepo "skiply/database/repository/business"
	imageRepo "skiply/database/repository/image"
	userRepoPkg "skiply/database/repository/user"
	"skiply/handlers"
	"skiply/middleware"
	"skiply/routes"
	"skiply/services/queue"
	"skiply/services/storage"
	"skiply/services/user"
	"skiply/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.AppConfig.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database.InitDB()
	utils.InitAuthCache()
	db := database.Database()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo(db)
	businesses := businessRepo.NewMongoBusinessRepo(db)
	users := userRepoPkg.NewMongoUserRepo(db)
	images := imageRepo.NewMongoImageRepo(db)

	// services.
	queueService := queue.NewQueueService(
		bookings,
		businesses,
		queue.LinearEstimator{MinutesPerPerson: config.AppConfig.MinutesPerPerson},
		config.QueueLocation(),
	)
	userService := user.NewUserService(users, businesses)

	cld, err := utils.Cloudinary()
	if err != nil {
		logger.Fatal("main: failed to initialize cloudinary", zap.Error(err))
	}
	imageService := storage.NewImageService(storage.NewStorageService(cld), images, config.AppConfig.CloudinaryFolder)

	authCache := utils.GetAuthCacheClient()
	handlerBundle := &handlers.HandlerBundle{
		UserAuth:     middleware.JWTAuthUserMiddleware(users, authCache, config.AppConfig.JWTSecret),
		BusinessOnly: middleware.BusinessOnly(),
		AdminOnly:    middleware.AdminOnly(),

		Queue:   handlers.NewQueueHandler(queueService),
		User:    handlers.NewUserHandler(userService, imageService),
		Storage: handlers.NewStorageHandler(imageService),
		Health:  handlers.HealthHandler(utils.GetHealthStatus),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	var redisClients []*redis.Client
	if authCache != nil {
		redisClients = append(redisClients, authCache)
	}
	utils.StartHealthMonitor(ctx, redisClients, database.MongoClient)

	var sweeper *cron.SweepWorker
	if config.AppConfig.SweepEnabled {
		sweeper, err = cron.InitSweepWorker(queueService)
		if err != nil {
			logger.Error("main: sweep worker disabled", zap.Error(err))
		}
	}

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if sweeper != nil {
		sweeper.Shutdown()
	}
	if authCache != nil {
		_ = authCache.Close()
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Error("main: failed to disconnect mongo", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
}
