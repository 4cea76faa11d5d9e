package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"society-backend-go/internal/api"
	"society-backend-go/internal/config"
	"society-backend-go/internal/core"
	"society-backend-go/internal/db"
	"society-backend-go/internal/middleware"
	"society-backend-go/pkg/cache"
	"society-backend-go/pkg/mailer"
	"society-backend-go/pkg/messagequeue"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load application configuration: %v", err)
	}

	var zapLogger *zap.Logger
	if strings.ToLower(appConfig.GinMode) == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized.")

	firestoreClient := db.GetFirestoreClient()
	if firestoreClient == nil {
		zapLogger.Fatal("Firestore client is nil after initialization.")
	}
	if db.GetFirebaseAuthClient() == nil {
		zapLogger.Fatal("Firebase Auth client is nil after initialization.")
	}

	// Repositories.
	flatRepo := db.NewFirestoreFlatRepository(firestoreClient)
	ownerRepo := db.NewFirestoreOwnerRepository(firestoreClient)
	vehicleRepo := db.NewFirestoreVehicleRepository(firestoreClient)
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	auditRepo := db.NewFirestoreAuditRepository(firestoreClient)
	backupRepo := db.NewFirestoreBackupRepository(firestoreClient)

	// Optional side channels. Their absence disables the feature, not the app.
	var redisCache cache.Cache
	if appConfig.RedisAddress != "" {
		redisCache, err = cache.NewRedisCache(cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddress,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Warn("Redis unavailable; report caching disabled", zap.Error(err))
			redisCache = nil
		}
	}

	var queue messagequeue.MessageQueue
	if appConfig.RabbitMQURL != "" {
		queue, err = messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.RabbitMQURL})
		if err != nil {
			zapLogger.Warn("RabbitMQ unavailable; transfer events disabled", zap.Error(err))
			queue = nil
		} else {
			defer queue.Close()
		}
	}

	var mail *mailer.Mailer
	if appConfig.SMTPUser != "" && appConfig.SMTPPass != "" && appConfig.SMTPSender != "" {
		mail = mailer.NewMailer(appConfig.SMTPUser, appConfig.SMTPPass, appConfig.SMTPSender)
	}

	// Services.
	auditService := core.NewAuditService(auditRepo)
	userService := core.NewUserService(userRepo, auditService)
	flatService := core.NewFlatService(flatRepo, auditService)
	ownerService := core.NewOwnerService(ownerRepo)
	notifier := core.NewNotificationService(queue, appConfig.NotificationsQueue, mail, zapLogger)
	occupancyService := core.NewOccupancyService(flatRepo, ownerRepo, auditService, notifier)
	vehicleService := core.NewVehicleService(vehicleRepo, ownerRepo, flatRepo, auditService)
	reportService := core.NewReportService(
		flatRepo, ownerRepo, vehicleRepo, userRepo,
		occupancyService, redisCache,
		time.Duration(appConfig.StatsCacheTTLSeconds)*time.Second,
		zapLogger,
	)
	backupService := core.NewBackupService(backupRepo, zapLogger)
	zapLogger.Info("Core services initialized.")

	// Scheduled daily backup.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(appConfig.BackupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := backupService.RunDailyBackup(ctx); err != nil {
			zapLogger.Error("Daily backup failed", zap.Error(err))
		}
	}); err != nil {
		zapLogger.Fatal("Invalid backup schedule", zap.String("schedule", appConfig.BackupSchedule), zap.Error(err))
	}
	scheduler.Start()
	zapLogger.Info("Backup scheduler started", zap.String("schedule", appConfig.BackupSchedule))

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	api.RegisterCustomValidators()

	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
	} else {
		zapLogger.Warn("CORS middleware skipped: CLIENT_URL is not configured.")
	}

	api.SetupRoutes(
		router,
		zapLogger,
		userService,
		flatService,
		ownerService,
		occupancyService,
		vehicleService,
		reportService,
	)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
