package main

import (
	"alcyxob/adaptive-coach/internal/api"
	"alcyxob/adaptive-coach/internal/config"
	"alcyxob/adaptive-coach/internal/engine"
	"alcyxob/adaptive-coach/internal/logging"
	"alcyxob/adaptive-coach/internal/repository/mongo"
	"alcyxob/adaptive-coach/internal/service"
	"alcyxob/adaptive-coach/internal/storage"
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title Adaptive Coach API
// @version 1.0
// @description Adaptive workout generation: profiles, exercise catalog, workouts and adaptations.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configDir := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		logrus.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.SetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   true,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})

	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("starting adaptive coach server...")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.Fatalf("could not connect to MongoDB: %s", err)
	}
	defer func() {
		logrus.Info("disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logrus.Errorf("failed to disconnect MongoDB: %s", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logrus.WithField("database", cfg.Database.Name).Info("database connection established")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
	}()

	// --- Storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			logrus.Fatalf("failed to initialize S3 storage: %s", err)
		}
	} else {
		logrus.Warn("s3.bucket_name is not set, exercise media is disabled")
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	adaptationRepo := mongo.NewMongoAdaptationRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)

	// --- Services ---
	eng := engine.New()
	settings := service.EngineSettings{
		DefaultTargetMinutes: cfg.Engine.DefaultTargetMinutes,
		WindowDays:           cfg.Engine.WindowDays,
		HistoryLimit:         cfg.Engine.HistoryLimit,
	}
	services := api.Services{
		Auth:       service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Profile:    service.NewProfileService(userRepo),
		Exercise:   service.NewExerciseService(exerciseRepo, fileStorage),
		Workout:    service.NewWorkoutService(userRepo, exerciseRepo, workoutRepo, progressRepo, eng, settings),
		Adaptation: service.NewAdaptationService(userRepo, exerciseRepo, workoutRepo, adaptationRepo, eng, settings),
	}

	if logging.GetLevel(cfg.Log.Level) < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, cfg.JWT.Secret, services)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen and serve: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.Errorf("server forced to shutdown: %s", err)
	}
	logrus.Info("server exiting")
}
