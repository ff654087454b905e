package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edugenius/edugenius-api/internal/config"
	"github.com/edugenius/edugenius-api/internal/database"
	"github.com/edugenius/edugenius-api/internal/handler"
	"github.com/edugenius/edugenius-api/internal/middleware"
	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/internal/repository"
	"github.com/edugenius/edugenius-api/internal/router"
	"github.com/edugenius/edugenius-api/internal/service"
	"github.com/edugenius/edugenius-api/pkg/ai"
	cloud "github.com/edugenius/edugenius-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.StudyMaterial{}, &models.StudyPlan{}, &models.Quiz{}, &models.Activity{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// The dashboard cache degrades to direct reads when redis is unavailable.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, dashboard caching disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// Activity events are best effort; the API runs without a broker.
	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, activity events disabled")
			natsConn = nil
		} else {
			defer natsConn.Close()
		}
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.OpenAIModel,
		MaxTokens:      cfg.AIMaxTokens,
		RequestTimeout: cfg.AIRequestTimeout,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("failed to create ai generator: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	planRepo := repository.NewStudyPlanRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	activityService := service.NewActivityService(activityRepo, natsConn, cfg.AppName, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.JWTTTL, logger)
	userService := service.NewUserService(userRepo, generator, validate, logger)
	materialService := service.NewMaterialService(materialRepo, generator, uploader, validate, activityService, logger)
	planService := service.NewStudyPlanService(planRepo, materialRepo, generator, validate, activityService, logger)
	quizService := service.NewQuizService(quizRepo, materialRepo, generator, validate, activityService, logger)
	predictionService := service.NewPredictionService(quizRepo, generator, logger)
	dashboardService := service.NewDashboardService(userRepo, materialRepo, quizRepo, planRepo, redisClient, cfg.DashboardCacheTTL, logger)

	authHandler := handler.NewAuthHandler(authService, userService, logger)
	userHandler := handler.NewUserHandler(userService, dashboardService, activityService, logger)
	materialHandler := handler.NewMaterialHandler(materialService, logger)
	planHandler := handler.NewStudyPlanHandler(planService, logger)
	quizHandler := handler.NewQuizHandler(quizService, predictionService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    25 * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:      authHandler,
		UserHandler:      userHandler,
		MaterialHandler:  materialHandler,
		StudyPlanHandler: planHandler,
		QuizHandler:      quizHandler,
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
