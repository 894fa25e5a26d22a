package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pdfquiz/internal/adapter"
	"pdfquiz/internal/cache"
	"pdfquiz/internal/config"
	"pdfquiz/internal/domain"
	"pdfquiz/internal/handler"
	"pdfquiz/internal/logger"
	"pdfquiz/internal/middleware"
	"pdfquiz/internal/pdftext"
	"pdfquiz/internal/quizgen"
	"pdfquiz/internal/service"
	"pdfquiz/internal/session"
	"pdfquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if cfg.Gemini.APIKey == "" {
		appLogger.Fatal("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()
	generator, err := quizgen.NewGeminiGenerator(ctx,
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.CallTimeout,
		cfg.Quiz.AvoidListCap,
	)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}
	appLogger.Info("Quiz generator initialized", zap.String("model", cfg.Gemini.Model))

	extractor := pdftext.NewExtractor()
	sessionStore := session.NewStore(cfg.Session.TTL, cfg.Session.Capacity)
	appLogger.Info("Session store initialized",
		zap.Duration("ttl", cfg.Session.TTL),
		zap.Int("capacity", cfg.Session.Capacity),
	)

	// Result caching is optional; without Redis the service generates
	// every request fresh.
	var resultCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		resultCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Result cache initialized", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Info("Redis not configured; result caching disabled")
	}

	quizService := service.NewQuizService(generator, extractor, sessionStore, resultCache, cfg)
	quizHandler := handler.NewQuizHandler(quizService, validation.NewValidator(), handler.QuizDefaults{
		MCQ:       cfg.Quiz.MCQTarget,
		TF:        cfg.Quiz.TFTarget,
		FIB:       cfg.Quiz.FIBTarget,
		NextBatch: cfg.Quiz.NextBatchSize,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Static("/", "./public")

	app.Get("/healthz", func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok"}
		if resultCache != nil {
			if err := resultCache.Ping(c.Context()); err != nil {
				status["cache"] = "unreachable"
			} else {
				status["cache"] = "ok"
			}
		}
		return c.JSON(status)
	})

	apiGroup := app.Group("/api")
	quizGroup := apiGroup.Group("/quiz")
	quizGroup.Post("/generate", quizHandler.GenerateQuiz)
	quizGroup.Post("/next", quizHandler.NextQuestions)
	quizGroup.Post("/reset", quizHandler.ResetSession)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
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
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
