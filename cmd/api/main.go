package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/handlers"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
	"alfredoptarigan/interview-coach/internal/services/catalog"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	logStore, err := initLogStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize log store: %v", err)
	}
	log.Printf("✅ Log store initialized (%s)\n", cfg.Logs.Backend)

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	questionCatalog, err := catalog.Load(cfg.Questions.CatalogPath)
	if err != nil {
		log.Fatalf("❌ Failed to load question catalog: %v", err)
	}
	log.Println("✅ Question catalog loaded")

	promptBuilder := services.NewPromptBuilder()
	remotes := map[string]services.QuestionGenerator{}

	var geminiService services.GeminiService
	if cfg.Gemini.Enabled() {
		geminiService, err = services.NewGeminiService(cfg.Gemini)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		remotes[services.SourceGemini] = services.NewGeminiQuestionGenerator(geminiService, promptBuilder)
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️ GEMINI_API_KEY not set, remote questions, feedback and speech are disabled")
	}

	var questionBank services.QuestionBank
	if cfg.Qdrant.URL != "" && geminiService != nil {
		questionBank, err = services.NewQuestionBank(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		initCtx, cancel := context.WithTimeout(context.Background(), cfg.Gemini.RemoteTimeout)
		err = questionBank.InitCollection(initCtx)
		cancel()
		if err != nil {
			log.Printf("⚠️ Qdrant unavailable, question bank disabled: %v\n", err)
			questionBank.Close()
			questionBank = nil
		} else {
			remotes[services.SourceBank] = services.NewBankQuestionGenerator(geminiService, questionBank, services.NewTextChunker(), promptBuilder)
			log.Println("✅ Qdrant question bank initialized successfully")
		}
	}

	sessionStore := services.NewSessionStore()
	answerCollector := services.NewAnswerCollector(sessionStore)
	feedbackEngine := services.NewFeedbackEngine()
	textExtractor := services.NewTextExtractor()
	questionProvider := services.NewQuestionProvider(
		questionCatalog,
		cfg.Questions.GenericFieldFallback,
		cfg.Gemini.RemoteTimeout,
		cfg.Questions.DefaultCount,
		remotes,
	)
	interviewService := services.NewInterviewService(
		sessionStore,
		questionProvider,
		feedbackEngine,
		logStore,
		storageService,
		textExtractor,
		cfg.Storage.KeepResumes,
	)
	coachService := services.NewCoachService(geminiService, promptBuilder, cfg.Gemini.RemoteTimeout)
	log.Println("✅ Services initialized successfully")

	sweeper := services.NewSessionSweeper(sessionStore, cfg.Sessions.IdleTTL, cfg.Sessions.SweepInterval)
	sweeper.Start(context.Background())

	h := &handlers.Handlers{
		Session:  handlers.NewSessionHandler(interviewService, sessionStore, answerCollector),
		Upload:   handlers.NewUploadHandler(interviewService, cfg.Storage.MaxFileSize),
		Question: handlers.NewQuestionHandler(questionProvider, textExtractor),
		Feedback: handlers.NewFeedbackHandler(interviewService, coachService),
		Log:      handlers.NewLogHandler(logStore, services.NewLogExporter(), feedbackEngine),
	}
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "Interview Coach API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	h.Register(app.Group("/api/v1"))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview Coach API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/sessions",
				"POST /api/v1/sessions/upload",
				"POST /api/v1/sessions/:id/questions",
				"GET /api/v1/sessions/:id/question",
				"POST /api/v1/sessions/:id/answers",
				"POST /api/v1/sessions/:id/complete",
				"GET /api/v1/feedback/:candidate",
				"GET /api/v1/fields",
				"GET /api/v1/exports/logs",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		sweeper.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		if questionBank != nil {
			questionBank.Close()
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func initLogStore(cfg *config.Config) (repositories.LogStore, error) {
	if cfg.Logs.Backend == config.LogBackendPostgres {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return repositories.NewInterviewLogRepository(db), nil
	}
	return repositories.NewFileLogStore(cfg.Logs.FilePath)
}
