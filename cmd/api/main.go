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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/validator"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/handler"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/infrastructure/cache"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/infrastructure/database"
	httpmw "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/infrastructure/http/middleware"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/infrastructure/storage"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/audit"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/board"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/directory"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/draft"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/meeting"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/workitem"
	pkgai "github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/ai"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/config"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis-backed cache, falling back to in-memory
	log.Println("📦 Connecting to Redis...")
	var store cache.Store
	redisStore, err := cache.NewRedisStore(cfg)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		store = cache.NewMemoryStore()
	} else {
		defer redisStore.Close()
		store = redisStore
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	scorecardRepo := repository.NewScorecardRepository(db)
	rockRepo := repository.NewRockRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	recorder := audit.NewRecorder()

	// Initialize snapshot storage
	log.Println("🗄️  Initializing snapshot storage...")
	var exporter meeting.SnapshotExporter
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		logger.Warn("snapshot storage unavailable, archive exports disabled", zap.Error(err))
	} else {
		exporter = minioClient
	}

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	log.Println("✨ Initializing services...")
	meetingService := meeting.NewService(db, meetingRepo, teamRepo, todoRepo, issueRepo, ratingRepo, recorder, exporter, logger)
	todoService := workitem.NewTodoService(db, todoRepo, meetingRepo, recorder, logger)
	issueService := workitem.NewIssueService(db, issueRepo, meetingRepo, recorder, logger)
	ratingService := workitem.NewRatingService(db, ratingRepo, meetingRepo, recorder, logger)
	scorecardService := workitem.NewScorecardService(db, scorecardRepo, meetingRepo, recorder, logger)
	directoryService := directory.NewService(db, companyRepo, teamRepo, userRepo, rockRepo, recorder, logger)
	boardService := board.NewService(companyRepo, teamRepo, meetingRepo, todoRepo, issueRepo, ratingRepo, rockRepo, store, logger)

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	geminiClient := pkgai.NewGeminiClient(&cfg.AI)
	draftService := draft.NewService(db, draftRepo, meetingRepo, todoRepo, issueRepo, ratingRepo, scorecardRepo, rockRepo, geminiClient, recorder, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	authHandler := handler.NewAuthHandler(userRepo, jwtManager, cfg.Server.Environment, logger)
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	todoHandler := handler.NewTodoHandler(todoService, logger)
	issueHandler := handler.NewIssueHandler(issueService, logger)
	ratingHandler := handler.NewRatingHandler(ratingService, logger)
	scorecardHandler := handler.NewScorecardHandler(scorecardService, logger)
	draftHandler := handler.NewDraftHandler(draftService, logger)
	boardHandler := handler.NewBoardHandler(boardService, draftService, logger)
	auditHandler := handler.NewAuditHandler(auditRepo, logger)
	directoryHandler := handler.NewDirectoryHandler(directoryService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	authMW := httpmw.EchoAuth(jwtManager)
	router := handler.NewRouter(
		cfg,
		authHandler,
		meetingHandler,
		todoHandler,
		issueHandler,
		ratingHandler,
		scorecardHandler,
		draftHandler,
		boardHandler,
		auditHandler,
		directoryHandler,
		authMW,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
