package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/anuragch/folio/internal/config"
	"github.com/anuragch/folio/internal/database"
	"github.com/anuragch/folio/internal/handlers"
	"github.com/anuragch/folio/internal/middleware"
	"github.com/anuragch/folio/internal/services"
	"github.com/anuragch/folio/internal/types"

	_ "github.com/anuragch/folio/docs/api" // Swagger docs
)

// @title Folio Content API
// @version 1.0.0
// @description Portfolio site content service with local persistence and an optional remote mirror

// @contact.name API Support
// @contact.url https://github.com/anuragch/folio

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// Load .env if present, process env wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect the local store
	localDB, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to local store: %v", err)
	}
	defer database.Close(localDB)

	if err := database.AutoMigrate(localDB); err != nil {
		log.Fatalf("Failed to run local store migrations: %v", err)
	}

	local := services.NewLocalStore(localDB)

	// Open the mirror handle if configured. A bad or unreachable mirror is
	// never fatal; the service runs on the local store alone.
	var mirrorDB *gorm.DB
	if cfg.MirrorConfigured() {
		mirrorDB, err = database.ConnectMirror(cfg)
		if err != nil {
			log.Printf("Mirror disabled, could not open handle: %v", err)
			mirrorDB = nil
		}
	}
	mirror := services.NewMirror(mirrorDB, time.Duration(cfg.MirrorTimeoutMS)*time.Millisecond, cfg.MirrorURL)
	if mirror.Configured() {
		if err := mirror.EnsureSchema(context.Background(), database.AutoMigrate); err != nil {
			log.Printf("Mirror schema check failed (non-fatal): %v", err)
		}
		log.Printf("Mirror client initialized: %s", mirror.EndpointHint())
	} else {
		log.Printf("Mirror NOT configured. Set MIRROR_URL and MIRROR_PASSWORD to enable it.")
	}

	// Seed or reconcile the stored document before accepting any request
	if err := services.Bootstrap(local); err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}

	contentService := services.NewContentService(local, mirror)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("folio")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	contentHandler := &handlers.ContentHandler{Service: contentService}
	adminHandler := &handlers.AdminHandler{Service: contentService, Config: cfg, DB: localDB}

	api.Get("/content", middleware.NoStore(), contentHandler.GetContent)
	api.Post("/content", contentHandler.SetContent)

	api.Get("/admin/mirror-status", adminHandler.MirrorStatus)
	api.Post("/admin/sync-to-mirror", adminHandler.SyncToMirror)

	api.Get("/health", adminHandler.Health)

	// Static site and SPA fallback
	if cfg.PublicDir != "" {
		app.Static("/", cfg.PublicDir)
	}
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") || cfg.PublicDir == "" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":    fiber.StatusNotFound,
				"message":   "[404] Resource Not Found",
				"ok":        false,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"url":       c.OriginalURL(),
			})
		}
		return c.SendFile(filepath.Join(cfg.PublicDir, "index.html"))
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
