package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/opencustoms/boe-copilot/internal/catalog"
	"github.com/opencustoms/boe-copilot/internal/config"
	"github.com/opencustoms/boe-copilot/internal/database"
	"github.com/opencustoms/boe-copilot/internal/extraction"
	"github.com/opencustoms/boe-copilot/internal/inbox"
	"github.com/opencustoms/boe-copilot/internal/middleware"
	"github.com/opencustoms/boe-copilot/internal/profile"
	"github.com/opencustoms/boe-copilot/internal/uploads"
	"github.com/opencustoms/boe-copilot/internal/verification"
	"github.com/opencustoms/boe-copilot/internal/verification/router"
)

func main() {
	// .env is optional; real deployments configure via the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.Info("configuration loaded",
		"db_driver", cfg.Database.Driver,
		"storage_type", cfg.Storage.Type,
		"server_port", cfg.Server.Port,
	)

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := database.HealthCheck(db); err != nil {
		log.Fatalf("database health check failed: %v", err)
	}

	catalogStore, err := catalog.NewStore(db)
	if err != nil {
		log.Fatalf("failed to initialize catalog store: %v", err)
	}
	profileStore, err := profile.NewStore(db)
	if err != nil {
		log.Fatalf("failed to initialize profile store: %v", err)
	}
	inboxStore, err := inbox.NewStore(db)
	if err != nil {
		log.Fatalf("failed to initialize inbox store: %v", err)
	}

	storageDriver, err := uploads.NewStorageFromConfig(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize attachment storage: %v", err)
	}
	attachments := uploads.NewAttachmentService(storageDriver)

	extractor, err := extraction.NewGeminiExtractor(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("failed to initialize extractor: %v", err)
	}

	manager := verification.NewManager(extractor, catalogStore, profileStore)

	sessionRouter := router.NewSessionRouter(manager, inboxStore, attachments)
	catalogRouter := router.NewCatalogRouter(catalogStore)
	profileRouter := router.NewProfileRouter(profileStore)
	inboxRouter := inbox.NewRouter(inboxStore, attachments)
	uploadsHandler := uploads.NewHTTPHandler(attachments)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", sessionRouter.HandleCreateSession)
	mux.HandleFunc("GET /api/sessions/{sessionID}", sessionRouter.HandleGetSession)
	mux.HandleFunc("POST /api/sessions/{sessionID}/reverify", sessionRouter.HandleReverify)
	mux.HandleFunc("POST /api/sessions/{sessionID}/summary/{field}/disposition", sessionRouter.HandleSummaryDisposition)
	mux.HandleFunc("POST /api/sessions/{sessionID}/items/{index}/disposition", sessionRouter.HandleItemDisposition)
	mux.HandleFunc("POST /api/sessions/{sessionID}/approve", sessionRouter.HandleApprove)
	mux.HandleFunc("GET /api/draft", sessionRouter.HandleGetDraft)
	mux.HandleFunc("DELETE /api/draft", sessionRouter.HandleClearDraft)
	mux.HandleFunc("GET /api/catalog", catalogRouter.HandleList)
	mux.HandleFunc("PUT /api/catalog", catalogRouter.HandleReplace)
	mux.HandleFunc("POST /api/catalog/import", catalogRouter.HandleImportCSV)
	mux.HandleFunc("GET /api/catalog/export", catalogRouter.HandleExportCSV)
	mux.HandleFunc("GET /api/profile", profileRouter.HandleGet)
	mux.HandleFunc("PUT /api/profile", profileRouter.HandleSave)
	mux.HandleFunc("GET /api/inbox", inboxRouter.HandleList)
	mux.HandleFunc("POST /api/inbox", inboxRouter.HandleCreate)
	mux.HandleFunc("GET /api/inbox/{messageID}", inboxRouter.HandleGet)
	mux.HandleFunc("GET /api/uploads/{key}", uploadsHandler.HandleDownload)

	handler := middleware.CORS(&cfg.CORS)(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}
}
