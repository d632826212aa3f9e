package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hostsadmin/internal/config"
	"hostsadmin/internal/handler"
	"hostsadmin/internal/hub"
	"hostsadmin/internal/service"
	"hostsadmin/internal/store"
	"hostsadmin/internal/watcher"
)

func main() {
	// Command line flags
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	configPath := flag.String("config", "", "Config file path (overrides search)")
	dataDir := flag.String("data-dir", "", "Data directory (overrides config and env)")
	mode := flag.String("mode", "", "Runtime mode: development or deployed (overrides config and env)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting hostsadmin server...")

	// Load configuration
	var cfg *config.Config
	var cfgFile string
	var err error
	if *configPath != "" {
		cfg, cfgFile, err = config.LoadFromPath(*configPath)
	} else {
		cfg, cfgFile, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgFile != "" {
		log.Printf("Config loaded: %s", cfgFile)
	} else {
		log.Println("No config file found, using defaults")
	}

	if *mode != "" {
		cfg.Mode = config.ParseMode(*mode)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	log.Println(cfg.Summary())

	// Initialize document store
	st, err := store.New(cfg.EffectiveDataDir())
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	log.Printf("Document: %s", st.Path())

	// Initialize event bus
	eventBus := service.NewEventBus()

	// Every successful write invalidates cached dashboard views
	st.OnWrite(func() {
		eventBus.Publish(service.Event{Type: service.EventDashboardStale})
	})

	// Initialize SSE hub
	sseHub := hub.New()
	go sseHub.Run()

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			sseHub.Broadcast(event)
		}
	}()

	// Initialize services
	vocabSvc := service.NewVocabularyService(st, eventBus)
	hostSvc := service.NewHostService(st, eventBus)
	if cfg.SerializeWrites {
		var mu sync.Mutex
		vocabSvc.WithLock(&mu)
		hostSvc.WithLock(&mu)
		log.Println("Write serialization enabled")
	}

	// Watch the document for external edits
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	docWatcher := watcher.New(st.Path(), func() {
		eventBus.Publish(service.Event{Type: service.EventDocumentReloaded})
	})
	go func() {
		if err := docWatcher.Watch(watchCtx); err != nil && err != context.Canceled {
			log.Printf("Watcher stopped: %v", err)
		}
	}()

	// Initialize HTTP handlers
	vocabHandler := handler.NewVocabHandler(vocabSvc)
	hostsHandler := handler.NewHostsHandler(hostSvc)
	exportHandler := handler.NewExportHandler(st, hostSvc)
	authHandler := handler.NewAuthHandler(cfg.Auth)

	// Setup routes
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/login", authHandler.Login)

	// Category endpoints
	mux.HandleFunc("GET /api/categories", vocabHandler.ListCategories)
	mux.HandleFunc("POST /api/categories", vocabHandler.AddCategory)
	mux.HandleFunc("PUT /api/categories/{value}", vocabHandler.UpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{value}", vocabHandler.DeleteCategory)

	// Type endpoints
	mux.HandleFunc("GET /api/types", vocabHandler.ListTypes)
	mux.HandleFunc("POST /api/types", vocabHandler.AddType)
	mux.HandleFunc("PUT /api/types/{value}", vocabHandler.UpdateType)
	mux.HandleFunc("DELETE /api/types/{value}", vocabHandler.DeleteType)

	// Group endpoints
	mux.HandleFunc("GET /api/hosts", hostsHandler.ListHosts)
	mux.HandleFunc("POST /api/hosts/groups", hostsHandler.CreateGroup)
	mux.HandleFunc("PUT /api/hosts/groups/{category}", hostsHandler.UpdateGroup)
	mux.HandleFunc("DELETE /api/hosts/groups/{category}", hostsHandler.DeleteGroup)

	// Entry endpoints
	mux.HandleFunc("POST /api/hosts/groups/{category}/entries", hostsHandler.CreateEntry)
	mux.HandleFunc("PUT /api/hosts/groups/{category}/entries/{id}", hostsHandler.UpdateEntry)
	mux.HandleFunc("DELETE /api/hosts/groups/{category}/entries/{id}", hostsHandler.DeleteEntry)

	// Import/export endpoints
	mux.HandleFunc("GET /api/export/json", exportHandler.ExportJSON)
	mux.HandleFunc("GET /api/export/yaml", exportHandler.ExportYAML)
	mux.HandleFunc("POST /api/import", exportHandler.Import)

	// SSE events endpoint
	mux.Handle("GET /events", sseHub)

	// Apply middleware
	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	// Create server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	watchCancel()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
