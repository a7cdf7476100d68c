package main

import (
	"fmt"
	"log"
	"os"

	"github.com/layoutforge/backend/config"
	httpDelivery "github.com/layoutforge/backend/internal/delivery/http"
	"github.com/layoutforge/backend/internal/infrastructure/cache"
	"github.com/layoutforge/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting LayoutForge Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	analysisCache := cache.NewMemoryCache()

	// Initialize usecase layer
	pipeline := usecase.NewPipeline(analysisCache, usecase.PipelineConfig{
		Analyzer: usecase.AnalyzerConfig{
			EdgeThreshold:     cfg.Analysis.EdgeThreshold,
			ComplexityMaxSide: cfg.Analysis.ComplexityMaxSide,
			SwatchSize:        cfg.Analysis.SwatchSize,
		},
		Workers:  cfg.Analysis.Workers,
		CacheTTL: cfg.Cache.TTL,
	})

	log.Printf("Analysis: workers=%d, edge_threshold=%d", cfg.Analysis.Workers, cfg.Analysis.EdgeThreshold)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(pipeline, cfg.Server.MaxUploadSize)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
