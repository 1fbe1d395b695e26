package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"webscout/config"
	"webscout/extractor"
	"webscout/fetcher"
	"webscout/mcpserver"
	"webscout/orchestrator"
	"webscout/search"
)

func main() {
	// =========
	// Config
	// =========
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	profile, err := config.LoadProfile(cfg.ScrapeProfilePath)
	if err != nil {
		log.Fatalf("Failed to load scrape profile: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// HTTP clients
	// =========
	searchClient := NewHttpClient(cfg.SearchTimeout)
	fetchClient := NewHttpClient(cfg.FetchTimeout)

	// =========
	// Search Engine
	// =========
	engine := search.NewDuckDuckGoEngine(searchClient, cfg.SearchEndpoint, cfg.SearchUserAgent, profile, logger)

	// =========
	// Page Fetcher
	// =========
	strategy, err := extractor.NewStrategy(cfg.ExtractionMode, profile)
	if err != nil {
		log.Fatalf("Failed to create extraction strategy: %v", err)
	}
	pageFetcher := fetcher.New(fetchClient, cfg.FetchUserAgent, cfg.MaxSummaryChars, strategy, cfg.MarkdownSummaries, logger)

	// =========
	// Orchestrator
	// =========
	orch := orchestrator.New(engine, pageFetcher, cfg.MaxResults, cfg.DefaultLimit, logger)

	// =========
	// MCP Server
	// =========
	server, err := mcpserver.NewServer(orch, logger)
	if err != nil {
		logger.Fatal("failed to create mcp server", zap.Error(err))
	}
	log.Fatal(server.Start(cfg.AppPort))
}

func NewHttpClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
