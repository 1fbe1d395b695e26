package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultSearchEndpoint = "https://html.duckduckgo.com/html/"
	defaultSearchAgent    = "search-app/1.0"
	defaultFetchAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Config struct {
	AppPort           int
	SearchEndpoint    string
	SearchTimeout     time.Duration
	FetchTimeout      time.Duration
	SearchUserAgent   string
	FetchUserAgent    string
	MaxSummaryChars   int
	MaxResults        int
	DefaultLimit      int
	ExtractionMode    string
	MarkdownSummaries bool
	ScrapeProfilePath string
}

func Load() (*Config, error) {
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	searchTimeout, err := getEnvInt("SEARCH_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := getEnvInt("FETCH_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	maxChars, err := getEnvInt("MAX_SUMMARY_CHARS", 10000)
	if err != nil {
		return nil, err
	}
	maxResults, err := getEnvInt("MAX_RESULTS", 10)
	if err != nil {
		return nil, err
	}
	defaultLimit, err := getEnvInt("DEFAULT_LIMIT", 3)
	if err != nil {
		return nil, err
	}

	mode := getEnv("EXTRACTION_STRATEGY", "heuristic")
	switch mode {
	case "heuristic", "readability", "trafilatura":
	default:
		return nil, fmt.Errorf("unknown EXTRACTION_STRATEGY %q", mode)
	}

	return &Config{
		AppPort:           appPort,
		SearchEndpoint:    getEnv("SEARCH_ENDPOINT", defaultSearchEndpoint),
		SearchTimeout:     time.Duration(searchTimeout) * time.Second,
		FetchTimeout:      time.Duration(fetchTimeout) * time.Second,
		SearchUserAgent:   getEnv("SEARCH_USER_AGENT", defaultSearchAgent),
		FetchUserAgent:    getEnv("FETCH_USER_AGENT", defaultFetchAgent),
		MaxSummaryChars:   maxChars,
		MaxResults:        maxResults,
		DefaultLimit:      defaultLimit,
		ExtractionMode:    mode,
		MarkdownSummaries: getEnv("MARKDOWN_SUMMARIES", "false") == "true",
		ScrapeProfilePath: getEnv("SCRAPE_PROFILE_PATH", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return n, nil
}
