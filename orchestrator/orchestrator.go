package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"webscout/fetcher"
	"webscout/search"
)

// InvalidArgumentError is the only failure class that crosses the tool
// boundary as an error; everything downstream of validation is folded into
// response data.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

func IsInvalidArgument(err error) bool {
	var iae *InvalidArgumentError
	return errors.As(err, &iae)
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) fetcher.Outcome
}

// Orchestrator wires one search pass to a concurrent fetch fan-out over its
// results, merging summaries back positionally.
type Orchestrator struct {
	engine       search.Engine
	fetcher      Fetcher
	maxResults   int
	defaultLimit int
	logger       *zap.Logger
}

func New(engine search.Engine, pageFetcher Fetcher, maxResults, defaultLimit int, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		engine:       engine,
		fetcher:      pageFetcher,
		maxResults:   maxResults,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// DefaultLimit is the limit applied when the caller omits one.
func (o *Orchestrator) DefaultLimit() int {
	return o.defaultLimit
}

// Search runs the bare search without fetching any result pages.
func (o *Orchestrator) Search(ctx context.Context, query string, limit int) ([]search.Result, error) {
	query, limit, err := o.validate(query, limit)
	if err != nil {
		return nil, err
	}
	return o.engine.Search(ctx, &search.Request{Query: query, Limit: limit})
}

// SearchAndFetch runs the search, then fetches every result URL
// concurrently. All fetches are dispatched together and the call returns
// only once each one has completed; a single fetch failure lands in that
// result's Summary instead of aborting the batch.
func (o *Orchestrator) SearchAndFetch(ctx context.Context, query string, limit int) ([]search.Result, error) {
	query, limit, err := o.validate(query, limit)
	if err != nil {
		return nil, err
	}

	results, err := o.engine.Search(ctx, &search.Request{Query: query, Limit: limit})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return results, nil
	}

	summaries := make([]string, len(results))
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			summaries[i] = o.fetcher.Fetch(ctx, url).Render()
		}(i, results[i].URL)
	}
	wg.Wait()

	for i := range results {
		results[i].Summary = summaries[i]
	}

	o.logger.Info("search_and_fetch_completed",
		zap.String("query", query),
		zap.Int("result_count", len(results)),
	)

	return results, nil
}

// Fetch is a pass-through to the page fetcher; failures arrive as error
// text, never as a Go error.
func (o *Orchestrator) Fetch(ctx context.Context, url string) string {
	return o.fetcher.Fetch(ctx, url).Render()
}

func (o *Orchestrator) validate(query string, limit int) (string, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", 0, &InvalidArgumentError{Reason: "query must be a non-empty string"}
	}
	if limit < 1 {
		return "", 0, &InvalidArgumentError{Reason: "limit must be a positive integer"}
	}
	if limit > o.maxResults {
		limit = o.maxResults
	}
	return query, limit, nil
}
