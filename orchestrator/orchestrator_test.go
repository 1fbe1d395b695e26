package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"webscout/fetcher"
	"webscout/search"
)

type fakeEngine struct {
	results   []search.Result
	err       error
	gotLimit  int
	gotQuery  string
	callCount int
}

func (f *fakeEngine) Search(_ context.Context, req *search.Request) ([]search.Result, error) {
	f.callCount++
	f.gotQuery = req.Query
	f.gotLimit = req.Limit
	if f.err != nil {
		return nil, f.err
	}
	if req.Limit < len(f.results) {
		return f.results[:req.Limit], nil
	}
	return f.results, nil
}

type fakeFetcher struct {
	mu       sync.Mutex
	outcomes map[string]fetcher.Outcome
	fetched  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) fetcher.Outcome {
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	f.mu.Unlock()
	if outcome, ok := f.outcomes[url]; ok {
		return outcome
	}
	return fetcher.Outcome{Text: "content of " + url}
}

func newTestOrchestrator(engine search.Engine, pageFetcher Fetcher) *Orchestrator {
	return New(engine, pageFetcher, 10, 3, zap.NewNop())
}

func TestSearchAndFetchValidation(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		limit int
	}{
		{"EmptyQuery", "", 3},
		{"WhitespaceQuery", "   \t  ", 3},
		{"ZeroLimit", "rust", 0},
		{"NegativeLimit", "rust", -2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine := &fakeEngine{}
			orch := newTestOrchestrator(engine, &fakeFetcher{})

			_, err := orch.SearchAndFetch(context.Background(), tc.query, tc.limit)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !IsInvalidArgument(err) {
				t.Errorf("expected InvalidArgumentError, got %T", err)
			}
			if engine.callCount != 0 {
				t.Error("no search should be issued when validation fails")
			}
		})
	}
}

func TestSearchAndFetchClampsLimit(t *testing.T) {
	engine := &fakeEngine{results: []search.Result{}}
	orch := newTestOrchestrator(engine, &fakeFetcher{})

	if _, err := orch.SearchAndFetch(context.Background(), "rust", 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.gotLimit != 10 {
		t.Errorf("expected clamped limit 10, got %d", engine.gotLimit)
	}

	if _, err := orch.SearchAndFetch(context.Background(), "rust", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.gotLimit != 7 {
		t.Errorf("expected limit 7 passed through, got %d", engine.gotLimit)
	}
}

func TestSearchAndFetchMergesSummaries(t *testing.T) {
	engine := &fakeEngine{results: []search.Result{
		{Title: "One", URL: "a.example.com", Snippet: "first"},
		{Title: "Two", URL: "b.example.com", Snippet: "second"},
		{Title: "Three", URL: "c.example.com", Snippet: "third"},
	}}
	pageFetcher := &fakeFetcher{outcomes: map[string]fetcher.Outcome{}}
	orch := newTestOrchestrator(engine, pageFetcher)

	results, err := orch.SearchAndFetch(context.Background(), "rust", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, result := range results {
		expected := "content of " + result.URL
		if result.Summary != expected {
			t.Errorf("result %d: expected summary %q, got %q", i, expected, result.Summary)
		}
		if result.Title != engine.results[i].Title {
			t.Errorf("result %d: order not preserved", i)
		}
	}
	if len(pageFetcher.fetched) != 3 {
		t.Errorf("expected 3 fetches, got %d", len(pageFetcher.fetched))
	}
}

func TestSearchAndFetchPartialFailure(t *testing.T) {
	timeoutText := "Error: Request timed out while fetching the webpage"
	engine := &fakeEngine{results: []search.Result{
		{Title: "One", URL: "a.example.com"},
		{Title: "Two", URL: "b.example.com"},
		{Title: "Three", URL: "c.example.com"},
	}}
	pageFetcher := &fakeFetcher{outcomes: map[string]fetcher.Outcome{}}
	orch := newTestOrchestrator(engine, pageFetcher)

	// One fetch times out without touching its siblings.
	pageFetcher.outcomes["b.example.com"] = fetcher.Outcome{
		Err: &fetcher.Error{Kind: fetcher.KindTimeout},
	}

	results, err := orch.SearchAndFetch(context.Background(), "rust", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if results[1].Summary != timeoutText {
		t.Errorf("expected timeout text in summary, got %q", results[1].Summary)
	}
	for _, i := range []int{0, 2} {
		if strings.HasPrefix(results[i].Summary, "Error:") {
			t.Errorf("result %d should have succeeded, got %q", i, results[i].Summary)
		}
	}
}

func TestSearchAndFetchSearchFailurePassesThrough(t *testing.T) {
	searchErr := errors.New("engine exploded")
	engine := &fakeEngine{err: searchErr}
	pageFetcher := &fakeFetcher{}
	orch := newTestOrchestrator(engine, pageFetcher)

	_, err := orch.SearchAndFetch(context.Background(), "rust", 3)
	if !errors.Is(err, searchErr) {
		t.Fatalf("expected search error passed through, got %v", err)
	}
	if len(pageFetcher.fetched) != 0 {
		t.Error("no fetches should run when search fails")
	}
}

func TestSearchAndFetchEmptyResults(t *testing.T) {
	engine := &fakeEngine{results: []search.Result{}}
	pageFetcher := &fakeFetcher{}
	orch := newTestOrchestrator(engine, pageFetcher)

	results, err := orch.SearchAndFetch(context.Background(), "rare query", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result set, got %d", len(results))
	}
	if len(pageFetcher.fetched) != 0 {
		t.Error("no fetches should run for an empty result set")
	}
}

func TestBareSearchDoesNotFetch(t *testing.T) {
	engine := &fakeEngine{results: []search.Result{
		{Title: "One", URL: "a.example.com"},
	}}
	pageFetcher := &fakeFetcher{}
	orch := newTestOrchestrator(engine, pageFetcher)

	results, err := orch.Search(context.Background(), "rust", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Summary != "" {
		t.Errorf("bare search must not populate summaries, got %q", results[0].Summary)
	}
	if len(pageFetcher.fetched) != 0 {
		t.Error("bare search must not fetch")
	}
}

func TestFetchPassThrough(t *testing.T) {
	pageFetcher := &fakeFetcher{outcomes: map[string]fetcher.Outcome{
		"a.example.com": {Text: "page text"},
	}}
	orch := newTestOrchestrator(&fakeEngine{}, pageFetcher)

	if got := orch.Fetch(context.Background(), "a.example.com"); got != "page text" {
		t.Errorf("expected pass-through text, got %q", got)
	}
}
