package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"webscout/config"
)

// DuckDuckGoEngine scrapes the DuckDuckGo HTML endpoint. The endpoint serves
// plain server-rendered markup, so a selector pass is enough; no JS runtime.
type DuckDuckGoEngine struct {
	client    *http.Client
	endpoint  string
	userAgent string
	profile   *config.Profile
	logger    *zap.Logger
}

func NewDuckDuckGoEngine(client *http.Client, endpoint, userAgent string, profile *config.Profile, logger *zap.Logger) *DuckDuckGoEngine {
	if profile == nil {
		profile = config.DefaultProfile()
	}
	return &DuckDuckGoEngine{
		client:    client,
		endpoint:  endpoint,
		userAgent: userAgent,
		profile:   profile,
		logger:    logger,
	}
}

func (e *DuckDuckGoEngine) Search(ctx context.Context, req *Request) ([]Result, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, NewError(KindRequest, errors.New("query must not be empty"))
	}

	params := url.Values{}
	params.Set("q", query)
	searchURL := e.endpoint + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, NewError(KindRequest, err)
	}
	httpReq.Header.Set("User-Agent", e.userAgent)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		if isTimeoutErr(err) {
			return nil, NewError(KindTimeout, err)
		}
		return nil, NewError(KindRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewError(KindStatus, fmt.Errorf("status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, NewError(KindParse, err)
	}

	results := e.parseResults(doc, req.Limit)

	e.logger.Info("search_completed",
		zap.String("query", query),
		zap.Int("limit", req.Limit),
		zap.Int("result_count", len(results)),
	)

	return results, nil
}

// parseResults walks result fragments in document order. A fragment missing
// its title or url element is skipped and does not count toward the limit.
func (e *DuckDuckGoEngine) parseResults(doc *goquery.Document, limit int) []Result {
	results := []Result{}
	if limit <= 0 {
		return results
	}

	doc.Find(e.profile.ResultSelector).EachWithBreak(func(_ int, frag *goquery.Selection) bool {
		title := strings.TrimSpace(frag.Find(e.profile.TitleSelector).First().Text())
		resultURL := strings.TrimSpace(frag.Find(e.profile.URLSelector).First().Text())
		if title == "" || resultURL == "" {
			return true
		}

		snippet := strings.TrimSpace(frag.Find(e.profile.SnippetSelector).First().Text())
		results = append(results, Result{
			Title:   title,
			URL:     resultURL,
			Snippet: snippet,
		})
		return len(results) < limit
	})

	return results
}

func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
