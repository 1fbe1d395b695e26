package fetcher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"go.uber.org/zap"

	"webscout/extractor"
)

// PageFetcher retrieves one URL and reduces it to bounded readable text.
// Redirects are followed; anti-bot heuristics are softened with browser-like
// headers. Accept-Encoding is left to the transport so gzip bodies arrive
// decoded.
type PageFetcher struct {
	client    *http.Client
	userAgent string
	maxChars  int
	strategy  extractor.Strategy
	markdown  bool
	logger    *zap.Logger
}

func New(client *http.Client, userAgent string, maxChars int, strategy extractor.Strategy, markdown bool, logger *zap.Logger) *PageFetcher {
	return &PageFetcher{
		client:    client,
		userAgent: userAgent,
		maxChars:  maxChars,
		strategy:  strategy,
		markdown:  markdown,
		logger:    logger,
	}
}

// Fetch never returns a Go error: every failure is folded into the Outcome.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) Outcome {
	pageURL := normalizeURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return errorOutcome(KindOther, 0, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeoutErr(err) {
			f.logger.Warn("fetch_timeout", zap.String("url", pageURL))
			return errorOutcome(KindTimeout, 0, err)
		}
		f.logger.Warn("fetch_failed", zap.String("url", pageURL), zap.Error(err))
		return errorOutcome(KindOther, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("fetch_bad_status",
			zap.String("url", pageURL),
			zap.Int("status", resp.StatusCode),
		)
		return errorOutcome(KindStatus, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorOutcome(KindOther, 0, err)
	}

	content, err := f.strategy.Extract(body, pageURL)
	if err != nil {
		return errorOutcome(KindOther, 0, err)
	}

	text, err := f.renderContent(content)
	if err != nil {
		return errorOutcome(KindOther, 0, err)
	}

	truncated := extractor.Truncate(text, f.maxChars)

	f.logger.Info("fetch_completed",
		zap.String("url", pageURL),
		zap.Int("body_size", len(body)),
		zap.Int("text_length", len(truncated)),
	)

	return successOutcome(truncated)
}

// renderContent flattens the region to one line of text, or keeps structure
// as markdown when that output mode is on.
func (f *PageFetcher) renderContent(content *extractor.Content) (string, error) {
	if !f.markdown {
		return extractor.Normalize(content.Text), nil
	}
	md, err := htmltomarkdown.ConvertString(content.HTML)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

func normalizeURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
