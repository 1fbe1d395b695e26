package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"webscout/config"
)

// TruncationMarker is appended verbatim whenever extracted text is cut off.
const TruncationMarker = "... [content truncated]"

// Content is the readable region pulled out of a page: flattened-ready text
// plus the region's raw HTML for callers that want a markdown rendering.
type Content struct {
	Text string
	HTML string
}

type Strategy interface {
	Extract(body []byte, pageURL string) (*Content, error)
}

// NewStrategy maps a configured mode name to its extraction strategy.
func NewStrategy(mode string, profile *config.Profile) (Strategy, error) {
	switch mode {
	case "heuristic":
		return NewHeuristic(profile), nil
	case "readability":
		return NewReadability(), nil
	case "trafilatura":
		return NewTrafilatura(), nil
	default:
		return nil, fmt.Errorf("unknown extraction strategy %q", mode)
	}
}

var spaceRun = regexp.MustCompile(` {2,}`)

// Normalize flattens extracted text to a single line: lines are trimmed,
// split on runs of two or more spaces, empty fragments dropped, and the rest
// joined with single spaces. Applying it twice yields the same text.
func Normalize(text string) string {
	var fragments []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, fragment := range spaceRun.Split(line, -1) {
			fragment = strings.TrimSpace(fragment)
			if fragment != "" {
				fragments = append(fragments, fragment)
			}
		}
	}
	return strings.Join(fragments, " ")
}

// Truncate caps text at max characters, appending the truncation marker when
// anything was dropped.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + TruncationMarker
}
