package extractor

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"

	"webscout/config"
)

// Heuristic guesses the main-content region from common HTML conventions:
// strip structural elements, then prefer <main>, <article>, or a container
// carrying a content-ish class, falling back to the whole body. Brittle to
// markup changes by nature; the selectors live in the scrape profile.
type Heuristic struct {
	profile *config.Profile
}

func NewHeuristic(profile *config.Profile) *Heuristic {
	if profile == nil {
		profile = config.DefaultProfile()
	}
	return &Heuristic{profile: profile}
}

func (h *Heuristic) Extract(body []byte, pageURL string) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	doc.Find(h.profile.JunkSelector).Remove()

	region := h.findRegion(doc)
	html, err := goquery.OuterHtml(region)
	if err != nil {
		return nil, err
	}

	return &Content{
		Text: region.Text(),
		HTML: html,
	}, nil
}

func (h *Heuristic) findRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range h.profile.ContentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}
