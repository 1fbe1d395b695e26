package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the CSS selectors the scrapers depend on. Search engines and
// target sites change their markup without notice, so the selectors can be
// swapped via a YAML file instead of a rebuild.
type Profile struct {
	ResultSelector  string `yaml:"result_selector"`
	TitleSelector   string `yaml:"title_selector"`
	URLSelector     string `yaml:"url_selector"`
	SnippetSelector string `yaml:"snippet_selector"`

	// Elements stripped from fetched pages before text extraction.
	JunkSelector string `yaml:"junk_selector"`
	// Candidate main-content regions, tried in order.
	ContentSelectors []string `yaml:"content_selectors"`
}

func DefaultProfile() *Profile {
	return &Profile{
		ResultSelector:  ".result__body",
		TitleSelector:   ".result__a",
		URLSelector:     ".result__url",
		SnippetSelector: ".result__snippet",
		JunkSelector:    "script, style, nav, header, footer, aside",
		ContentSelectors: []string{
			"main",
			"article",
			"div.content, div.main, div.post, div.article",
		},
	}
}

// LoadProfile reads a profile from the given path. Empty fields fall back to
// the defaults, so a file may override a single selector.
func LoadProfile(path string) (*Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scrape profile %s: %w", path, err)
	}

	var loaded Profile
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse scrape profile %s: %w", path, err)
	}

	if loaded.ResultSelector != "" {
		profile.ResultSelector = loaded.ResultSelector
	}
	if loaded.TitleSelector != "" {
		profile.TitleSelector = loaded.TitleSelector
	}
	if loaded.URLSelector != "" {
		profile.URLSelector = loaded.URLSelector
	}
	if loaded.SnippetSelector != "" {
		profile.SnippetSelector = loaded.SnippetSelector
	}
	if loaded.JunkSelector != "" {
		profile.JunkSelector = loaded.JunkSelector
	}
	if len(loaded.ContentSelectors) > 0 {
		profile.ContentSelectors = loaded.ContentSelectors
	}

	return profile, nil
}
