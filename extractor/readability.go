package extractor

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/go-shiori/go-readability"
)

type Readability struct{}

func NewReadability() *Readability {
	return &Readability{}
}

func (r *Readability) Extract(body []byte, pageURL string) (*Content, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}

	return &Content{
		Text: article.TextContent,
		HTML: article.Content,
	}, nil
}
