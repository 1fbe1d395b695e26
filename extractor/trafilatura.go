package extractor

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

type Trafilatura struct{}

func NewTrafilatura() *Trafilatura {
	return &Trafilatura{}
}

func (t *Trafilatura) Extract(body []byte, pageURL string) (*Content, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	opts := trafilatura.Options{
		OriginalURL: parsedURL,
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura extraction failed: %w", err)
	}

	htmlStr, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &Content{
		Text: result.ContentText,
		HTML: htmlStr,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
