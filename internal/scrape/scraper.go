package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/evelynxu/marksearch/internal/logger"
)

// Page holds the text extracted from a bookmarked URL.
type Page struct {
	Title   string
	Content string
}

// Fetcher retrieves page text for a URL. Implementations report failures as
// errors; callers degrade the record instead of dropping it.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (*Page, error)
}

type Scraper struct {
	client *http.Client
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: timeout},
	}
}

// FetchPage downloads the URL and extracts the document title and the joined
// text of all paragraph elements.
func (s *Scraper) FetchPage(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	logger.Debug("Fetched %s: status %d in %v", url, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error for %s: %d %s", url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return &Page{
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		Content: strings.Join(paragraphs, " "),
	}, nil
}
