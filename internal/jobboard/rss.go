// Package jobboard consumes a third-party RSS job feed and converts its
// items into external job listings for the job-board page. Feed items
// carry HTML descriptions, which are reduced to plain text before
// display.
package jobboard

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/creativityverse/verse-cli/internal/jobs"
)

// DefaultTimeout bounds a feed fetch.
const DefaultTimeout = 15 * time.Second

// FetchError represents a failure retrieving or parsing a feed.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("feed error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("feed error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// rssDocument mirrors the RSS 2.0 structure we consume.
type rssDocument struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	Author      string `xml:"author"`
	PubDate     string `xml:"pubDate"`
}

// Fetcher retrieves and parses RSS job feeds with a shared HTTP client.
type Fetcher struct {
	client *http.Client
}

// NewFetcher constructs a fetcher.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch retrieves the feed and converts every item into an external job
// listing.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]jobs.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: feedURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Message: "failed to read feed body", Cause: err}
	}

	return Parse(body, feedURL)
}

// Parse converts raw RSS bytes into external listings.
func Parse(raw []byte, feedURL string) ([]jobs.Listing, error) {
	var doc rssDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, &FetchError{URL: feedURL, Message: "failed to parse RSS", Cause: err}
	}

	listings := make([]jobs.Listing, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		id := item.GUID
		if id == "" {
			id = item.Link
		}
		listings = append(listings, jobs.Listing{
			ID:                id,
			Title:             strings.TrimSpace(item.Title),
			Description:       htmlToText(item.Description),
			Company:           strings.TrimSpace(item.Author),
			ApplicationMethod: jobs.ApplyExternal,
			ApplicationLink:   item.Link,
			CreatedAt:         normalizePubDate(item.PubDate),
		})
	}
	return listings, nil
}

// htmlToText strips markup from an item description, preserving line
// breaks between block elements.
func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("script, style").Remove()

	var lines []string
	blocks := doc.Find("p, li")
	if blocks.Length() == 0 {
		if text := strings.TrimSpace(doc.Text()); text != "" {
			lines = append(lines, text)
		}
	} else {
		blocks.Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				lines = append(lines, text)
			}
		})
	}
	return strings.Join(lines, "\n")
}

// normalizePubDate coerces RSS date formats to RFC 3339, passing the
// raw value through when no layout matches.
func normalizePubDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
	}
	return raw
}
