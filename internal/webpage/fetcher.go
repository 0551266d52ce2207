package webpage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	clientTimeout = 20 * time.Second
	maxBodyBytes  = 5 << 20
)

// Document is the readable text extracted from a web page or the newest entry of a feed.
type Document struct {
	URL   string
	Title string
	Text  string
}

// TruncatedText returns the first limit words of the document text and reports
// whether anything was cut. A limit of zero or less keeps the whole text.
func (d *Document) TruncatedText(limit int) (string, bool) {
	words := strings.Fields(d.Text)
	if limit <= 0 || len(words) <= limit {
		return d.Text, false
	}
	return strings.Join(words[:limit], " "), true
}

// Fetcher downloads pages and feeds and extracts their readable text.
type Fetcher struct {
	client     *http.Client
	feedParser *gofeed.Parser
	cache      *documentCache
	now        func() time.Time
	log        *slog.Logger
}

// NewFetcher builds a Fetcher. A nil client gets a default one with a timeout.
func NewFetcher(client *http.Client, log *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: clientTimeout}
	}

	return &Fetcher{
		client:     client,
		feedParser: gofeed.NewParser(),
		cache:      newDocumentCache(documentCacheMaxEntries),
		now:        time.Now,
		log:        log,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	pageURL, err := CanonicalURL(rawURL)
	if err != nil {
		return nil, err
	}

	if doc, ok := f.cache.get(pageURL, f.now()); ok {
		f.log.DebugContext(ctx, "Document cache hit",
			"url", pageURL)

		return &doc, nil
	}

	body, contentType, err := f.download(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var doc *Document
	if gofeed.DetectFeedType(bytes.NewReader(body)) != gofeed.FeedTypeUnknown {
		doc, err = f.parseFeed(body)
	} else {
		doc, err = parseHTML(body)
	}
	if err != nil {
		return nil, err
	}

	if doc.URL == "" {
		doc.URL = pageURL
	}
	if doc.Text == "" {
		return nil, fmt.Errorf("no readable text found at %s", pageURL)
	}

	now := f.now()
	f.cache.set(pageURL, *doc, now.Add(documentCacheTTL), now)

	f.log.InfoContext(ctx, "Document is fetched",
		"url", pageURL,
		"contentType", contentType,
		"title", doc.Title,
		"textLen", len(doc.Text))

	return doc, nil
}

func (f *Fetcher) download(ctx context.Context, pageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req) //nolint:gosec // URL is validated by CanonicalURL
	if err != nil {
		return nil, "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", pageURL,
				"operation", "download")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

func (f *Fetcher) parseFeed(body []byte) (*Document, error) {
	parsed, err := f.feedParser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	item := newestItem(parsed.Items)
	if item == nil {
		return nil, errors.New("feed has no items")
	}

	content := item.Content
	if strings.TrimSpace(content) == "" {
		content = item.Description
	}

	text, err := htmlFragmentText(content)
	if err != nil {
		return nil, err
	}

	return &Document{
		URL:   strings.TrimSpace(item.Link),
		Title: strings.TrimSpace(item.Title),
		Text:  text,
	}, nil
}

func newestItem(items []*gofeed.Item) *gofeed.Item {
	var newest *gofeed.Item
	var newestAt time.Time

	for _, item := range items {
		if item == nil {
			continue
		}

		at := itemTime(item)
		if newest == nil || at.After(newestAt) {
			newest = item
			newestAt = at
		}
	}

	return newest
}

func itemTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

// CanonicalURL trims the URL, drops its fragment and accepts only http(s).
func CanonicalURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("URL is empty")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("URL host is empty")
	}

	u.Fragment = ""

	return u.String(), nil
}
