package exercises

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches caps the fan-out for a single batch so a long
// input list cannot open an unbounded number of outbound connections.
const maxConcurrentFetches = 8

// Media is one successful batch result.
type Media struct {
	Name   string `json:"name"`
	GifURL string `json:"gifUrl"`
	Link   string `json:"link"`
}

// FetchError reports why a single input name produced no result.
type FetchError struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Fetcher resolves exercise names through the catalog and scrapes a
// demonstration image from each matched reference page.
type Fetcher struct {
	catalog *Catalog
	client  *http.Client
	timeout time.Duration
}

// NewFetcher builds a Fetcher with a bounded per-fetch timeout so one
// slow remote page cannot stall a whole batch.
func NewFetcher(catalog *Catalog, timeout time.Duration) *Fetcher {
	return &Fetcher{
		catalog: catalog,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// FetchBatch resolves and fetches every name independently and
// concurrently, waiting for all of them. A failure (no match, network
// error, no usable image) drops that single name into the error list
// without aborting the batch. Successes keep the input order.
func (f *Fetcher) FetchBatch(ctx context.Context, names []string) ([]Media, []FetchError) {
	results := make([]*Media, len(names))
	failures := make([]*FetchError, len(names))

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentFetches)

	for i, name := range names {
		g.Go(func() error {
			entry, ok := f.catalog.Match(name)
			if !ok {
				failures[i] = &FetchError{Name: name, Reason: "no catalog match"}
				return nil
			}

			gifURL, err := f.fetchMediaURL(ctx, entry.Link)
			if err != nil {
				failures[i] = &FetchError{Name: name, Reason: err.Error()}
				return nil
			}

			results[i] = &Media{Name: entry.Name, GifURL: gifURL, Link: entry.Link}
			return nil
		})
	}
	g.Wait()

	media := []Media{}
	errs := []FetchError{}
	for i := range names {
		if results[i] != nil {
			media = append(media, *results[i])
		} else if failures[i] != nil {
			errs = append(errs, *failures[i])
		}
	}
	return media, errs
}

// fetchMediaURL downloads one reference page and extracts a
// demonstration image URL.
func (f *Fetcher) fetchMediaURL(ctx context.Context, link string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	url, ok := extractMediaURL(doc)
	if !ok {
		return "", fmt.Errorf("no usable image on page")
	}
	return url, nil
}

// extractMediaURL walks the fallback chain over a parsed page:
// the lazy-load attribute of the exercise image, its direct src, then
// any .webp image, then any .gif image. Inline SVG placeholders used by
// lazy loaders count as absent.
func extractMediaURL(doc *goquery.Document) (string, bool) {
	gif := doc.Find("img.exercise-gif").First()
	if v, ok := gif.Attr("data-src"); ok && usableImageURL(v) {
		return v, true
	}
	if v, ok := gif.Attr("src"); ok && usableImageURL(v) {
		return v, true
	}

	for _, ext := range []string{".webp", ".gif"} {
		var found string
		doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if v, ok := s.Attr("src"); ok && usableImageURL(v) && strings.Contains(v, ext) {
				found = v
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}

	return "", false
}

func usableImageURL(v string) bool {
	return v != "" && !strings.HasPrefix(v, "data:image/svg")
}
