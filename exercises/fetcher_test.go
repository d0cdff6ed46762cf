package exercises

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const lazyPage = `<html><body>
<img class="exercise-gif" data-src="https://cdn.example.com/bench.gif" src="data:image/svg+xml;base64,PHN2Zz4=">
</body></html>`

const directSrcPage = `<html><body>
<img class="exercise-gif" src="https://cdn.example.com/squat.gif">
</body></html>`

const webpFallbackPage = `<html><body>
<img src="https://cdn.example.com/logo.png">
<img src="https://cdn.example.com/deadlift.webp">
<img src="https://cdn.example.com/deadlift.gif">
</body></html>`

const gifFallbackPage = `<html><body>
<img src="https://cdn.example.com/logo.png">
<img src="https://cdn.example.com/lunge.gif">
</body></html>`

const unusablePage = `<html><body>
<img class="exercise-gif" src="data:image/svg+xml;base64,PHN2Zz4=">
<img src="https://cdn.example.com/logo.png">
</body></html>`

// newFetcherServer serves a fixed page per path and returns a fetcher
// whose catalog points every entry at the server.
func newFetcherServer(t *testing.T, pages map[string]string) (*Fetcher, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)

	catalog := NewCatalog([]Entry{
		{Name: "Bench Press", Link: srv.URL + "/bench-press"},
		{Name: "Squat", Link: srv.URL + "/squat"},
		{Name: "Deadlift", Link: srv.URL + "/deadlift"},
		{Name: "Lunge", Link: srv.URL + "/lunge"},
		{Name: "Plank", Link: srv.URL + "/plank"},
		{Name: "Crunch", Link: srv.URL + "/crunch"},
	})
	return NewFetcher(catalog, 5*time.Second), srv
}

func defaultPages() map[string]string {
	return map[string]string{
		"/bench-press": lazyPage,
		"/squat":       directSrcPage,
		"/deadlift":    webpFallbackPage,
		"/lunge":       gifFallbackPage,
		"/plank":       unusablePage,
	}
}

// TestFetchBatch_FallbackChain verifies each step of the extraction
// chain against a page exercising exactly that step.
func TestFetchBatch_FallbackChain(t *testing.T) {
	fetcher, _ := newFetcherServer(t, defaultPages())

	cases := []struct {
		term string
		want string
	}{
		{"bench press", "https://cdn.example.com/bench.gif"},
		{"squat", "https://cdn.example.com/squat.gif"},
		{"deadlift", "https://cdn.example.com/deadlift.webp"},
		{"lunge", "https://cdn.example.com/lunge.gif"},
	}

	for _, tc := range cases {
		t.Run(tc.term, func(t *testing.T) {
			media, errs := fetcher.FetchBatch(context.Background(), []string{tc.term})
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %+v", errs)
			}
			if len(media) != 1 {
				t.Fatalf("got %d results, want 1", len(media))
			}
			if media[0].GifURL != tc.want {
				t.Errorf("GifURL = %q, want %q", media[0].GifURL, tc.want)
			}
		})
	}
}

// TestFetchBatch_PartialFailure submits a mix of good, unmatched, and
// unusable names; only the failures are dropped and the batch succeeds.
func TestFetchBatch_PartialFailure(t *testing.T) {
	fetcher, _ := newFetcherServer(t, defaultPages())

	names := []string{"bench press", "nonexistent-exercise-xyz", "plank", "crunch", "squat"}
	media, errs := fetcher.FetchBatch(context.Background(), names)

	if len(media) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(media), media)
	}
	// Input order is preserved among the survivors.
	if media[0].Name != "Bench Press" || media[1].Name != "Squat" {
		t.Errorf("result order = [%s, %s], want [Bench Press, Squat]", media[0].Name, media[1].Name)
	}

	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %+v", len(errs), errs)
	}
	reasons := map[string]string{}
	for _, e := range errs {
		reasons[e.Name] = e.Reason
	}
	if reasons["nonexistent-exercise-xyz"] != "no catalog match" {
		t.Errorf("unmatched reason = %q", reasons["nonexistent-exercise-xyz"])
	}
	if !strings.Contains(reasons["plank"], "no usable image") {
		t.Errorf("placeholder-only page reason = %q", reasons["plank"])
	}
	// "crunch" matches the catalog but its page 404s.
	if !strings.Contains(reasons["crunch"], "status 404") {
		t.Errorf("missing page reason = %q", reasons["crunch"])
	}
}

func TestFetchBatch_EmptyInput(t *testing.T) {
	fetcher, _ := newFetcherServer(t, defaultPages())
	media, errs := fetcher.FetchBatch(context.Background(), []string{})
	if media == nil || errs == nil {
		t.Error("expected empty slices, got nil")
	}
	if len(media) != 0 || len(errs) != 0 {
		t.Errorf("got %d results and %d errors, want 0 and 0", len(media), len(errs))
	}
}

// TestFetchBatch_ServerDown verifies a network-level failure is absorbed
// per item rather than failing the batch.
func TestFetchBatch_ServerDown(t *testing.T) {
	fetcher, srv := newFetcherServer(t, defaultPages())
	srv.Close()

	media, errs := fetcher.FetchBatch(context.Background(), []string{"bench press"})
	if len(media) != 0 {
		t.Errorf("got %d results, want 0", len(media))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
}
