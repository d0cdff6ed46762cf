// Package exercises resolves free-form exercise names against a static
// catalog and fetches a demonstration image for each match.
package exercises

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Entry is one read-only catalog row: a canonical exercise name and the
// reference page its demonstration image is scraped from.
type Entry struct {
	Name string
	Link string
}

// Catalog is the thread-safe holder for the loaded entries. Reloads
// replace the slice wholesale under the write lock.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewCatalog(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

func (c *Catalog) Replace(entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
}

func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries
}

// ParseCatalog reads catalog entries from CSV with a "Name,Link" header.
func ParseCatalog(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != 2 || header[0] != "Name" || header[1] != "Link" {
		return nil, fmt.Errorf("invalid header format: expected [Name Link], got %v", header)
	}

	var entries []Entry
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		if record[0] == "" || record[1] == "" {
			return nil, fmt.Errorf("invalid record, empty name or link: %v", record)
		}
		entries = append(entries, Entry{Name: record[0], Link: record[1]})
	}

	return entries, nil
}

// LoadCatalog loads the catalog once at startup.
func LoadCatalog(path string) (*Catalog, error) {
	entries, err := ParseCatalog(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(entries), nil
}

// Watcher reloads the catalog when its CSV file is rewritten.
type Watcher struct {
	catalog *Catalog
	path    string
	watcher *fsnotify.Watcher
}

// NewWatcher watches the directory containing path; editors replace
// files rather than writing in place, so watching the file itself would
// drop the watch after the first save.
func NewWatcher(path string, catalog *Catalog) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{catalog: catalog, path: path, watcher: w}, nil
}

// Watch blocks, reloading the catalog on every write or create of the
// watched file. Parse failures keep the previous catalog.
func (w *Watcher) Watch() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			log.Printf("Catalog file changed: %s", event.Name)
			entries, err := ParseCatalog(w.path)
			if err != nil {
				log.Printf("Error reloading catalog: %v", err)
				continue
			}
			w.catalog.Replace(entries)
			log.Printf("Catalog reloaded: %d entries", len(entries))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Catalog watcher error: %v", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
