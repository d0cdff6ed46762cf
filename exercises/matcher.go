package exercises

import "strings"

// Match resolves a search term to a catalog entry. An exact
// case-insensitive name match wins outright; otherwise a candidate
// matches when either lowercased string contains the other, the
// shortest catalog name wins, and ties break by catalog order. The
// result is deterministic regardless of how the catalog grows, and a
// name that is itself a catalog entry never loses to a shorter
// substring of it.
func (c *Catalog) Match(term string) (Entry, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return Entry{}, false
	}

	var best Entry
	found := false
	for _, e := range c.Entries() {
		name := strings.ToLower(e.Name)
		if name == term {
			return e, true
		}
		if !strings.Contains(name, term) && !strings.Contains(term, name) {
			continue
		}
		if !found || len(e.Name) < len(best.Name) {
			best = e
			found = true
		}
	}
	return best, found
}
