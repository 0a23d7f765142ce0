// Package publication manages the in-memory registry of publication records.
package publication

import "sync"

// Publication pairs a human-readable title with a URL. Records are never
// mutated after creation.
type Publication struct {
	ID    string `json:"id"    example:"e7eedc79-0707-4fe4-8734-526b7ef13a7b"`
	Title string `json:"title" example:"Essay"`
	URL   string `json:"url"   example:"http://host/a.pdf"`
}

// Registry is the process-wide ordered collection of publications. It lives
// only as long as the process; nothing is persisted.
type Registry struct {
	mu    sync.RWMutex
	items []Publication
	index map[string]int // id -> position in items
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// List returns a copy of all publications in insertion order.
func (r *Registry) List() []Publication {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Publication, len(r.items))
	copy(out, r.items)
	return out
}

// Add appends p. It reports false, leaving the registry untouched, when the
// id is already taken.
func (r *Registry) Add(p Publication) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[p.ID]; exists {
		return false
	}
	r.index[p.ID] = len(r.items)
	r.items = append(r.items, p)
	return true
}

// Delete removes the publication with exactly this id and reports whether
// one was removed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.index[id]
	if !ok {
		return false
	}
	r.items = append(r.items[:pos], r.items[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.items); i++ {
		r.index[r.items[i].ID] = i
	}
	return true
}

// Len returns the number of stored publications.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
