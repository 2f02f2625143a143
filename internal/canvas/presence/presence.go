// Package presence tracks remote collaborators' cursors. It never touches
// the item collection; entries expire after a TTL without updates.
package presence

import (
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"socketBoard/internal/models/whiteboard"
)

const DefaultTTL = 30 * time.Second

// Palette colors are assigned to collaborators that report none.
var Palette = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#ec4899", "#06b6d4"}

type Presence struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Color    string            `json:"color"`
	Cursor   *whiteboard.Point `json:"cursor"`
	LastSeen time.Time         `json:"last_seen"`
}

// ColorFor picks a stable palette color for id.
func ColorFor(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return Palette[h.Sum32()%uint32(len(Palette))]
}

// Tracker is safe for concurrent use: updates usually arrive on a network
// goroutine while the UI reads.
type Tracker struct {
	mu      sync.RWMutex
	self    string
	ttl     time.Duration
	entries map[string]Presence
}

// NewTracker ignores updates from self. A non-positive ttl selects DefaultTTL.
func NewTracker(self string, ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tracker{self: self, ttl: ttl, entries: make(map[string]Presence)}
}

func (t *Tracker) TTL() time.Duration {
	return t.ttl
}

// Apply records an update seen at now. Empty name or color fields keep
// the previously known values.
func (t *Tracker) Apply(p Presence, now time.Time) {
	if p.ID == "" || p.ID == t.self {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, ok := t.entries[p.ID]
	if ok {
		if p.Name == "" {
			p.Name = prev.Name
		}
		if p.Color == "" {
			p.Color = prev.Color
		}
	}
	if p.Color == "" {
		p.Color = ColorFor(p.ID)
	}
	if p.Cursor != nil {
		c := *p.Cursor
		p.Cursor = &c
	}
	p.LastSeen = now
	t.entries[p.ID] = p
}

// Leave drops a collaborator immediately.
func (t *Tracker) Leave(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

func (t *Tracker) fresh(p Presence, now time.Time) bool {
	return now.Sub(p.LastSeen) <= t.ttl
}

// Collaborators returns live entries sorted by name, then id.
func (t *Tracker) Collaborators(now time.Time) []Presence {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Presence, 0, len(t.entries))
	for _, p := range t.entries {
		if !t.fresh(p, now) {
			continue
		}
		if p.Cursor != nil {
			c := *p.Cursor
			p.Cursor = &c
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Prune removes expired entries and returns their ids.
func (t *Tracker) Prune(now time.Time) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var gone []string
	for id, p := range t.entries {
		if !t.fresh(p, now) {
			gone = append(gone, id)
			delete(t.entries, id)
		}
	}
	sort.Strings(gone)
	return gone
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
