// Package usage accumulates token counts reported by providers. A Tracker
// travels in the request context; providers record into it when present.
package usage

import (
	"context"
	"sync"
)

type contextKey struct{}

// Tracker aggregates usage across concurrent requests.
type Tracker struct {
	mu    sync.Mutex
	stats Stats
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{stats: Stats{ByModel: make(map[string]TokenCounts)}}
}

// Track records one request.
func (t *Tracker) Track(provider, model string, input, output int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Requests++
	t.stats.Total.Add(input, output)

	key := provider + "/" + model
	entry := t.stats.ByModel[key]
	entry.Add(input, output)
	t.stats.ByModel[key] = entry
}

// Stats returns a copy of the aggregated stats.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats := t.stats
	stats.ByModel = make(map[string]TokenCounts, len(t.stats.ByModel))
	for k, v := range t.stats.ByModel {
		stats.ByModel[k] = v
	}
	return stats
}

// NewContext returns a new context carrying the tracker.
func NewContext(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext retrieves the tracker from the context, or nil.
func FromContext(ctx context.Context) *Tracker {
	t, _ := ctx.Value(contextKey{}).(*Tracker)
	return t
}

// Record tracks usage on the context's tracker, if any.
func Record(ctx context.Context, provider, model string, input, output int) {
	if t := FromContext(ctx); t != nil {
		t.Track(provider, model, input, output)
	}
}
