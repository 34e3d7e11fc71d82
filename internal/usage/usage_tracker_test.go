package usage

import (
	"context"
	"sync"
	"testing"
)

func TestTracker_TrackAggregates(t *testing.T) {
	tracker := NewTracker()
	tracker.Track("anthropic", "claude-3-sonnet-20240229", 10, 5)
	tracker.Track("anthropic", "claude-3-sonnet-20240229", 2, 3)
	tracker.Track("gemini", "gemini-2.5-flash", 1, 1)

	stats := tracker.Stats()
	if stats.Requests != 3 {
		t.Fatalf("Requests=%d, want 3", stats.Requests)
	}
	if stats.Total.Input != 13 || stats.Total.Output != 9 || stats.Total.Total != 22 {
		t.Fatalf("Total=%+v, want input=13 output=9 total=22", stats.Total)
	}
	if got := stats.ByModel["anthropic/claude-3-sonnet-20240229"]; got.Total != 20 {
		t.Fatalf("ByModel[anthropic]=%+v, want total=20", got)
	}

	// Stats is a copy.
	stats.ByModel["x"] = TokenCounts{}
	if _, ok := tracker.Stats().ByModel["x"]; ok {
		t.Fatal("Stats leaked internal map")
	}
}

func TestTracker_Concurrent(t *testing.T) {
	tracker := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Track("openai", "gpt-4o-mini", 1, 1)
		}()
	}
	wg.Wait()
	if got := tracker.Stats().Total.Total; got != 100 {
		t.Fatalf("Total=%d, want 100", got)
	}
}

func TestContextHelpers(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Fatal("expected nil tracker")
	}
	// Recording without a tracker is a no-op.
	Record(context.Background(), "p", "m", 1, 1)

	tracker := NewTracker()
	ctx := NewContext(context.Background(), tracker)
	if FromContext(ctx) != tracker {
		t.Fatal("FromContext mismatch")
	}
	Record(ctx, "p", "m", 4, 6)
	if got := tracker.Stats().Total.Total; got != 10 {
		t.Fatalf("Total=%d, want 10", got)
	}
}
