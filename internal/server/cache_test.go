package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/winauto/windows-mcp/internal/model"
	"github.com/winauto/windows-mcp/internal/platform"
)

// countingReader counts WindowTree fetches so tests can observe cache hits.
type countingReader struct {
	fetches    int
	tree       []model.Element
	foreground uintptr
}

func (r *countingReader) ListWindows(platform.ListOptions) ([]model.Window, error) {
	return nil, nil
}

func (r *countingReader) ListMonitors() ([]model.Monitor, error) {
	return nil, nil
}

func (r *countingReader) WindowRect(uintptr) (model.RECT, error) {
	return model.RECT{Left: 0, Top: 0, Right: 800, Bottom: 600}, nil
}

func (r *countingReader) ForegroundWindow() (uintptr, error) {
	if r.foreground == 0 {
		return 0, fmt.Errorf("no foreground window")
	}
	return r.foreground, nil
}

func (r *countingReader) WindowTree(_ context.Context, _ uintptr, _ int) ([]model.Element, error) {
	r.fetches++
	return r.tree, nil
}

func testTree() []model.Element {
	return []model.Element{
		{ControlType: "Window", Name: "Main", Children: []model.Element{
			{ControlType: "Button", Name: "OK"},
		}},
	}
}

func TestTreeCacheReusesFreshEntries(t *testing.T) {
	reader := &countingReader{tree: testTree()}
	cache := NewTreeCache(time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		elements, err := cache.WindowTree(ctx, reader, 100, 15)
		if err != nil {
			t.Fatal(err)
		}
		if len(elements) != 1 || elements[0].Name != "Main" {
			t.Fatalf("unexpected tree: %+v", elements)
		}
	}
	if reader.fetches != 1 {
		t.Errorf("fetches = %d, want 1 (subsequent reads should hit the cache)", reader.fetches)
	}
}

func TestTreeCacheSeparatesDepths(t *testing.T) {
	reader := &countingReader{tree: testTree()}
	cache := NewTreeCache(time.Minute)
	ctx := context.Background()

	cache.WindowTree(ctx, reader, 100, 5)
	cache.WindowTree(ctx, reader, 100, 15)
	if reader.fetches != 2 {
		t.Errorf("fetches = %d, want 2 (different depths must not share entries)", reader.fetches)
	}
}

func TestTreeCacheInvalidateWindow(t *testing.T) {
	reader := &countingReader{tree: testTree()}
	cache := NewTreeCache(time.Minute)
	ctx := context.Background()

	cache.WindowTree(ctx, reader, 100, 15)
	cache.WindowTree(ctx, reader, 200, 15)
	cache.InvalidateWindow(100)

	cache.WindowTree(ctx, reader, 100, 15)
	cache.WindowTree(ctx, reader, 200, 15)
	if reader.fetches != 3 {
		t.Errorf("fetches = %d, want 3 (only window 100 should refetch)", reader.fetches)
	}
}

func TestTreeCacheInvalidateAll(t *testing.T) {
	reader := &countingReader{tree: testTree()}
	cache := NewTreeCache(time.Minute)
	ctx := context.Background()

	cache.WindowTree(ctx, reader, 100, 15)
	cache.WindowTree(ctx, reader, 200, 15)
	cache.InvalidateAll()

	cache.WindowTree(ctx, reader, 100, 15)
	if reader.fetches != 3 {
		t.Errorf("fetches = %d, want 3 after full invalidation", reader.fetches)
	}
}

func TestTreeCacheDisabledWithZeroTTL(t *testing.T) {
	reader := &countingReader{tree: testTree()}
	cache := NewTreeCache(0)
	ctx := context.Background()

	cache.WindowTree(ctx, reader, 100, 15)
	cache.WindowTree(ctx, reader, 100, 15)
	if reader.fetches != 2 {
		t.Errorf("fetches = %d, want 2 (zero TTL disables caching)", reader.fetches)
	}
	// No-ops rather than panics when disabled.
	cache.InvalidateWindow(100)
	cache.InvalidateAll()
}
