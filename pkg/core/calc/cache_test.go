package calc

import (
	"testing"
)

func TestMemoCache_HitOnIdenticalContent(t *testing.T) {
	cache := NewMemoCache()

	first, cached, err := cache.Analyze(sampleRows(), Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if cached {
		t.Fatal("first run must not report a cache hit")
	}

	second, cached, err := cache.Analyze(sampleRows(), Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !cached {
		t.Fatal("identical content must hit the cache")
	}
	if first != second {
		t.Error("cache hit must return the prior result without recomputation")
	}
}

func TestMemoCache_MissOnChangedContent(t *testing.T) {
	cache := NewMemoCache()
	if _, _, err := cache.Analyze(sampleRows(), Options{}); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	changed := sampleRows()
	changed[0].Current = "301"
	_, cached, err := cache.Analyze(changed, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if cached {
		t.Error("changed content must recompute")
	}
}

func TestMemoCache_ModeIsPartOfKey(t *testing.T) {
	cache := NewMemoCache()
	if _, _, err := cache.Analyze(sampleRows(), Options{Mode: ModeLenient}); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	_, cached, err := cache.Analyze(sampleRows(), Options{Mode: ModeStrict})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if cached {
		t.Error("numeric mode change must not reuse the cached table")
	}
}
