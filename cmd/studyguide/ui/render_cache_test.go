package ui

import (
	"strings"
	"testing"
)

func TestComputeKey(t *testing.T) {
	if ComputeKey("a", 1, true) != ComputeKey("a", 1, true) {
		t.Fatalf("expected same key for same inputs")
	}
	if ComputeKey("ab", "c") == ComputeKey("a", "bc") {
		t.Fatalf("string boundaries should affect the key")
	}
	if ComputeKey("md", 80) == ComputeKey("md", 81) {
		t.Fatalf("width should affect the key")
	}
}

func TestRenderCacheBounded(t *testing.T) {
	rc := NewRenderCache(2)
	rc.Set(1, "one")
	rc.Set(2, "two")
	if rc.Len() != 2 {
		t.Fatalf("Len = %d, want 2", rc.Len())
	}
	rc.Set(3, "three")
	if rc.Len() != 1 {
		t.Fatalf("Len after overflow = %d, want 1", rc.Len())
	}
	if _, ok := rc.Get(1); ok {
		t.Fatalf("evicted entry still present")
	}
	if got, ok := rc.Get(3); !ok || got != "three" {
		t.Fatalf("Get(3) = %q, %v", got, ok)
	}
}

func TestGetOrCompute(t *testing.T) {
	rc := NewRenderCache(10)
	calls := 0
	compute := func() string {
		calls++
		return "rendered"
	}
	for i := 0; i < 3; i++ {
		if got := rc.GetOrCompute(7, compute); got != "rendered" {
			t.Fatalf("GetOrCompute = %q", got)
		}
	}
	if calls != 1 {
		t.Fatalf("compute called %d times, want 1", calls)
	}
	hits, misses := rc.Stats()
	if hits != 2 || misses != 1 {
		t.Fatalf("stats = %d hits, %d misses", hits, misses)
	}
	rc.Clear()
	if rc.Len() != 0 {
		t.Fatalf("Clear left %d entries", rc.Len())
	}
}

func TestMarkdownRenderer(t *testing.T) {
	mr := NewMarkdownRenderer(StyleNoTTY, 60)
	out := mr.Render("Neural networks learn **weights** from data.")
	if !strings.Contains(out, "Neural networks learn") || !strings.Contains(out, "weights") {
		t.Fatalf("unexpected render: %q", out)
	}
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Fatalf("render should be trimmed: %q", out)
	}

	mr.Render("Neural networks learn **weights** from data.")
	if hits, _ := mr.Cache().Stats(); hits != 1 {
		t.Fatalf("expected a cache hit on the second render, got %d", hits)
	}

	if mr.Render("   ") != "" {
		t.Fatalf("blank markdown should render empty")
	}
}

func TestMarkdownRendererWidth(t *testing.T) {
	mr := NewMarkdownRenderer(StyleNoTTY, 5)
	if mr.Width() != 20 {
		t.Fatalf("width should clamp to 20, got %d", mr.Width())
	}
	mr.SetWidth(40)
	if mr.Width() != 40 || mr.Style() != StyleNoTTY {
		t.Fatalf("SetWidth: width %d style %q", mr.Width(), mr.Style())
	}
}

func TestStyleFor(t *testing.T) {
	if StyleFor("", true) != StyleDark || StyleFor("", false) != StyleLight {
		t.Fatalf("dark flag not honored")
	}
	if StyleFor("dracula", true) != "dracula" {
		t.Fatalf("override not honored")
	}
}
