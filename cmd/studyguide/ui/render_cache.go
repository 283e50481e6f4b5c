// Package ui provides rendering cache for markdown blocks in the guide.
package ui

import (
	"hash/fnv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// RenderCache provides hash-based caching for rendered content.
type RenderCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	maxSize int
	hits    int
	misses  int
}

// NewRenderCache creates a new render cache with the specified max size.
// When full, the cache is emptied before the next insert.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &RenderCache{
		entries: make(map[uint64]string),
		maxSize: maxSize,
	}
}

// ComputeKey generates a cache key from strings, ints and bools.
func ComputeKey(inputs ...interface{}) uint64 {
	h := fnv.New64a()
	var b [8]byte
	for _, input := range inputs {
		switch v := input.(type) {
		case string:
			h.Write([]byte(v))
			h.Write([]byte{0})
		case int:
			u := uint64(v)
			for i := range b {
				b[i] = byte(u >> (8 * i))
			}
			h.Write(b[:])
		case bool:
			if v {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return h.Sum64()
}

// Get retrieves cached content if available.
func (rc *RenderCache) Get(key uint64) (string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	content, ok := rc.entries[key]
	if ok {
		rc.hits++
	} else {
		rc.misses++
	}
	return content, ok
}

// Set stores rendered content in the cache.
func (rc *RenderCache) Set(key uint64, content string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if _, ok := rc.entries[key]; !ok && len(rc.entries) >= rc.maxSize {
		rc.entries = make(map[uint64]string)
	}
	rc.entries[key] = content
}

// Len returns the number of cached entries.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}

// Stats returns hit and miss counts.
func (rc *RenderCache) Stats() (hits, misses int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hits, rc.misses
}

// Clear empties the cache.
func (rc *RenderCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[uint64]string)
}

// GetOrCompute retrieves from cache or computes if missing.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() string) string {
	if content, ok := rc.Get(key); ok {
		return content
	}
	content := compute()
	rc.Set(key, content)
	return content
}

// Markdown style names accepted by glamour.WithStylePath.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// MarkdownRenderer renders markdown through glamour, caching by text, width
// and style.
type MarkdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    *RenderCache
}

// NewMarkdownRenderer creates a renderer for the given glamour style and
// wrap width. An empty style means auto detection.
func NewMarkdownRenderer(style string, width int) *MarkdownRenderer {
	mr := &MarkdownRenderer{cache: NewRenderCache(256)}
	mr.configure(style, width)
	return mr
}

// StyleFor maps a dark-mode flag and an optional override to a style name.
func StyleFor(override string, dark bool) string {
	if override != "" {
		return override
	}
	if dark {
		return StyleDark
	}
	return StyleLight
}

func (mr *MarkdownRenderer) configure(style string, width int) {
	if style == "" {
		style = StyleAuto
	}
	if width < 20 {
		width = 20
	}
	mr.style, mr.width = style, width

	var err error
	if style == StyleAuto {
		mr.renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
	} else {
		mr.renderer, err = glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(width),
		)
	}
	if err != nil {
		mr.renderer = nil
	}
}

// Width returns the current wrap width.
func (mr *MarkdownRenderer) Width() int { return mr.width }

// Style returns the current style name.
func (mr *MarkdownRenderer) Style() string { return mr.style }

// SetWidth rebuilds the renderer when the wrap width changes.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width == mr.width {
		return
	}
	mr.configure(mr.style, width)
}

// Render returns md rendered for the terminal. If glamour fails the raw
// markdown is returned.
func (mr *MarkdownRenderer) Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	key := ComputeKey(md, mr.width, mr.style)
	return mr.cache.GetOrCompute(key, func() string {
		if mr.renderer == nil {
			return md
		}
		out, err := mr.renderer.Render(md)
		if err != nil {
			return md
		}
		return strings.Trim(out, "\n")
	})
}

// Cache exposes the underlying cache.
func (mr *MarkdownRenderer) Cache() *RenderCache { return mr.cache }
