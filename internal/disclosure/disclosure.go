// Package disclosure implements collapsible section state: one open/closed
// flag per section, addressed by a stable key.
package disclosure

// Disclosure is a binary open/closed state with a per-instance default.
type Disclosure struct {
	open        bool
	defaultOpen bool
}

// New returns a disclosure starting at defaultOpen.
func New(defaultOpen bool) Disclosure {
	return Disclosure{open: defaultOpen, defaultOpen: defaultOpen}
}

// Toggle flips the state.
func (d *Disclosure) Toggle() { d.open = !d.open }

// Open reports whether the section is expanded.
func (d Disclosure) Open() bool { return d.open }

// DefaultOpen reports the initial state.
func (d Disclosure) DefaultOpen() bool { return d.defaultOpen }

// Set maps section keys to their disclosure state, keeping registration order.
type Set struct {
	order []string
	state map[string]*Disclosure
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{state: make(map[string]*Disclosure)}
}

// Add registers key with its default. Re-adding a key resets it to the new default.
func (s *Set) Add(key string, defaultOpen bool) {
	if _, ok := s.state[key]; !ok {
		s.order = append(s.order, key)
	}
	d := New(defaultOpen)
	s.state[key] = &d
}

// Toggle flips key. Unknown keys are ignored and report false.
func (s *Set) Toggle(key string) bool {
	d, ok := s.state[key]
	if !ok {
		return false
	}
	d.Toggle()
	return true
}

// IsOpen reports whether key is expanded. Unknown keys are closed.
func (s *Set) IsOpen(key string) bool {
	d, ok := s.state[key]
	return ok && d.Open()
}

// SetOpen forces key open or closed.
func (s *Set) SetOpen(key string, open bool) {
	if d, ok := s.state[key]; ok && d.Open() != open {
		d.Toggle()
	}
}

// Keys returns the registered keys in order.
func (s *Set) Keys() []string {
	return append([]string(nil), s.order...)
}

// Reset returns every section to its default.
func (s *Set) Reset() {
	for _, d := range s.state {
		*d = New(d.defaultOpen)
	}
}
