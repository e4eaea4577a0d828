package dashboard

import "sync"

// ChartKind distinguishes the two rendered chart types.
type ChartKind string

const (
	KindDoughnut ChartKind = "doughnut"
	KindBar      ChartKind = "bar"
)

// Chart is one rendered chart instance. Labels, values, and colors share one
// index; Tooltips carry the preformatted hover text per slice or bar.
type Chart struct {
	Kind     ChartKind
	Labels   []string
	Values   []int
	Colors   []string
	Tooltips []string

	mu        sync.Mutex
	destroyed bool
}

// Destroy releases the instance. Safe to call more than once.
func (c *Chart) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.mu.Unlock()
}

// Live reports whether the instance has not been destroyed.
func (c *Chart) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.destroyed
}

// ChartSlot owns at most one live chart instance. Replace destroys the
// current occupant before installing the new one, so re-rendering the same
// slot never leaves two live instances behind.
type ChartSlot struct {
	mu      sync.Mutex
	current *Chart
}

// Replace destroys the occupant, then installs c.
func (s *ChartSlot) Replace(c *Chart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Destroy()
	}
	s.current = c
}

// Release destroys and clears the occupant.
func (s *ChartSlot) Release() {
	s.Replace(nil)
}

// Current returns the live occupant, or nil.
func (s *ChartSlot) Current() *Chart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
