package dashboard

import "sync"

// Region is one independently updated area of the rendered dashboard. A
// failed refresh leaves the previous content in place.
type Region struct {
	mu      sync.RWMutex
	content string
}

// Set replaces the rendered content.
func (r *Region) Set(content string) {
	r.mu.Lock()
	r.content = content
	r.mu.Unlock()
}

// Content returns the current rendered content.
func (r *Region) Content() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.content
}

// View holds the six regions of the dashboard. Each region is written only
// by its own pipeline.
type View struct {
	Summary       Region
	TopYield      Region
	Undervalued   Region
	HighLiquidity Region

	SignalChart  ChartSlot
	PremiumChart ChartSlot
}

func NewView() *View {
	return &View{}
}
