package analytics

import "sync"

// CelebrationTracker remembers which progress keys already crossed 100%.
// A key fires once per crossing and re-arms after dropping below 100%.
type CelebrationTracker struct {
	mu    sync.Mutex
	fired map[string]bool
}

func NewCelebrationTracker() *CelebrationTracker {
	return &CelebrationTracker{fired: make(map[string]bool)}
}

// Observe records pct for key and reports whether a celebration should fire now.
func (t *CelebrationTracker) Observe(key string, pct int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if pct < thresholdReached {
		delete(t.fired, key)
		return false
	}
	if t.fired[key] {
		return false
	}
	t.fired[key] = true
	return true
}

// Forget drops every key, used when the tracked day rolls over.
func (t *CelebrationTracker) Forget() {
	t.mu.Lock()
	t.fired = make(map[string]bool)
	t.mu.Unlock()
}
