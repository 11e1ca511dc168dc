package stats

import "sync"

// Locked guards a Registry with a single mutex.
//
// Counter handles are not exposed directly because they would escape the
// lock; use Do for anything beyond the wrapped operations.
type Locked struct {
	mu sync.Mutex
	r  *Registry
}

// NewLocked wraps r. The caller must stop using r directly.
func NewLocked(r *Registry) *Locked {
	return &Locked{r: r}
}

// Add records value in the named counter.
func (l *Locked) Add(name string, value float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Add(name, value)
}

// Snapshot returns a snapshot of the registry.
func (l *Locked) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Snapshot()
}

// CounterSnapshot returns the snapshot of one counter if it exists.
func (l *Locked) CounterSnapshot(name string) (CounterSnapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.r.Lookup(name)
	if !ok {
		return CounterSnapshot{}, false
	}
	return c.Snapshot(), true
}

// FrameStart marks the beginning of a frame.
func (l *Locked) FrameStart() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.FrameStart()
}

// FrameEnd closes a frame. The sink, if any, is refreshed while the lock is
// held and must not call back into l.
func (l *Locked) FrameEnd() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.FrameEnd()
}

// ResetCounter clears one counter in place.
func (l *Locked) ResetCounter(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.ResetCounter(name)
}

// Reset drops every counter.
func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Reset()
}

// Do runs fn with exclusive access to the registry.
func (l *Locked) Do(fn func(r *Registry)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.r)
}
