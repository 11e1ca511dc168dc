// Package pacer schedules frames at a fixed rate.
package pacer

import (
	"context"
	"sync"
	"time"
)

// Pacer releases frames at a target rate using a leaky bucket.
//
// It keeps a virtual due time that advances by one frame interval per
// frame. A caller that falls behind gets its next frame immediately but
// never a burst of catch-up frames: credit is capped at one frame.
//
// Pacer is safe for concurrent use.
type Pacer struct {
	mu sync.Mutex

	fps         float64
	lastDue     time.Time
	accumulated float64
	now         func() time.Time

	frames    int64
	late      int64
	totalWait time.Duration
}

// Stats describes pacing so far.
type Stats struct {
	FPS       float64       `json:"fps"`
	Frames    int64         `json:"frames"`
	Late      int64         `json:"late"`
	TotalWait time.Duration `json:"totalWait"`
}

// New creates a pacer for fps frames per second. Non-positive rates
// fall back to 1. The first frame is due immediately.
func New(fps float64) *Pacer {
	return newWithClock(fps, time.Now)
}

func newWithClock(fps float64, now func() time.Time) *Pacer {
	if fps <= 0 {
		fps = 1
	}
	return &Pacer{
		fps:         fps,
		now:         now,
		lastDue:     now(),
		accumulated: 1,
	}
}

// Next reserves the next frame and returns when it is due. A time in the
// past means the caller is behind schedule and should proceed at once.
func (p *Pacer) Next() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if elapsed := now.Sub(p.lastDue).Seconds(); elapsed > 0 {
		p.accumulated += elapsed * p.fps
	}
	if p.accumulated > 1 {
		p.accumulated = 1
	}
	p.frames++

	if p.accumulated >= 1 {
		if p.frames > 1 && now.Sub(p.lastDue) > p.interval() {
			p.late++
		}
		p.accumulated--
		p.lastDue = now
		return now
	}

	// lastDue moves to the due time so waking up there does not credit
	// the same interval twice
	wait := time.Duration((1 - p.accumulated) / p.fps * float64(time.Second))
	p.accumulated = 0
	p.lastDue = now.Add(wait)
	p.totalWait += wait
	return p.lastDue
}

// Wait blocks until the next frame is due or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	wait := time.Until(p.Next())
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SetFPS changes the target rate without carrying credit across the change.
func (p *Pacer) SetFPS(fps float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fps <= 0 {
		fps = 1
	}
	p.fps = fps
	p.accumulated = 0
	p.lastDue = p.now()
}

// FPS returns the target rate.
func (p *Pacer) FPS() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fps
}

// Stats returns pacing statistics.
func (p *Pacer) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		FPS:       p.fps,
		Frames:    p.frames,
		Late:      p.late,
		TotalWait: p.totalWait,
	}
}

func (p *Pacer) interval() time.Duration {
	return time.Duration(float64(time.Second) / p.fps)
}
