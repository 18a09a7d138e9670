package viewer

import "sync/atomic"

// Repainter coalesces repaint requests. Request may be called from any
// goroutine; it calls post once until the render thread calls Begin.
type Repainter struct {
	pending atomic.Bool
	post    func()
}

// NewRepainter returns a repainter that schedules paints with post. For a
// tcell host post is typically a PostEvent of an interrupt.
func NewRepainter(post func()) *Repainter {
	if post == nil {
		post = func() {}
	}
	return &Repainter{post: post}
}

// Request asks for a repaint.
func (r *Repainter) Request() {
	if r.pending.CompareAndSwap(false, true) {
		r.post()
	}
}

// Begin marks the start of a paint. Requests made after it schedule
// another paint.
func (r *Repainter) Begin() { r.pending.Store(false) }

// Pending reports whether a paint has been requested but not begun.
func (r *Repainter) Pending() bool { return r.pending.Load() }
