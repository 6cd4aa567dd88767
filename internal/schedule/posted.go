package schedule

import (
	"sync"
	"time"
)

// Fired is posted to the event loop when a Posted timer comes due. The loop
// must hand it back to Posted.Fire so the callback runs on the loop.
type Fired struct {
	ID TimerID
}

// Posted is a wall-clock Scheduler for event-loop driven UIs. When a timer
// elapses it does not call the callback directly; it posts a Fired message
// through the bound post function and runs the callback later, from Fire,
// on the loop that received the message. Cancelled timers never run even if
// their Fired message is already queued.
type Posted struct {
	mu      sync.Mutex
	post    func(any)
	nextID  TimerID
	pending map[TimerID]*postedTimer
}

type postedTimer struct {
	timer *time.Timer
	fn    func()
}

// NewPosted creates a scheduler that delivers Fired messages through post.
// post may be nil and bound later with Bind, before any timer elapses.
func NewPosted(post func(any)) *Posted {
	return &Posted{
		post:    post,
		pending: make(map[TimerID]*postedTimer),
	}
}

// Bind sets the function used to post Fired messages.
func (p *Posted) Bind(post func(any)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.post = post
}

// AfterFunc arms a wall-clock timer for fn.
func (p *Posted) AfterFunc(d time.Duration, fn func()) TimerID {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	id := p.nextID
	pt := &postedTimer{fn: fn}
	pt.timer = time.AfterFunc(d, func() { p.deliver(id) })
	p.pending[id] = pt
	return id
}

func (p *Posted) deliver(id TimerID) {
	p.mu.Lock()
	_, ok := p.pending[id]
	post := p.post
	p.mu.Unlock()
	if !ok || post == nil {
		return
	}
	post(Fired{ID: id})
}

// Fire runs the callback for id if it is still pending. It reports whether a
// callback ran.
func (p *Posted) Fire(id TimerID) bool {
	p.mu.Lock()
	pt, ok := p.pending[id]
	if ok {
		delete(p.pending, id)
	}
	p.mu.Unlock()
	if !ok {
		return false
	}
	pt.fn()
	return true
}

// Cancel stops a pending timer.
func (p *Posted) Cancel(id TimerID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pt, ok := p.pending[id]
	if !ok {
		return false
	}
	pt.timer.Stop()
	delete(p.pending, id)
	return true
}

// Stop cancels every pending timer.
func (p *Posted) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, pt := range p.pending {
		pt.timer.Stop()
		delete(p.pending, id)
	}
}

// Pending returns the number of armed timers.
func (p *Posted) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
