package schedule

import (
	"sort"
	"sync"
	"time"
)

// Virtual is a manually advanced Scheduler and Clock. Time only moves when
// Advance is called, which makes latency-driven behavior deterministic.
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	nextID TimerID
	timers map[TimerID]*virtualTimer
}

type virtualTimer struct {
	id  TimerID
	due time.Time
	fn  func()
}

// NewVirtual creates a virtual scheduler starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{
		now:    start,
		timers: make(map[TimerID]*virtualTimer),
	}
}

// Now returns the current virtual time.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// AfterFunc schedules fn at Now()+d.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) TimerID {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextID++
	id := v.nextID
	v.timers[id] = &virtualTimer{id: id, due: v.now.Add(d), fn: fn}
	return id
}

// Cancel removes a pending timer.
func (v *Virtual) Cancel(id TimerID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.timers[id]; !ok {
		return false
	}
	delete(v.timers, id)
	return true
}

// Pending returns the number of timers that have not fired or been cancelled.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// Advance moves virtual time forward by d, firing every timer that comes due
// in due-time order. Callbacks run without the scheduler lock held, so they
// may schedule or cancel further timers; timers scheduled by a callback fire
// in the same Advance if they fall inside the window.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		v.mu.Lock()
		next := v.nextDueLocked(target)
		if next == nil {
			v.now = target
			v.mu.Unlock()
			return
		}
		delete(v.timers, next.id)
		if next.due.After(v.now) {
			v.now = next.due
		}
		v.mu.Unlock()

		next.fn()
	}
}

func (v *Virtual) nextDueLocked(target time.Time) *virtualTimer {
	due := make([]*virtualTimer, 0, len(v.timers))
	for _, t := range v.timers {
		if !t.due.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})
	return due[0]
}
