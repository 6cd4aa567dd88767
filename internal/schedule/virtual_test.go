package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtual_AdvanceFiresDueTimersInOrder(t *testing.T) {
	v := NewVirtual(epoch)
	var order []string

	v.AfterFunc(300*time.Millisecond, func() { order = append(order, "late") })
	v.AfterFunc(100*time.Millisecond, func() { order = append(order, "early") })
	v.AfterFunc(time.Second, func() { order = append(order, "never") })

	v.Advance(500 * time.Millisecond)

	assert.Equal(t, []string{"early", "late"}, order)
	assert.Equal(t, 1, v.Pending())
	assert.Equal(t, epoch.Add(500*time.Millisecond), v.Now())
}

func TestVirtual_NowDuringCallbackIsDueTime(t *testing.T) {
	v := NewVirtual(epoch)
	var seen time.Time
	v.AfterFunc(1500*time.Millisecond, func() { seen = v.Now() })

	v.Advance(2 * time.Second)

	assert.Equal(t, epoch.Add(1500*time.Millisecond), seen)
}

func TestVirtual_Cancel(t *testing.T) {
	v := NewVirtual(epoch)
	fired := false
	id := v.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, v.Cancel(id))
	assert.False(t, v.Cancel(id), "second cancel reports nothing pending")

	v.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestVirtual_CallbackMaySchedule(t *testing.T) {
	v := NewVirtual(epoch)
	count := 0
	v.AfterFunc(time.Second, func() {
		count++
		v.AfterFunc(time.Second, func() { count++ })
	})

	v.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1, count)

	v.Advance(time.Second)
	assert.Equal(t, 2, count)
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	got := SystemClock{}.Now()
	assert.False(t, got.Before(before))
}
