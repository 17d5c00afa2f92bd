package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabLockSingleTabOwns(t *testing.T) {
	bus := NewMemoryBus()

	var states []TabState
	lock := NewTabLock(bus, func(s TabState) { states = append(states, s) })

	lock.Start()

	assert.Equal(t, StateOwning, lock.State())
	assert.Equal(t, []TabState{StateAnnouncing, StateOwning}, states)
}

func TestTabLockSecondTabTakesOver(t *testing.T) {
	bus := NewMemoryBus()

	first := NewTabLock(bus, nil)
	second := NewTabLock(bus, nil)

	first.Start()
	assert.Equal(t, StateOwning, first.State())

	// The newer tab announces; the previous owner yields so exactly one
	// tab keeps accruing.
	second.Start()
	assert.Equal(t, StateBlocked, first.State())
	assert.Equal(t, StateOwning, second.State())
}

func TestTabLockOwnerAnswersProbe(t *testing.T) {
	bus := NewMemoryBus()

	owner := NewTabLock(bus, nil)
	owner.Start()

	var heard []Message
	unsub := bus.Subscribe(func(m Message) { heard = append(heard, m) })
	defer unsub()

	bus.Publish(Message{Kind: MsgChecking, TabID: "probe"})

	var replies int
	for _, m := range heard {
		if m.Kind == MsgActive {
			replies++
			assert.NotEqual(t, "probe", m.TabID)
		}
	}
	assert.Equal(t, 1, replies)
}

func TestTabLockBlockedResumesAfterOwnerEnds(t *testing.T) {
	bus := NewMemoryBus()

	var firstStates []TabState
	first := NewTabLock(bus, func(s TabState) { firstStates = append(firstStates, s) })
	second := NewTabLock(bus, nil)

	first.Start()
	second.Start()
	assert.Equal(t, StateBlocked, first.State())

	// The owner closing releases the lock; the blocked tab returns to
	// idle and may start again.
	second.Stop()
	assert.Equal(t, StateIdle, first.State())

	first.Start()
	assert.Equal(t, StateOwning, first.State())
	assert.Contains(t, firstStates, StateBlocked)
	assert.Contains(t, firstStates, StateIdle)
}

func TestTabLockStopByBlockedTabDoesNotRelease(t *testing.T) {
	bus := NewMemoryBus()

	first := NewTabLock(bus, nil)
	second := NewTabLock(bus, nil)
	third := NewTabLock(bus, nil)

	first.Start()
	second.Start()
	assert.Equal(t, StateBlocked, first.State())
	assert.Equal(t, StateOwning, second.State())

	// A blocked tab closing must not free siblings while the real owner
	// is still running.
	first.Stop()
	assert.Equal(t, StateOwning, second.State())

	third.Start()
	assert.Equal(t, StateBlocked, second.State())
	assert.Equal(t, StateOwning, third.State())
}

func TestTabLockStartIsIdempotentWhileOwning(t *testing.T) {
	bus := NewMemoryBus()

	lock := NewTabLock(bus, nil)
	lock.Start()
	assert.Equal(t, StateOwning, lock.State())

	// A repeated Start must not re-announce and block itself
	lock.Start()
	assert.Equal(t, StateOwning, lock.State())
}
