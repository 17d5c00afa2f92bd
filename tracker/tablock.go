package tracker

import (
	"sync"

	"github.com/google/uuid"
)

// TabState is the cross-tab lock state machine:
// idle -> announcing -> owning | blocked -> ended.
type TabState int

const (
	StateIdle TabState = iota
	StateAnnouncing
	StateOwning
	StateBlocked
	StateEnded
)

func (s TabState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnnouncing:
		return "announcing"
	case StateOwning:
		return "owning"
	case StateBlocked:
		return "blocked"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// Message kinds broadcast between sibling tabs.
const (
	MsgStarting = "starting" // a tab is attempting to start its timer
	MsgChecking = "checking" // probe for an existing owner
	MsgActive   = "active"   // an owning tab's reply to a probe
	MsgEnded    = "ended"    // owner released, blocked tabs may retry
)

// Message is one broadcast between tabs of the same user session.
type Message struct {
	Kind  string
	TabID string
}

// Bus is the broadcast channel between sibling tabs. Unsubscribe by
// calling the returned function.
type Bus interface {
	Publish(Message)
	Subscribe(handler func(Message)) (unsubscribe func())
}

// MemoryBus is an in-process Bus for tests and embedded use.
type MemoryBus struct {
	mu       sync.Mutex
	handlers map[int]func(Message)
	nextID   int
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[int]func(Message))}
}

func (b *MemoryBus) Publish(msg Message) {
	b.mu.Lock()
	handlers := make([]func(Message), 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(msg)
	}
}

func (b *MemoryBus) Subscribe(handler func(Message)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// TabLock keeps at most one tab per user session accruing time. It is
// advisory (same browser, same origin); the server-side daily cap is the
// actual enforcement point.
type TabLock struct {
	mu sync.Mutex

	id          string
	bus         Bus
	state       TabState
	unsubscribe func()
	onChange    func(TabState)
}

// NewTabLock creates an unstarted lock. onChange fires on every state
// transition (e.g. to toggle the clock's blocked flag); may be nil.
func NewTabLock(bus Bus, onChange func(TabState)) *TabLock {
	return &TabLock{
		id:       uuid.NewString(),
		bus:      bus,
		state:    StateIdle,
		onChange: onChange,
	}
}

// State returns the current lock state.
func (l *TabLock) State() TabState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Start announces this tab and probes for an existing owner. Without a
// competing announcement the tab owns the lock; any foreign "starting" or
// "active" heard after starting moves it to blocked.
func (l *TabLock) Start() {
	l.mu.Lock()
	if l.state != StateIdle {
		l.mu.Unlock()
		return
	}
	l.state = StateAnnouncing
	if l.unsubscribe == nil {
		l.unsubscribe = l.bus.Subscribe(l.handle)
	}
	l.mu.Unlock()

	l.notify(StateAnnouncing)

	l.bus.Publish(Message{Kind: MsgStarting, TabID: l.id})
	l.bus.Publish(Message{Kind: MsgChecking, TabID: l.id})

	l.mu.Lock()
	// Still announcing after the probe: no owner answered, take ownership.
	owned := l.state == StateAnnouncing
	if owned {
		l.state = StateOwning
	}
	l.mu.Unlock()

	if owned {
		l.notify(StateOwning)
	}
}

// Stop releases the lock and tells blocked siblings they may resume.
func (l *TabLock) Stop() {
	l.mu.Lock()
	if l.state == StateEnded || l.state == StateIdle {
		l.mu.Unlock()
		return
	}
	wasOwner := l.state == StateOwning
	l.state = StateEnded
	unsub := l.unsubscribe
	l.unsubscribe = nil
	l.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if wasOwner {
		l.bus.Publish(Message{Kind: MsgEnded, TabID: l.id})
	}
	l.notify(StateEnded)
}

func (l *TabLock) handle(msg Message) {
	if msg.TabID == l.id {
		return
	}

	l.mu.Lock()
	state := l.state
	var next TabState = state

	switch msg.Kind {
	case MsgStarting, MsgActive:
		// Another tab is (or was already) running after we tried to start.
		if state == StateAnnouncing || state == StateOwning {
			next = StateBlocked
		}
	case MsgChecking:
		// Answer probes while owning.
		if state == StateOwning {
			l.mu.Unlock()
			l.bus.Publish(Message{Kind: MsgActive, TabID: l.id})
			return
		}
	case MsgEnded:
		// Owner released; a blocked tab may announce again.
		if state == StateBlocked {
			next = StateIdle
		}
	}

	changed := next != state
	l.state = next
	l.mu.Unlock()

	if changed {
		l.notify(next)
	}
}

func (l *TabLock) notify(state TabState) {
	if l.onChange != nil {
		l.onChange(state)
	}
}
