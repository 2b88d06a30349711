package bots

import (
	"math/rand"
	"sync"
	"time"

	"liap-tui-server/internal/engine"
)

// pendingKey identifies one scheduled-but-not-yet-fired bot decision.
type pendingKey struct {
	RoomID string
	Seat   int
}

// Manager schedules human-like, cancellable think-delays before enqueuing a
// bot's decision, grounded on holdem/npc/manager.go's SpawnNPC/ThinkDelay
// scheduling (there: 2-5s base + jitter before a bet; here: a configurable
// window per spec.md §4.6/§5).
type Manager struct {
	registry *PersonaRegistry
	rng      *rand.Rand

	mu      sync.Mutex
	pending map[pendingKey]chan struct{}
}

func NewManager(registry *PersonaRegistry) *Manager {
	return &Manager{
		registry: registry,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		pending:  map[pendingKey]chan struct{}{},
	}
}

// StrategyFor resolves a seat's persona into a Strategy, defaulting to the
// Baseline persona when personaID is unknown or empty.
func (m *Manager) StrategyFor(personaID string) Strategy {
	p, ok := m.registry.Get(personaID)
	if !ok {
		p = Baseline
	}
	return RuleBrain{Persona: p}
}

// Schedule delays by a random interval in [min, max), then calls decide and
// hands the result to submit — unless Cancel(roomID, seat) or a newer
// Schedule for the same seat runs first. This must be invoked from a goroutine the
// caller owns; it blocks until fired or cancelled and is meant to be
// launched with `go`.
func (m *Manager) Schedule(roomID string, seat int, min, max time.Duration, decide func() engine.Action, submit func(engine.Action)) {
	cancel := make(chan struct{})
	key := pendingKey{RoomID: roomID, Seat: seat}

	m.mu.Lock()
	if old, ok := m.pending[key]; ok {
		close(old)
	}
	m.pending[key] = cancel
	m.mu.Unlock()

	delay := min
	if max > min {
		delay = min + time.Duration(m.rng.Int63n(int64(max-min)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-cancel:
		return
	case <-timer.C:
	}

	m.mu.Lock()
	if m.pending[key] == cancel {
		delete(m.pending, key)
	} else {
		// A newer schedule superseded this one while we were waiting.
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	submit(decide())
}

// Cancel aborts any pending scheduled decision for (roomID, seat) — called
// by the room actor on human reconnection and on every phase change
// (spec.md §4.6: "cancellable if the seat's state changes").
func (m *Manager) Cancel(roomID string, seat int) {
	key := pendingKey{RoomID: roomID, Seat: seat}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cancel, ok := m.pending[key]; ok {
		close(cancel)
		delete(m.pending, key)
	}
}
