// Package room implements the Room Orchestrator (C4) and its embedded
// Action Queue (C2), grounded directly on
// apps/server/internal/table/table.go's per-table actor: one buffered
// `events` channel consumed by a single `run()` goroutine, a `SubmitEvent`
// send-then-await-response-channel submission pattern, and a ticker for
// timeouts/scheduled transitions.
package room

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"liap-tui-server/internal/engine"
	"liap-tui-server/internal/gameerr"
)

// dedupWindowPerSeat is the minimum per-seat recent-request_id window
// spec.md §4.2 requires ("≥ last 256 per seat").
const dedupWindowPerSeat = 256

// SubmitResult is what a caller of Submit gets back: either Applied set or
// a typed GameError, never both (spec.md §7: "apply is all-or-nothing"). A
// duplicate request_id gets back the result remembered for the original.
type SubmitResult struct {
	Err     *gameerr.GameError
	Applied bool // true when the action was validated and applied
}

// dedupEntry remembers a previously-applied request_id's outcome so a
// resend gets the byte-identical reply without re-executing (spec.md §4.2
// Idempotency, §7 CONFLICT, §8 "duplicate request_id... no new journal
// entries").
type dedupEntry struct {
	result SubmitResult
}

// ActionQueue holds the per-seat request_id dedup state of the room's
// action queue (C2). The FIFO itself is the Actor's buffered events
// channel, fed by the wire dispatcher, the bot scheduler and internal timers.
type ActionQueue struct {
	mu       sync.Mutex
	dedup    map[int]*lru.Cache[string, dedupEntry] // per-seat request_id -> outcome
	pending  map[int]map[string]bool                // per-seat in-flight/queued request_ids not yet resolved
	capacity int
}

func NewActionQueue(capacity int) *ActionQueue {
	q := &ActionQueue{
		dedup:    map[int]*lru.Cache[string, dedupEntry]{},
		pending:  map[int]map[string]bool{},
		capacity: capacity,
	}
	for seat := 0; seat < 4; seat++ {
		c, _ := lru.New[string, dedupEntry](dedupWindowPerSeat)
		q.dedup[seat] = c
		q.pending[seat] = map[string]bool{}
	}
	return q
}

// CheckDuplicate returns the remembered result for a.RequestID on a.Seat if
// one exists, and true — the caller must not re-apply the action
// (spec.md §7 CONFLICT: "reply with original result; do not re-apply").
// Queue-capacity back-pressure itself is enforced earlier, at Submit's
// non-blocking channel send (spec.md §4.2 "overflow rejects... OVERLOAD").
func (q *ActionQueue) CheckDuplicate(a engine.Action) (SubmitResult, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if a.RequestID == "" {
		return SubmitResult{}, false
	}
	cache, ok := q.dedup[a.Seat]
	if !ok {
		return SubmitResult{}, false
	}
	entry, found := cache.Get(a.RequestID)
	if !found {
		return SubmitResult{}, false
	}
	return entry.result, true
}

// Remember records the outcome of a.RequestID for future dedup lookups.
func (q *ActionQueue) Remember(a engine.Action, result SubmitResult) {
	if a.RequestID == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if cache, ok := q.dedup[a.Seat]; ok {
		cache.Add(a.RequestID, dedupEntry{result: result})
	}
}

// CancelSeat forgets a seat's in-flight bookkeeping on seat removal
// (spec.md §4.2 Cancellation); in-flight actions already dequeued are not
// affected since they run to completion before this is observed.
func (q *ActionQueue) CancelSeat(seat int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending[seat] = map[string]bool{}
}
