package room

import (
	"liap-tui-server/internal/engine"
	"liap-tui-server/internal/gameerr"
)

// EventKind is the actor's internal event taxonomy, mirroring
// table.go's EventType enum (EventAction, EventTimeout, EventConnLost,
// EventConnResume, EventClose) generalized for a single-game room instead
// of a multi-hand poker table.
type EventKind int

const (
	EventAction EventKind = iota
	EventTick
	EventConnLost
	EventConnResume
	EventClose
	EventJoin
	EventGraceExpired
)

// Event is one unit pushed onto the actor's channel. Response is non-nil
// for EventAction submissions that want a synchronous result, mirroring
// table.go's `Event{..., Response: make(chan error, 1)}` pattern. The
// Join* fields are only set for EventJoin, which mutates seat membership
// directly rather than going through a phase's Validate/Apply — joining
// is room bookkeeping, not a game action (spec.md §4.2 distinguishes
// "room membership" from "game actions").
type Event struct {
	Kind     EventKind
	Action   engine.Action
	Seat     int
	Response chan SubmitResult

	JoinPlayerID string
	JoinName     string
	JoinResponse chan JoinResult
}

// JoinResult is what Actor.Join returns: the assigned seat index, or an
// error (room full, or already past WAITING).
type JoinResult struct {
	Seat int
	Err  *gameerr.GameError
}
