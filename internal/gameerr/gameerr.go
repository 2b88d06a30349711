// Package gameerr defines the room's error-kind taxonomy (spec.md §7),
// generalized from the teacher's two sentinel errors (ErrHandEnded,
// ErrOutOfTurn) and its InvalidStateError named-string-with-Error() pattern
// in holdem/errors.go into the full set of kinds the wire layer needs to
// report distinctly.
package gameerr

import "fmt"

// Kind is an error-kind tag, not a Go error type — every GameError carries
// exactly one Kind, and the wire layer serializes Kind verbatim into the
// outbound error frame's "type" field.
type Kind string

const (
	Validation    Kind = "VALIDATION"
	Unauthorized  Kind = "UNAUTHORIZED"
	IllegalPhase  Kind = "ILLEGAL_PHASE"
	IllegalAction Kind = "ILLEGAL_ACTION"
	NotFound      Kind = "NOT_FOUND"
	Conflict      Kind = "CONFLICT"
	Overload      Kind = "OVERLOAD"
	Internal      Kind = "INTERNAL"
)

// GameError is the typed error-kind result validate()/apply() return,
// replacing the source's exception-driven control flow (spec.md §9).
type GameError struct {
	Kind    Kind
	Message string
}

func (e *GameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, format string, args ...any) *GameError {
	return &GameError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrNotYourTurn        = New(IllegalAction, "not your turn")
	ErrIllegalPieces      = New(IllegalAction, "pieces not in hand")
	ErrWrongCount         = New(IllegalAction, "wrong piece count")
	ErrIllegalDeclaration = New(IllegalAction, "declaration violates sum rule")
)
