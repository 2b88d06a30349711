// Package engine implements the Phase State machine (C3) and the Room
// aggregate (C4's owned data) from spec.md §3–§4. It is the pure,
// network-free core: holdem/game.go is this package's teacher — a
// mutex-guarded struct mutated by explicit, mostly-synchronous methods that
// return structured results instead of throwing.
package engine

import (
	"liap-tui-server/internal/piece"
)

// Phase is the closed set of room phases (spec.md §9: "finite closed
// variant set"), mirroring holdem/types.go's Phase byte enum + dictionary.
type Phase uint8

const (
	Waiting Phase = iota
	Preparation
	Declaration
	Turn
	TurnResults
	Scoring
	GameOver
)

var phaseNames = map[Phase]string{
	Waiting:     "waiting",
	Preparation: "preparation",
	Declaration: "declaration",
	Turn:        "turn",
	TurnResults: "turn_results",
	Scoring:     "scoring",
	GameOver:    "game_over",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// ConnectionState is a seat's connectivity, per spec.md §3.
type ConnectionState uint8

const (
	Connected ConnectionState = iota
	Disconnected
	BotTakeover
)

func (c ConnectionState) String() string {
	switch c {
	case Connected:
		return "CONNECTED"
	case Disconnected:
		return "DISCONNECTED"
	case BotTakeover:
		return "BOT_TAKEOVER"
	default:
		return "UNKNOWN"
	}
}

// Seat is one of the four fixed positions in a room.
type Seat struct {
	Index              int
	PlayerID           string
	DisplayName        string
	IsBot              bool
	IsHost             bool
	ConnectionState    ConnectionState
	Score              int
	CurrentHand        []piece.Piece
	DeclaredPileCount  int
	CapturedPileCount  int
	ZeroDeclaresStreak int
	Filled             bool
	PersonaID          string
}

// ActionKind is one of the player verbs named in spec.md §4.3/§6.
type ActionKind string

const (
	ActionAddBot        ActionKind = "add_bot"
	ActionRemovePlayer  ActionKind = "remove_player"
	ActionStartGame     ActionKind = "start_game"
	ActionAcceptRedeal  ActionKind = "accept_redeal"
	ActionDeclineRedeal ActionKind = "decline_redeal"
	ActionDeclare       ActionKind = "declare"
	ActionPlay          ActionKind = "play"
	ActionStartNextRound ActionKind = "start_next_round"
)

// Action is one dequeued unit of work for the Room Orchestrator (spec.md §3).
type Action struct {
	RequestID  string
	Seat       int
	Kind       ActionKind
	Payload    map[string]any
	ReceivedAt int64 // unix millis; supplied by the caller, never time.Now() inside engine
}

// Change is one journal entry (spec.md §3's Change Record).
type Change struct {
	Phase          Phase
	Fields         map[string]any
	Reason         string
	AppliedAt      int64
	TriggeredByID  string
}
