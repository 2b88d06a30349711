package engine

import (
	"math/rand"

	"liap-tui-server/internal/config"
	"liap-tui-server/internal/piece"
)

// Room is the aggregate root (spec.md §3). Only the Room Orchestrator
// (internal/room) ever mutates it, and only from its single consumer
// goroutine — mirroring the "Room exclusively owns its seats, hands, and
// journal" ownership rule and holdem.Game's mutex-guarded-but-single-writer
// discipline.
type Room struct {
	RoomID           string
	Seats            [4]Seat
	CurrentPhase     Phase
	RoundNumber      int
	TurnNumber       int
	RedealMultiplier int
	StarterSeat      int
	JournalVersion   uint64

	Config config.RoomConfig
	RNG    *rand.Rand

	// Preparation phase data.
	WeakHands        []int
	CurrentWeakSeat  int // -1 when none pending
	WeakHandsDecided map[int]bool
	AnyAccepted      bool

	// Declaration phase data.
	Declared      [4]bool
	DeclaredSum   int

	// Turn phase data.
	LeadType      piece.PlayType
	LeadCount     int
	Plays         [4][]piece.Piece
	PlayedSeats   map[int]bool
	PileLeadSeat  int

	// Turn results data.
	LastPileWinner int

	// Scoring data.
	LastRoundScores [4]int

	// Phase-readiness flags, set by Apply and consumed by CheckTransition;
	// these stand in for the orchestrator's configurable-duration timers
	// (spec.md §4.3 TURN_RESULTS/SCORING "auto-advance") without this
	// package ever touching a clock itself.
	ReadyToStart     bool
	TurnResultsReady bool
	ScoringReady     bool
}

// NewRoom constructs an empty WAITING room with an injected RNG, mirroring
// holdem.NewGame's dependency-injected construction (spec.md §9: "dependency
// injection of RNG, clock, broadcaster, and bot strategy").
func NewRoom(roomID string, cfg config.RoomConfig, rng *rand.Rand) *Room {
	r := &Room{
		RoomID:           roomID,
		CurrentPhase:     Waiting,
		RoundNumber:      1,
		RedealMultiplier: 1,
		StarterSeat:      0,
		Config:           cfg,
		RNG:              rng,
		CurrentWeakSeat:  -1,
	}
	for i := range r.Seats {
		r.Seats[i] = Seat{Index: i, ConnectionState: Disconnected}
	}
	return r
}

// AllSeatsFilled reports whether all four seats have an occupant (human or bot).
func (r *Room) AllSeatsFilled() bool {
	for _, s := range r.Seats {
		if !s.Filled {
			return false
		}
	}
	return true
}

// HandSizes returns each seat's current hand length, used by the
// per-seat-view snapshot to show hand_size without leaking hand contents.
func (r *Room) HandSizes() [4]int {
	var sizes [4]int
	for i, s := range r.Seats {
		sizes[i] = len(s.CurrentHand)
	}
	return sizes
}

func (r *Room) nextSeat(from int) int {
	return (from + 1) % 4
}
