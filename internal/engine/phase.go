package engine

import "liap-tui-server/internal/gameerr"

// PhaseState is the interface every room phase implements (spec.md §4.3).
// Room Orchestrator (internal/room) drives these five hooks in lock-step;
// this package never touches a network socket or a clock directly, mirroring
// the teacher's holdem.Game being a pure, synchronously-mutated struct.
type PhaseState interface {
	// OnEnter performs phase-entry side effects (e.g. dealing) and returns
	// the Change batch describing the phase's initial public state.
	OnEnter(r *Room) []Change

	// AllowedActions lists the action kinds seat may submit right now.
	AllowedActions(r *Room, seat int) []ActionKind

	// Validate checks action legality without mutating r.
	Validate(r *Room, a Action) *gameerr.GameError

	// Apply mutates r according to a and returns the resulting Change batch.
	// Callers must have already called Validate; Apply does not re-validate.
	Apply(r *Room, a Action) []Change

	// CheckTransition reports the next phase, if the room is ready to leave
	// the current one.
	CheckTransition(r *Room) (Phase, bool)

	// OnExit clears phase-scoped scratch state before the next phase enters.
	OnExit(r *Room)
}

// Phases returns the registry of phase implementations, one per Phase value,
// analogous to holdem/types.go's PhaseTypeDictionary but holding behavior
// instead of display strings.
func Phases() map[Phase]PhaseState {
	return map[Phase]PhaseState{
		Waiting:     WaitingPhase{},
		Preparation: PreparationPhase{},
		Declaration: DeclarationPhase{},
		Turn:        TurnPhase{},
		TurnResults: TurnResultsPhase{},
		Scoring:     ScoringPhase{},
		GameOver:    GameOverPhase{},
	}
}

func contains(kinds []ActionKind, k ActionKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
