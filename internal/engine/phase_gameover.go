package engine

import "liap-tui-server/internal/gameerr"

// GameOverPhase is terminal: no further game actions, standings are final.
// The room is retained only until idle-eviction (internal/registry).
type GameOverPhase struct{}

func (GameOverPhase) OnEnter(r *Room) []Change {
	standings := make([]int, 4)
	for i, s := range r.Seats {
		standings[i] = s.Score
	}
	return []Change{{
		Phase:  GameOver,
		Fields: map[string]any{"final_scores": standings},
		Reason: "game_over",
	}}
}

func (GameOverPhase) AllowedActions(r *Room, seat int) []ActionKind { return nil }

func (GameOverPhase) Validate(r *Room, a Action) *gameerr.GameError {
	return gameerr.New(gameerr.IllegalPhase, "no actions accepted in GAME_OVER")
}

func (GameOverPhase) Apply(r *Room, a Action) []Change { return nil }

func (GameOverPhase) CheckTransition(r *Room) (Phase, bool) { return GameOver, false }

func (GameOverPhase) OnExit(r *Room) {}
