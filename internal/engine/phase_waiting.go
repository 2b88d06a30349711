package engine

import "liap-tui-server/internal/gameerr"

// WaitingPhase is the room's initial phase: accepts joins/bot adds, and
// the host's start_game, per spec.md §4.3.
type WaitingPhase struct{}

func (WaitingPhase) OnEnter(r *Room) []Change {
	return []Change{{
		Phase:  Waiting,
		Fields: map[string]any{"phase": "waiting"},
		Reason: "room_created",
	}}
}

func (WaitingPhase) AllowedActions(r *Room, seat int) []ActionKind {
	kinds := []ActionKind{ActionAddBot, ActionRemovePlayer}
	if r.Seats[seat].IsHost {
		kinds = append(kinds, ActionStartGame)
	}
	return kinds
}

func (p WaitingPhase) Validate(r *Room, a Action) *gameerr.GameError {
	if !contains(p.AllowedActions(r, a.Seat), a.Kind) {
		return gameerr.New(gameerr.IllegalPhase, "%s not accepted in WAITING", a.Kind)
	}
	if a.Kind == ActionStartGame {
		if !r.Seats[a.Seat].IsHost {
			return gameerr.New(gameerr.Unauthorized, "only the host may start the game")
		}
		if !r.AllSeatsFilled() {
			return gameerr.New(gameerr.IllegalAction, "all four seats must be filled to start")
		}
	}
	return nil
}

func (p WaitingPhase) Apply(r *Room, a Action) []Change {
	switch a.Kind {
	case ActionAddBot:
		for i := range r.Seats {
			if !r.Seats[i].Filled {
				r.Seats[i].Filled = true
				r.Seats[i].IsBot = true
				r.Seats[i].DisplayName = "Bot"
				r.Seats[i].ConnectionState = Connected
				return []Change{{Phase: Waiting, Fields: map[string]any{"seat": i, "is_bot": true}, Reason: "add_bot", TriggeredByID: a.RequestID}}
			}
		}
		return nil
	case ActionRemovePlayer:
		r.Seats[a.Seat] = Seat{Index: a.Seat, ConnectionState: Disconnected}
		return []Change{{Phase: Waiting, Fields: map[string]any{"seat": a.Seat}, Reason: "remove_player", TriggeredByID: a.RequestID}}
	case ActionStartGame:
		r.ReadyToStart = true
		return []Change{{Phase: Waiting, Fields: map[string]any{"starting": true}, Reason: "start_game", TriggeredByID: a.RequestID}}
	}
	return nil
}

func (WaitingPhase) CheckTransition(r *Room) (Phase, bool) {
	if r.ReadyToStart && r.AllSeatsFilled() {
		return Preparation, true
	}
	return Waiting, false
}

func (WaitingPhase) OnExit(r *Room) {
	r.ReadyToStart = false
}
