package engine

import (
	"liap-tui-server/internal/gameerr"
	"liap-tui-server/internal/piece"
)

// DeclarationPhase runs the starter-first, clockwise declaration round with
// the last-declarer sum constraint (spec.md §4.3 DECLARATION).
type DeclarationPhase struct{}

func (DeclarationPhase) OnEnter(r *Room) []Change {
	r.Declared = [4]bool{}
	r.DeclaredSum = 0
	return []Change{{
		Phase:  Declaration,
		Fields: map[string]any{"starter_seat": r.StarterSeat},
		Reason: "declaration_entered",
	}}
}

// currentDeclarer returns the next seat (starter-first, clockwise) that has
// not yet declared, or -1 if all have.
func (r *Room) currentDeclarer() int {
	for offset := 0; offset < 4; offset++ {
		idx := (r.StarterSeat + offset) % 4
		if !r.Declared[idx] {
			return idx
		}
	}
	return -1
}

func (r *Room) declaredCount() int {
	n := 0
	for _, d := range r.Declared {
		if d {
			n++
		}
	}
	return n
}

// AllowedDeclarations returns the legal declaration values for seat right
// now: 0..8, minus the sum-completing value when seat is the last declarer.
func AllowedDeclarations(r *Room, seat int) []int {
	isLast := r.declaredCount() == 3 && r.currentDeclarer() == seat
	forbidden := -1
	if isLast {
		forbidden = 8 - r.DeclaredSum
	}
	values := make([]int, 0, 9)
	for v := 0; v <= 8; v++ {
		if v == forbidden {
			continue
		}
		values = append(values, v)
	}
	return values
}

func (DeclarationPhase) AllowedActions(r *Room, seat int) []ActionKind {
	if r.currentDeclarer() == seat {
		return []ActionKind{ActionDeclare}
	}
	return nil
}

func (p DeclarationPhase) Validate(r *Room, a Action) *gameerr.GameError {
	if !contains(p.AllowedActions(r, a.Seat), a.Kind) {
		if r.currentDeclarer() != a.Seat {
			return gameerr.ErrNotYourTurn
		}
		return gameerr.New(gameerr.IllegalPhase, "%s not accepted in DECLARATION", a.Kind)
	}
	value, ok := a.Payload["value"].(int)
	if !ok {
		return gameerr.New(gameerr.Validation, "declare requires an integer 'value'")
	}
	if value < 0 || value > 8 {
		return gameerr.New(gameerr.IllegalAction, "declaration must be 0..8")
	}
	for _, allowed := range AllowedDeclarations(r, a.Seat) {
		if allowed == value {
			return nil
		}
	}
	return gameerr.ErrIllegalDeclaration
}

func (DeclarationPhase) Apply(r *Room, a Action) []Change {
	value := a.Payload["value"].(int)
	r.Seats[a.Seat].DeclaredPileCount = value
	r.Declared[a.Seat] = true
	r.DeclaredSum += value
	return []Change{{
		Phase:         Declaration,
		Fields:        map[string]any{"seat": a.Seat, "value": value},
		Reason:        "declare",
		TriggeredByID: a.RequestID,
	}}
}

func (DeclarationPhase) CheckTransition(r *Room) (Phase, bool) {
	if r.declaredCount() == 4 {
		return Turn, true
	}
	return Declaration, false
}

func (DeclarationPhase) OnExit(r *Room) {
	r.TurnNumber = 1
	r.PileLeadSeat = r.StarterSeat
	r.LeadType = 0
	r.LeadCount = 0
	r.Plays = [4][]piece.Piece{}
	r.PlayedSeats = map[int]bool{}
}
