package piece

import "sort"

// PlayType classifies a multi-piece play.
type PlayType uint8

const (
	Invalid PlayType = iota
	Single
	Pair
	Triple
	Straight
	FourOfKind
	FiveOfKind
	SixOfKind
	Extension
)

var playTypeNames = map[PlayType]string{
	Invalid:    "INVALID",
	Single:     "SINGLE",
	Pair:       "PAIR",
	Triple:     "TRIPLE",
	Straight:   "STRAIGHT",
	FourOfKind: "FOUR_OF_KIND",
	FiveOfKind: "FIVE_OF_KIND",
	SixOfKind:  "SIX_OF_KIND",
	Extension:  "EXTENSION",
}

func (t PlayType) String() string {
	if s, ok := playTypeNames[t]; ok {
		return s
	}
	return "INVALID"
}

// rankOrder gives each kind an ordinal used solely to detect straights
// (consecutive-kind runs), distinct from Point which drives value comparison.
var rankOrder = map[Kind]int{
	Soldier:  1,
	Cannon:   2,
	Horse:    3,
	Chariot:  4,
	Elephant: 5,
	Advisor:  6,
	General:  7,
}

func sumPoints(pieces []Piece) int {
	total := 0
	for _, p := range pieces {
		total += p.Point
	}
	return total
}

func sameColor(pieces []Piece) bool {
	if len(pieces) == 0 {
		return false
	}
	c := pieces[0].Color
	for _, p := range pieces[1:] {
		if p.Color != c {
			return false
		}
	}
	return true
}

// Classify returns the play type and total value of pieces, or (Invalid, 0)
// if pieces do not form any recognized play. A dump (an unclassifiable
// play) is Invalid — it is legal to play but can never win its pile.
func Classify(pieces []Piece) (PlayType, int) {
	n := len(pieces)
	if n == 0 || n > 6 {
		return Invalid, 0
	}
	if !sameColor(pieces) {
		return Invalid, 0
	}

	byKind := map[Kind]int{}
	for _, p := range pieces {
		byKind[p.Kind]++
	}

	if len(byKind) == 1 {
		switch n {
		case 1:
			return Single, sumPoints(pieces)
		case 2:
			return Pair, sumPoints(pieces)
		case 3:
			return Triple, sumPoints(pieces)
		case 4:
			return FourOfKind, sumPoints(pieces)
		case 5:
			return FiveOfKind, sumPoints(pieces)
		case 6:
			return SixOfKind, sumPoints(pieces)
		}
		return Invalid, 0
	}

	if n >= 3 && n <= 6 && isStraight(pieces, byKind) {
		return Straight, sumPoints(pieces)
	}

	if n == 4 && isPairExtension(byKind) {
		return Extension, sumPoints(pieces)
	}
	if n == 6 && isTripleExtension(byKind) {
		return Extension, sumPoints(pieces)
	}

	return Invalid, 0
}

// isStraight requires one piece per kind across consecutive rankOrder values.
func isStraight(pieces []Piece, byKind map[Kind]int) bool {
	for _, c := range byKind {
		if c != 1 {
			return false
		}
	}
	orders := make([]int, 0, len(byKind))
	for k := range byKind {
		orders = append(orders, rankOrder[k])
	}
	sort.Ints(orders)
	for i := 1; i < len(orders); i++ {
		if orders[i] != orders[i-1]+1 {
			return false
		}
	}
	return true
}

// isPairExtension recognizes two pairs of adjacent-rank kinds, e.g.
// {Horse,Horse,Chariot,Chariot}: an "extended pair" promotion.
func isPairExtension(byKind map[Kind]int) bool {
	if len(byKind) != 2 {
		return false
	}
	kinds := make([]Kind, 0, 2)
	for k, c := range byKind {
		if c != 2 {
			return false
		}
		kinds = append(kinds, k)
	}
	return abs(rankOrder[kinds[0]]-rankOrder[kinds[1]]) == 1
}

// isTripleExtension recognizes two triples of adjacent-rank kinds.
func isTripleExtension(byKind map[Kind]int) bool {
	if len(byKind) != 2 {
		return false
	}
	kinds := make([]Kind, 0, 2)
	for k, c := range byKind {
		if c != 3 {
			return false
		}
		kinds = append(kinds, k)
	}
	return abs(rankOrder[kinds[0]]-rankOrder[kinds[1]]) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
