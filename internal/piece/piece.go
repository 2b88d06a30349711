// Package piece implements the Liap Tui piece and deck model: the 32-piece
// Xiangqi-derived deck, hand classification, and play comparison.
package piece

import "fmt"

// Kind is a Xiangqi piece kind.
type Kind uint8

const (
	Soldier Kind = iota
	Cannon
	Horse
	Chariot
	Elephant
	Advisor
	General
)

var kindNames = map[Kind]string{
	Soldier:  "SOLDIER",
	Cannon:   "CANNON",
	Horse:    "HORSE",
	Chariot:  "CHARIOT",
	Elephant: "ELEPHANT",
	Advisor:  "ADVISOR",
	General:  "GENERAL",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// basePoint is the rank value of one piece of a kind, irrespective of color.
// General is the strongest, Soldier the weakest, matching the traditional
// Xiangqi hierarchy used for the beats() comparison.
var basePoint = map[Kind]int{
	Soldier:  2,
	Cannon:   3,
	Horse:    5,
	Chariot:  7,
	Elephant: 6,
	Advisor:  7,
	General:  14,
}

// countPerColor is the number of copies of each kind dealt per color, giving
// the traditional 16-piece-per-color, 32-piece total distribution.
var countPerColor = map[Kind]int{
	General:  1,
	Advisor:  2,
	Elephant: 2,
	Chariot:  2,
	Horse:    2,
	Cannon:   2,
	Soldier:  5,
}

// Color is a piece's side.
type Color uint8

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "RED"
	}
	return "BLACK"
}

// Piece is an immutable value: a kind, a color, and the point used for beat
// comparisons and declaration/hand-strength rules. Equality is structural.
type Piece struct {
	Kind  Kind
	Color Color
	Point int
}

func (p Piece) String() string {
	return fmt.Sprintf("%s-%s(%d)", p.Kind, p.Color, p.Point)
}

// Equal reports structural equality.
func (p Piece) Equal(o Piece) bool {
	return p.Kind == o.Kind && p.Color == o.Color && p.Point == o.Point
}

// NewDeck returns the 32-piece deck in canonical order (unshuffled).
func NewDeck() []Piece {
	deck := make([]Piece, 0, 32)
	for _, color := range []Color{Red, Black} {
		for kind := Soldier; kind <= General; kind++ {
			for i := 0; i < countPerColor[kind]; i++ {
				deck = append(deck, Piece{Kind: kind, Color: color, Point: basePoint[kind]})
			}
		}
	}
	return deck
}
