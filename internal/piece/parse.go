package piece

import "fmt"

var nameToKind = map[string]Kind{
	"SOLDIER":  Soldier,
	"CANNON":   Cannon,
	"HORSE":    Horse,
	"CHARIOT":  Chariot,
	"ELEPHANT": Elephant,
	"ADVISOR":  Advisor,
	"GENERAL":  General,
}

// ParseKind maps a wire-format kind name back to a Kind, for decoding a
// client's "play"/"pieces" payload.
func ParseKind(name string) (Kind, bool) {
	k, ok := nameToKind[name]
	return k, ok
}

// ParseColor maps a wire-format color name back to a Color.
func ParseColor(name string) (Color, bool) {
	switch name {
	case "RED":
		return Red, true
	case "BLACK":
		return Black, true
	default:
		return 0, false
	}
}

// New constructs a Piece from its kind and color, filling in Point from the
// kind's canonical base value — the only way wire-layer code should build a
// Piece, so Point can never drift from NewDeck's values.
func New(kind Kind, color Color) (Piece, error) {
	pt, ok := basePoint[kind]
	if !ok {
		return Piece{}, fmt.Errorf("unknown piece kind %v", kind)
	}
	return Piece{Kind: kind, Color: color, Point: pt}, nil
}
