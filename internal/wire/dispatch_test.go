package wire

import "testing"

func TestDecodePiecesRoundTrips(t *testing.T) {
	pieces, err := decodePieces([]wirePiece{
		{Kind: "GENERAL", Color: "RED"},
		{Kind: "SOLDIER", Color: "BLACK"},
	})
	if err != nil {
		t.Fatalf("decodePieces: %v", err)
	}
	if len(pieces) != 2 {
		t.Fatalf("len(pieces) = %d, want 2", len(pieces))
	}
	if pieces[0].Point != 14 {
		t.Errorf("GENERAL point = %d, want 14", pieces[0].Point)
	}
	if pieces[1].Point != 2 {
		t.Errorf("SOLDIER point = %d, want 2", pieces[1].Point)
	}
}

func TestDecodePiecesRejectsUnknownKind(t *testing.T) {
	_, err := decodePieces([]wirePiece{{Kind: "DRAGON", Color: "RED"}})
	if err == nil {
		t.Fatal("expected an error for an unknown piece kind")
	}
}

func TestDecodePiecesRejectsUnknownColor(t *testing.T) {
	_, err := decodePieces([]wirePiece{{Kind: "GENERAL", Color: "GOLD"}})
	if err == nil {
		t.Fatal("expected an error for an unknown piece color")
	}
}
