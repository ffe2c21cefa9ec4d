package bots

import (
	"testing"

	"github.com/notnil/chess"
)

func indexOf(moves []*chess.Move, uci string) int {
	for i, m := range moves {
		if m.String() == uci {
			return i
		}
	}
	return -1
}

func TestOrderMostValuableVictimFirst(t *testing.T) {
	b := mustBoard(t, "7k/p7/8/3q4/Q3P3/8/8/4K3 w - - 0 1")
	o := NewMoveOrderer(DefaultWeights())
	ordered := o.Order(b, b.LegalMoves())

	pawnTakesQueen := indexOf(ordered, "e4d5")
	queenTakesPawn := indexOf(ordered, "a4a7")
	if pawnTakesQueen < 0 || queenTakesPawn < 0 {
		t.Fatalf("captures missing from %v", ordered)
	}
	if pawnTakesQueen != 0 {
		t.Fatalf("exd5 at %d, want first", pawnTakesQueen)
	}
	if queenTakesPawn != 1 {
		t.Fatalf("Qxa7 at %d, want second", queenTakesPawn)
	}
	for _, m := range ordered[2:] {
		if b.IsCapture(m) {
			t.Fatalf("capture %s sorted after quiet moves", m)
		}
	}
}

func TestQuietKeyBelowEveryCapture(t *testing.T) {
	w := DefaultWeights()
	o := NewMoveOrderer(w)
	worstCapture := w.Value(chess.Pawn) - w.Value(chess.Queen)
	if o.quietKey >= worstCapture {
		t.Fatalf("quiet key %d not below worst capture %d", o.quietKey, worstCapture)
	}
	b := mustBoard(t, startFEN)
	for _, m := range b.LegalMoves() {
		if got := o.Key(b, m); got != o.quietKey {
			t.Fatalf("%s: key %d, want quiet key %d", m, got, o.quietKey)
		}
	}
}

func TestOrderIsStableAndPure(t *testing.T) {
	b := mustBoard(t, startFEN)
	o := NewMoveOrderer(DefaultWeights())
	moves := b.LegalMoves()
	before := make([]string, len(moves))
	for i, m := range moves {
		before[i] = m.String()
	}
	ordered := o.Order(b, moves)
	if len(ordered) != len(moves) {
		t.Fatalf("got %d moves, want %d", len(ordered), len(moves))
	}
	for i, m := range ordered {
		// all quiet: generation order is kept
		if m.String() != before[i] {
			t.Fatalf("move %d = %s, want %s", i, m, before[i])
		}
		if moves[i].String() != before[i] {
			t.Fatal("input slice was modified")
		}
	}
}
