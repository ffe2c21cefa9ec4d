package bots

import (
	"testing"

	"chessminimax/board"

	"github.com/notnil/chess"
)

const (
	startFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	bareKingsFEN = "8/8/8/4k3/8/8/8/4K3 w - - 0 1"
)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEvaluateCheckmate(t *testing.T) {
	e := NewEvaluator(DefaultWeights())
	b := mustBoard(t, foolsMateFEN)
	if got := e.Evaluate(b, chess.White); got != ScoreLoss {
		t.Fatalf("mated side: got %d, want %d", got, ScoreLoss)
	}
	if got := e.Evaluate(b, chess.Black); got != ScoreWin {
		t.Fatalf("mating side: got %d, want %d", got, ScoreWin)
	}
}

func TestEvaluateDrawsAreZero(t *testing.T) {
	e := NewEvaluator(DefaultWeights())
	for _, fen := range []string{stalemateFEN, bareKingsFEN, "8/8/8/4k3/8/8/8/3NK3 b - - 0 1"} {
		b := mustBoard(t, fen)
		for _, side := range []chess.Color{chess.White, chess.Black} {
			if got := e.Evaluate(b, side); got != 0 {
				t.Errorf("%s as %s: got %d, want 0", fen, board.ColorName(side), got)
			}
		}
	}
}

func TestStartPositionTerms(t *testing.T) {
	e := NewEvaluator(DefaultWeights())
	b := mustBoard(t, startFEN)
	for _, side := range []chess.Color{chess.White, chess.Black} {
		got := e.Terms(b, side)
		want := Terms{KingShield: 30}
		if got != want {
			t.Fatalf("%s: got %+v, want %+v", board.ColorName(side), got, want)
		}
		if score := e.Evaluate(b, side); score != 30 {
			t.Fatalf("%s: Evaluate = %d, want 30", board.ColorName(side), score)
		}
	}
}

func TestKingUnderDoubleAttack(t *testing.T) {
	w := DefaultWeights()
	e := NewEvaluator(w)
	b := mustBoard(t, "4r1k1/8/8/8/8/3n4/8/4K3 w - - 0 1")
	terms := e.Terms(b, chess.White)
	if terms.KingAttack != -2*w.KingAttackPenalty {
		t.Fatalf("king attack = %d, want %d", terms.KingAttack, -2*w.KingAttackPenalty)
	}
	if terms.KingShield != 0 {
		t.Fatalf("king shield = %d, want 0", terms.KingShield)
	}
	if terms.Check != -w.CheckPenalty {
		t.Fatalf("check = %d, want %d", terms.Check, -w.CheckPenalty)
	}
	if got := e.Evaluate(b, chess.White); got != terms.Total() {
		t.Fatalf("Evaluate = %d, Terms total = %d", got, terms.Total())
	}

	black := e.Terms(b, chess.Black)
	if black.Check != w.CheckBonus {
		t.Fatalf("check bonus for black = %d, want %d", black.Check, w.CheckBonus)
	}
}

func TestPieceSquareOrientation(t *testing.T) {
	w := DefaultWeights()
	pawns := w.Table(chess.Pawn)
	if got := pawns.At(chess.E7, chess.White); got != 50 {
		t.Fatalf("white pawn e7 = %d, want 50", got)
	}
	if got := pawns.At(chess.E2, chess.Black); got != 50 {
		t.Fatalf("black pawn e2 = %d, want 50", got)
	}
	if got := pawns.At(chess.D2, chess.White); got != -20 {
		t.Fatalf("white pawn d2 = %d, want -20", got)
	}
	kings := w.Table(chess.King)
	if kings.At(chess.G1, chess.White) != kings.At(chess.G8, chess.Black) {
		t.Fatal("king tables are not mirrored")
	}
}

func TestBishopPair(t *testing.T) {
	w := Weights{BishopPair: 7}
	e := NewEvaluator(w)
	b := mustBoard(t, "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	if got := e.Terms(b, chess.White).BishopPair; got != 7 {
		t.Fatalf("white: got %d, want 7", got)
	}
	if got := e.Terms(b, chess.Black).BishopPair; got != -7 {
		t.Fatalf("black: got %d, want -7", got)
	}
}

func TestPawnStructure(t *testing.T) {
	w := DefaultWeights()
	e := NewEvaluator(w)
	b := mustBoard(t, "4k3/8/8/8/8/4P3/4P3/4K3 w - - 0 1")
	want := -(w.DoubledPawn + 2*w.IsolatedPawn)
	if got := e.Terms(b, chess.White).PawnStructure; got != want {
		t.Fatalf("white: got %d, want %d", got, want)
	}
	if got := e.Terms(b, chess.Black).PawnStructure; got != -want {
		t.Fatalf("black: got %d, want %d", got, -want)
	}

	connected := mustBoard(t, "4k3/8/8/8/8/8/3PP3/4K3 w - - 0 1")
	if got := e.Terms(connected, chess.White).PawnStructure; got != 0 {
		t.Fatalf("connected pawns: got %d, want 0", got)
	}
}

func TestRookOpenFile(t *testing.T) {
	w := DefaultWeights()
	e := NewEvaluator(w)
	closed := mustBoard(t, "4k3/8/8/8/8/8/P7/R3K3 w - - 0 1")
	if got := e.Terms(closed, chess.White).RookOpenFile; got != 0 {
		t.Fatalf("closed file: got %d, want 0", got)
	}
	open := mustBoard(t, "r3k3/8/8/8/8/8/1P6/R3K3 w - - 0 1")
	// both rooks stand on files without their own pawns
	if got := e.Terms(open, chess.White).RookOpenFile; got != 0 {
		t.Fatalf("both open: got %d, want 0", got)
	}
	onlyWhite := mustBoard(t, "r3k3/p7/8/8/8/8/1P6/R3K3 w - - 0 1")
	if got := e.Terms(onlyWhite, chess.White).RookOpenFile; got != w.RookOpenFile {
		t.Fatalf("white open: got %d, want %d", got, w.RookOpenFile)
	}
	if got := e.Terms(onlyWhite, chess.Black).RookOpenFile; got != -w.RookOpenFile {
		t.Fatalf("seen by black: got %d, want %d", got, -w.RookOpenFile)
	}
}

func TestPassedPawnWeightIsInert(t *testing.T) {
	b := mustBoard(t, "4k3/8/3P4/8/8/8/8/4K3 w - - 0 1")
	w := DefaultWeights()
	base := NewEvaluator(w).Evaluate(b, chess.White)
	w.PassedPawn = 10_000
	if got := NewEvaluator(w).Evaluate(b, chess.White); got != base {
		t.Fatalf("passed pawn weight changed the score: %d vs %d", got, base)
	}
}

func TestEvaluateLeavesBoardUntouched(t *testing.T) {
	e := NewEvaluator(DefaultWeights())
	b := mustBoard(t, "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	key, turn := b.Key(), b.Turn()
	first := e.Evaluate(b, chess.Black)
	if b.Key() != key || b.Turn() != turn || b.Ply() != 0 {
		t.Fatal("evaluation changed the board")
	}
	if second := e.Evaluate(b, chess.Black); second != first {
		t.Fatalf("evaluation is not deterministic: %d vs %d", first, second)
	}
}

func TestFiniteScoresStayBelowMate(t *testing.T) {
	e := NewEvaluator(DefaultWeights())
	b := mustBoard(t, "QQQQkQQQ/QQQQQQQQ/8/8/8/8/8/4K3 b - - 0 1")
	if got := e.Terms(b, chess.White).Total(); got >= ScoreWin-MaxSearchDepth {
		t.Fatalf("finite score %d reaches mate range", got)
	}
}
