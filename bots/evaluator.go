package bots

import (
	"chessminimax/board"

	"github.com/notnil/chess"
)

// Terms is the evaluation split by feature, each already signed for the
// side the evaluation is computed for.
type Terms struct {
	Material      Score
	Positional    Score
	Check         Score
	Mobility      Score
	KingShield    Score
	KingAttack    Score
	BishopPair    Score
	RookOpenFile  Score
	PawnStructure Score
}

func (t Terms) Total() Score {
	return t.Material + t.Positional + t.Check + t.Mobility +
		t.KingShield + t.KingAttack + t.BishopPair + t.RookOpenFile + t.PawnStructure
}

type Evaluator struct {
	weights Weights
}

func NewEvaluator(w Weights) *Evaluator {
	return &Evaluator{weights: w}
}

func (e *Evaluator) Weights() Weights {
	return e.weights
}

// Evaluate scores b for side. Checkmate returns ScoreWin or ScoreLoss, dead
// draws return exactly zero.
func (e *Evaluator) Evaluate(b *board.Board, side chess.Color) Score {
	if b.IsCheckmate() {
		if b.Turn() != side {
			return ScoreWin
		}
		return ScoreLoss
	}
	if b.IsStalemate() || b.IsInsufficientMaterial() {
		return ScoreDraw
	}
	return e.Terms(b, side).Total()
}

// Terms computes the heuristic features without the terminal checks.
func (e *Evaluator) Terms(b *board.Board, side chess.Color) Terms {
	var t Terms
	t.Material, t.Positional = e.material(b, side)
	t.Check = e.check(b, side)
	t.Mobility = e.weights.Mobility * Score(b.MoveCountFor(side)-b.MoveCountFor(side.Other()))
	t.KingShield, t.KingAttack = e.kingSafety(b, side)
	t.BishopPair = e.bishopPair(b, side)
	t.RookOpenFile = e.rookOpenFiles(b, side) - e.rookOpenFiles(b, side.Other())
	t.PawnStructure = e.pawnStructure(b, side) - e.pawnStructure(b, side.Other())
	return t
}

func sign(color, side chess.Color) Score {
	if color == side {
		return 1
	}
	return -1
}

func (e *Evaluator) material(b *board.Board, side chess.Color) (material, positional Score) {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := b.PieceAt(sq)
		if piece == chess.NoPiece {
			continue
		}
		s := sign(piece.Color(), side)
		material += s * e.weights.Value(piece.Type())
		if table := e.weights.Table(piece.Type()); table != nil {
			positional += s * table.At(sq, piece.Color())
		}
	}
	return material, positional
}

// check looks only at the side to move, the one side that can be in check.
func (e *Evaluator) check(b *board.Board, side chess.Color) Score {
	if !b.IsCheck() {
		return 0
	}
	if b.Turn() != side {
		return e.weights.CheckBonus
	}
	return -e.weights.CheckPenalty
}

func (e *Evaluator) kingSafety(b *board.Board, side chess.Color) (shield, attack Score) {
	king := b.KingSquare(side)
	if king == chess.NoSquare {
		return 0, 0
	}
	ahead := 1
	if side == chess.Black {
		ahead = -1
	}
	file, rank := int(king.File()), int(king.Rank())+ahead
	pawns := 0
	for df := -1; df <= 1; df++ {
		f := file + df
		if f < 0 || f > 7 || rank < 0 || rank > 7 {
			continue
		}
		if b.PieceAt(chess.NewSquare(chess.File(f), chess.Rank(rank))) == chess.NewPiece(chess.Pawn, side) {
			pawns++
		}
	}
	shield = e.weights.KingShield * Score(pawns)
	attack = -e.weights.KingAttackPenalty * Score(len(b.Attackers(side.Other(), king)))
	return shield, attack
}

func (e *Evaluator) bishopPair(b *board.Board, side chess.Color) Score {
	var score Score
	for _, color := range []chess.Color{side, side.Other()} {
		if len(b.Pieces(chess.Bishop, color)) >= 2 {
			score += sign(color, side) * e.weights.BishopPair
		}
	}
	return score
}

// rookOpenFiles is the bonus for color's rooks on files without color's pawns.
func (e *Evaluator) rookOpenFiles(b *board.Board, color chess.Color) Score {
	files := pawnFiles(b, color)
	var score Score
	for _, sq := range b.Pieces(chess.Rook, color) {
		if files[sq.File()] == 0 {
			score += e.weights.RookOpenFile
		}
	}
	return score
}

// pawnStructure is the (non-positive) doubled and isolated pawn penalty for color.
func (e *Evaluator) pawnStructure(b *board.Board, color chess.Color) Score {
	files := pawnFiles(b, color)
	var score Score
	for _, count := range files {
		if count > 1 {
			score -= e.weights.DoubledPawn * Score(count-1)
		}
	}
	for _, sq := range b.Pieces(chess.Pawn, color) {
		f := int(sq.File())
		left := f > 0 && files[f-1] > 0
		right := f < 7 && files[f+1] > 0
		if !left && !right {
			score -= e.weights.IsolatedPawn
		}
	}
	return score
}

func pawnFiles(b *board.Board, color chess.Color) [8]int {
	var files [8]int
	for _, sq := range b.Pieces(chess.Pawn, color) {
		files[sq.File()]++
	}
	return files
}
