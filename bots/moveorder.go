package bots

import (
	"sort"

	"chessminimax/board"

	"github.com/notnil/chess"
)

// MoveOrderer puts captures first, most valuable victim and least valuable
// attacker leading, so alpha-beta finds cutoffs early.
type MoveOrderer struct {
	weights  Weights
	quietKey Score
}

func NewMoveOrderer(w Weights) *MoveOrderer {
	var highest Score
	for _, kind := range []chess.PieceType{chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen, chess.King} {
		highest = max(highest, w.Value(kind))
	}
	// the lowest capture key is 0 - highest
	return &MoveOrderer{weights: w, quietKey: -highest - 1}
}

// Key is the sort priority of m in b.
func (o *MoveOrderer) Key(b *board.Board, m *chess.Move) Score {
	if !b.IsCapture(m) {
		return o.quietKey
	}
	return o.weights.Value(b.CapturedKind(m)) - o.weights.Value(b.MovingKind(m))
}

type orderedMove struct {
	move *chess.Move
	key  Score
}

// Order returns a new slice sorted by descending Key. Equal keys keep their
// generation order.
func (o *MoveOrderer) Order(b *board.Board, moves []*chess.Move) []*chess.Move {
	ordered := make([]orderedMove, len(moves))
	for i, m := range moves {
		ordered[i] = orderedMove{move: m, key: o.Key(b, m)}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].key > ordered[j].key
	})
	result := make([]*chess.Move, len(ordered))
	for i := range ordered {
		result[i] = ordered[i].move
	}
	return result
}
