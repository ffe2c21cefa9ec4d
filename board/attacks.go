package board

import "github.com/notnil/chess"

type offset struct{ df, dr int }

var (
	knightOffsets = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = []offset{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	diagonals     = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonals   = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

func step(sq chess.Square, o offset) (chess.Square, bool) {
	f := int(sq.File()) + o.df
	r := int(sq.Rank()) + o.dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return chess.NoSquare, false
	}
	return chess.NewSquare(chess.File(f), chess.Rank(r)), true
}

// Attackers returns the squares of byColor pieces attacking sq, whether or
// not sq is occupied. Pins are ignored.
func (b *Board) Attackers(byColor chess.Color, sq chess.Square) []chess.Square {
	var attackers []chess.Square
	add := func(from chess.Square, kinds ...chess.PieceType) {
		p := b.PieceAt(from)
		if p.Color() != byColor {
			return
		}
		for _, k := range kinds {
			if p.Type() == k {
				attackers = append(attackers, from)
				return
			}
		}
	}

	// a white pawn attacks upwards, so it sits one rank below its target
	pawnRank := -1
	if byColor == chess.Black {
		pawnRank = 1
	}
	for _, df := range []int{-1, 1} {
		if from, ok := step(sq, offset{df, pawnRank}); ok {
			add(from, chess.Pawn)
		}
	}
	for _, o := range knightOffsets {
		if from, ok := step(sq, o); ok {
			add(from, chess.Knight)
		}
	}
	for _, o := range kingOffsets {
		if from, ok := step(sq, o); ok {
			add(from, chess.King)
		}
	}
	slide := func(dirs []offset, kinds ...chess.PieceType) {
		for _, o := range dirs {
			from, ok := step(sq, o)
			for ok {
				if b.PieceAt(from) != chess.NoPiece {
					add(from, kinds...)
					break
				}
				from, ok = step(from, o)
			}
		}
	}
	slide(diagonals, chess.Bishop, chess.Queen)
	slide(orthogonals, chess.Rook, chess.Queen)
	return attackers
}

func isDarkSquare(sq chess.Square) bool {
	return (int(sq.File())+int(sq.Rank()))%2 == 0
}

// IsInsufficientMaterial reports whether neither side can possibly mate.
func (b *Board) IsInsufficientMaterial() bool {
	var counts [3][7]int
	var light, dark int
	for sq, p := range b.top().pieces {
		if p == chess.NoPiece {
			continue
		}
		counts[p.Color()][p.Type()]++
		if p.Type() == chess.Bishop {
			if isDarkSquare(chess.Square(sq)) {
				dark++
			} else {
				light++
			}
		}
	}
	return insufficientFor(counts, chess.White, light, dark) &&
		insufficientFor(counts, chess.Black, light, dark)
}

func insufficientFor(counts [3][7]int, color chess.Color, light, dark int) bool {
	own, opp := counts[color], counts[color.Other()]
	if own[chess.Pawn]+own[chess.Rook]+own[chess.Queen] > 0 {
		return false
	}
	if own[chess.Knight] > 0 {
		// a lone knight only mates with help from opposing pieces
		return own[chess.Knight]+own[chess.Bishop] == 1 &&
			opp[chess.Pawn]+opp[chess.Knight]+opp[chess.Bishop]+opp[chess.Rook] == 0
	}
	if own[chess.Bishop] > 0 {
		sameColour := light == 0 || dark == 0
		return sameColour &&
			opp[chess.Pawn] == 0 &&
			opp[chess.Knight] == 0
	}
	return true
}
