package board

import "github.com/notnil/chess"

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

type zobristTable struct {
	pieces    [13][64]uint64
	blackMove uint64
	castling  map[rune]uint64
	enPassant [8]uint64
}

var zobrist = newZobristTable(0x5eed1e55)

func newZobristTable(seed uint64) *zobristTable {
	rng := splitmix64{state: seed}
	z := &zobristTable{castling: make(map[rune]uint64, 4)}
	for p := range z.pieces {
		for sq := range z.pieces[p] {
			z.pieces[p][sq] = rng.next()
		}
	}
	z.blackMove = rng.next()
	for _, r := range "KQkq" {
		z.castling[r] = rng.next()
	}
	for f := range z.enPassant {
		z.enPassant[f] = rng.next()
	}
	return z
}

// Key is the position identity used by the transposition table. Move
// clocks are not part of it.
func (b *Board) Key() uint64 {
	f := b.top()
	if !f.keyed {
		f.key = computeKey(f)
		f.keyed = true
	}
	return f.key
}

func computeKey(f *frame) uint64 {
	var key uint64
	for sq, p := range f.pieces {
		if p != chess.NoPiece {
			key ^= zobrist.pieces[p][sq]
		}
	}
	if f.pos.Turn() == chess.Black {
		key ^= zobrist.blackMove
	}
	for _, r := range string(f.pos.CastleRights()) {
		key ^= zobrist.castling[r]
	}
	if ep := f.pos.EnPassantSquare(); ep != chess.NoSquare {
		key ^= zobrist.enPassant[ep.File()]
	}
	return key
}
