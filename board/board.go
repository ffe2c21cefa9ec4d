// Package board adapts github.com/notnil/chess to the queries the search
// needs: make/unmake on a position stack, terminal tests, piece lookups,
// attacker sets and a Zobrist identity key.
package board

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

type frame struct {
	pos    *chess.Position
	pieces [64]chess.Piece
	moves  []*chess.Move
	key    uint64
	keyed  bool
}

func newFrame(pos *chess.Position) *frame {
	f := &frame{pos: pos}
	board := pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		f.pieces[sq] = board.Piece(sq)
	}
	return f
}

// Board is a position plus the stack of positions pushed on top of it.
// Push and Pop must be strictly paired.
type Board struct {
	stack []*frame
}

func New(pos *chess.Position) *Board {
	return &Board{stack: []*frame{newFrame(pos)}}
}

// FromFEN builds a board from a FEN string.
func FromFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("board: parse fen %q: %w", fen, err)
	}
	return New(chess.NewGame(opt).Position()), nil
}

func (b *Board) top() *frame {
	return b.stack[len(b.stack)-1]
}

// Position returns the current position. It must not be retained across Push/Pop.
func (b *Board) Position() *chess.Position {
	return b.top().pos
}

func (b *Board) Turn() chess.Color {
	return b.top().pos.Turn()
}

// Ply is the number of moves pushed since construction.
func (b *Board) Ply() int {
	return len(b.stack) - 1
}

func (b *Board) LegalMoves() []*chess.Move {
	f := b.top()
	if f.moves == nil {
		f.moves = f.pos.ValidMoves()
	}
	return f.moves
}

// Push plays m, which must be legal in the current position.
func (b *Board) Push(m *chess.Move) {
	b.stack = append(b.stack, newFrame(b.top().pos.Update(m)))
}

// Pop takes back the last pushed move.
func (b *Board) Pop() {
	if len(b.stack) == 1 {
		panic("board: pop on root position")
	}
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *Board) IsCheck() bool {
	turn := b.Turn()
	king := b.KingSquare(turn)
	if king == chess.NoSquare {
		return false
	}
	return len(b.Attackers(turn.Other(), king)) > 0
}

func (b *Board) IsCheckmate() bool {
	return len(b.LegalMoves()) == 0 && b.IsCheck()
}

func (b *Board) IsStalemate() bool {
	return len(b.LegalMoves()) == 0 && !b.IsCheck()
}

func (b *Board) IsGameOver() bool {
	return len(b.LegalMoves()) == 0 || b.IsInsufficientMaterial()
}

func (b *Board) PieceAt(sq chess.Square) chess.Piece {
	return b.top().pieces[sq]
}

// Pieces lists the squares holding kind/color in ascending square order.
func (b *Board) Pieces(kind chess.PieceType, color chess.Color) []chess.Square {
	var squares []chess.Square
	want := chess.NewPiece(kind, color)
	for sq, p := range b.top().pieces {
		if p == want {
			squares = append(squares, chess.Square(sq))
		}
	}
	return squares
}

// KingSquare returns chess.NoSquare when color has no king.
func (b *Board) KingSquare(color chess.Color) chess.Square {
	want := chess.NewPiece(chess.King, color)
	for sq, p := range b.top().pieces {
		if p == want {
			return chess.Square(sq)
		}
	}
	return chess.NoSquare
}

func (b *Board) MovingKind(m *chess.Move) chess.PieceType {
	return b.PieceAt(m.S1()).Type()
}

func (b *Board) IsCapture(m *chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}

// CapturedKind is chess.NoPieceType for quiet moves. En passant captures a pawn
// that is not on the destination square.
func (b *Board) CapturedKind(m *chess.Move) chess.PieceType {
	if m.HasTag(chess.EnPassant) {
		return chess.Pawn
	}
	return b.PieceAt(m.S2()).Type()
}

// MoveCountFor counts legal moves as if color were to move. The live
// stack is left untouched; the other side is counted on a copy rebuilt from
// FEN with the turn swapped and the en passant square dropped.
func (b *Board) MoveCountFor(color chess.Color) int {
	if color == b.Turn() {
		return len(b.LegalMoves())
	}
	fields := strings.Fields(b.Position().String())
	if len(fields) < 4 {
		panic(fmt.Sprintf("board: unexpected fen %q", b.Position().String()))
	}
	fields[1] = color.String()
	fields[3] = "-"
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		panic(fmt.Sprintf("board: swap turn: %v", err))
	}
	return len(chess.NewGame(opt).Position().ValidMoves())
}

// Draw renders the current board with unicode pieces, white at the bottom.
func (b *Board) Draw() string {
	return b.Position().Board().Draw()
}

// ColorName returns "white" or "black".
func ColorName(c chess.Color) string {
	switch c {
	case chess.White:
		return "white"
	case chess.Black:
		return "black"
	default:
		return "none"
	}
}
