package bots

import (
	"chessminimax/board"

	"github.com/notnil/chess"
)

// ChessBot is anything that can pick a move for the side to move in a game.
// BestMove returns nil when the game has no legal moves.
type ChessBot interface {
	BestMove(game *chess.Game) *chess.Move
	Name() string
}

// PositionEvaluator scores a position from side's point of view.
type PositionEvaluator interface {
	Evaluate(b *board.Board, side chess.Color) Score
}
