package bots

import (
	"chessminimax/board"

	"github.com/notnil/chess"
)

// NewbornBot does not search: it plays the first move of the capture
// ordering, grabbing the most valuable piece it can with its cheapest piece.
type NewbornBot struct {
	orderer *MoveOrderer
}

func NewNewbornBot() *NewbornBot {
	return &NewbornBot{orderer: NewMoveOrderer(DefaultWeights())}
}

func (b *NewbornBot) BestMove(game *chess.Game) *chess.Move {
	pos := board.New(game.Position())
	moves := b.orderer.Order(pos, pos.LegalMoves())
	if len(moves) > 0 {
		return moves[0]
	}
	return nil
}

func (b *NewbornBot) Name() string {
	return "Newborn"
}
