package bots

import (
	"fmt"

	"chessminimax/board"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

type MinimaxBot struct {
	engine *Engine
	logger zerolog.Logger
}

func NewMinimaxBot(cfg Config, w Weights, logger zerolog.Logger) (*MinimaxBot, error) {
	engine, err := NewEngine(cfg, NewEvaluator(w), NewMoveOrderer(w), logger)
	if err != nil {
		return nil, err
	}
	return &MinimaxBot{engine: engine, logger: logger}, nil
}

func (b *MinimaxBot) Name() string {
	return fmt.Sprintf("Minimax Bot (depth %d)", b.engine.MaxDepth())
}

func (b *MinimaxBot) Engine() *Engine {
	return b.engine
}

// Search runs the engine for the side to move in game.
func (b *MinimaxBot) Search(game *chess.Game) (Result, error) {
	pos := game.Position()
	return b.engine.SelectMove(board.New(pos), pos.Turn())
}

func (b *MinimaxBot) BestMove(game *chess.Game) *chess.Move {
	if game == nil {
		return nil
	}
	res, err := b.Search(game)
	if err != nil {
		b.logger.Warn().Err(err).Str("fen", game.Position().String()).Msg("no move")
		return nil
	}
	return res.Move
}
