// Package arena plays bots against each other.
package arena

import (
	"context"
	"errors"
	"fmt"

	"chessminimax/bots"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

var (
	ErrNoMove      = errors.New("bot returned no move")
	ErrIllegalMove = errors.New("bot played an illegal move")
)

// CommentMaxPlies marks a game adjudicated as a draw by the ply limit.
const CommentMaxPlies = "max plies"

type Options struct {
	// FEN is the starting position; empty means the standard one.
	FEN string
	// MaxPlies adjudicates a draw once reached. Zero plays to the end.
	MaxPlies int
	Logger   zerolog.Logger
}

type Result struct {
	ID      uuid.UUID
	Number  int
	White   string
	Black   string
	Outcome chess.Outcome
	Comment string
	Plies   int
	PGN     string
}

func newGame(fen string) (*chess.Game, error) {
	if fen == "" {
		return chess.NewGame(), nil
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("arena: parse fen: %w", err)
	}
	return chess.NewGame(opt), nil
}

// PlayGame plays one game to completion. Threefold repetition and the
// fifty move rule are claimed as soon as they become available.
func PlayGame(ctx context.Context, white, black bots.ChessBot, opts Options) (Result, error) {
	game, err := newGame(opts.FEN)
	if err != nil {
		return Result{}, err
	}
	res := Result{ID: uuid.New(), White: white.Name(), Black: black.Name()}
	log := opts.Logger.With().Str("game", res.ID.String()).Logger()
	log.Debug().Str("white", res.White).Str("black", res.Black).Msg("game started")

	for game.Outcome() == chess.NoOutcome {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if opts.MaxPlies > 0 && res.Plies >= opts.MaxPlies {
			if err := game.Draw(chess.DrawOffer); err != nil {
				return res, fmt.Errorf("arena: adjudicate: %w", err)
			}
			res.Comment = CommentMaxPlies
			break
		}

		bot := white
		if game.Position().Turn() == chess.Black {
			bot = black
		}
		m := bot.BestMove(game)
		if m == nil {
			return res, fmt.Errorf("%w: %s at %s", ErrNoMove, bot.Name(), game.Position())
		}
		if err := game.Move(m); err != nil {
			return res, fmt.Errorf("%w: %s played %s: %v", ErrIllegalMove, bot.Name(), m, err)
		}
		res.Plies++
		claimDraw(game)
	}

	res.Outcome = game.Outcome()
	if res.Comment == "" {
		res.Comment = game.Method().String()
	}
	res.PGN = game.String()
	log.Debug().
		Str("result", res.Outcome.String()).
		Str("comment", res.Comment).
		Int("plies", res.Plies).
		Msg("game finished")
	return res, nil
}

func claimDraw(game *chess.Game) {
	if game.Outcome() != chess.NoOutcome {
		return
	}
	for _, method := range game.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			// only fails when the claim is not eligible
			_ = game.Draw(method)
			return
		}
	}
}
