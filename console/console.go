// Package console plays a game against the engine over a line based
// text interface.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"chessminimax/board"
	"chessminimax/bots"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

const (
	promptColor     = "Choose black or white (B or W)"
	promptMove      = "Enter your move..."
	promptValidMove = "Enter a valid move..."
)

type Options struct {
	Config  bots.Config
	Weights bots.Weights
	// FEN is the starting position; empty means the standard one.
	FEN string
	// Color is "w" or "b". Empty asks the user.
	Color  string
	Logger zerolog.Logger
}

type session struct {
	out       io.Writer
	lines     *bufio.Scanner
	game      *chess.Game
	user      chess.Color
	engine    *bots.Engine
	evaluator *bots.Evaluator
}

// Run plays until the game ends, the input is exhausted, the user types
// "quit" or ctx is cancelled.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	evaluator := bots.NewEvaluator(opts.Weights)
	engine, err := bots.NewEngine(opts.Config, evaluator, bots.NewMoveOrderer(opts.Weights), opts.Logger)
	if err != nil {
		return err
	}
	game := chess.NewGame()
	if opts.FEN != "" {
		fen, err := chess.FEN(opts.FEN)
		if err != nil {
			return fmt.Errorf("console: parse fen: %w", err)
		}
		game = chess.NewGame(fen)
	}
	s := &session{
		out:       out,
		lines:     bufio.NewScanner(in),
		game:      game,
		engine:    engine,
		evaluator: evaluator,
	}

	var ok bool
	if s.user, ok = s.chooseColor(opts.Color); !ok {
		return s.lines.Err()
	}
	for game.Outcome() == chess.NoOutcome {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(out, game.Position().Board().Draw())

		var m *chess.Move
		if game.Position().Turn() == s.user {
			if m, ok = s.readMove(); !ok {
				return s.lines.Err()
			}
		} else if m, err = s.engineMove(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s played: %s\n", strings.ToUpper(board.ColorName(game.Position().Turn())), m)
		if err := game.Move(m); err != nil {
			return fmt.Errorf("console: %w", err)
		}
	}
	fmt.Fprintln(out, game.Position().Board().Draw())
	fmt.Fprintf(out, "Game over: %s (%s)\n", game.Outcome(), game.Method())
	return nil
}

func (s *session) chooseColor(preset string) (chess.Color, bool) {
	choice := preset
	for {
		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "w":
			return chess.White, true
		case "b":
			return chess.Black, true
		}
		fmt.Fprintln(s.out, promptColor)
		if !s.lines.Scan() {
			return chess.NoColor, false
		}
		choice = s.lines.Text()
	}
}

// readMove returns false once the input is exhausted or the user quits.
func (s *session) readMove() (*chess.Move, bool) {
	prompt := promptMove
	for {
		fmt.Fprintln(s.out, prompt)
		if !s.lines.Scan() {
			return nil, false
		}
		text := strings.TrimSpace(s.lines.Text())
		switch text {
		case "quit":
			return nil, false
		case "eval":
			s.printEval()
			continue
		}
		if m := s.legalMove(text); m != nil {
			return m, true
		}
		prompt = promptValidMove
	}
}

func (s *session) legalMove(text string) *chess.Move {
	pos := s.game.Position()
	decoded, err := chess.UCINotation{}.Decode(pos, text)
	if err != nil {
		return nil
	}
	for _, m := range s.game.ValidMoves() {
		if m.S1() == decoded.S1() && m.S2() == decoded.S2() && m.Promo() == decoded.Promo() {
			return m
		}
	}
	return nil
}

func (s *session) engineMove() (*chess.Move, error) {
	pos := s.game.Position()
	res, err := s.engine.SelectMove(board.New(pos), pos.Turn())
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Minimax took %.2fs to move\n", res.Elapsed.Seconds())
	fmt.Fprintf(s.out, "Recursion count: %d\n", res.Nodes)
	return res.Move, nil
}

func (s *session) printEval() {
	b := board.New(s.game.Position())
	t := s.evaluator.Terms(b, s.user)
	for _, row := range []struct {
		name  string
		value bots.Score
	}{
		{"material", t.Material},
		{"positional", t.Positional},
		{"check", t.Check},
		{"mobility", t.Mobility},
		{"king shield", t.KingShield},
		{"king attack", t.KingAttack},
		{"bishop pair", t.BishopPair},
		{"rook open file", t.RookOpenFile},
		{"pawn structure", t.PawnStructure},
	} {
		fmt.Fprintf(s.out, "%-15s %6d\n", row.name, row.value)
	}
	fmt.Fprintf(s.out, "%-15s %6d\n", "total", s.evaluator.Evaluate(b, s.user))
}
