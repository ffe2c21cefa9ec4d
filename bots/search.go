package bots

import (
	"errors"
	"fmt"
	"time"

	"chessminimax/board"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

const MaxSearchDepth = 16

var (
	ErrNoLegalMoves  = errors.New("no legal moves")
	ErrNotSideToMove = errors.New("side is not to move")
	ErrInvalidDepth  = errors.New("invalid search depth")
)

type Config struct {
	MaxDepth int `json:"max_depth"`
}

func DefaultConfig() Config {
	return Config{MaxDepth: 4}
}

func (c Config) Validate() error {
	if c.MaxDepth < 1 || c.MaxDepth > MaxSearchDepth {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidDepth, c.MaxDepth, MaxSearchDepth)
	}
	return nil
}

type Result struct {
	Move    *chess.Move
	Score   Score
	Nodes   int
	Elapsed time.Duration
}

// Engine picks moves with a fixed-depth alpha-beta search. One search runs
// at a time; the transposition table belongs to the engine and is cleared at
// the start of every SelectMove.
type Engine struct {
	cfg       Config
	evaluator PositionEvaluator
	orderer   *MoveOrderer
	table     *TranspositionTable
	nodes     int
	logger    zerolog.Logger
}

func NewEngine(cfg Config, evaluator PositionEvaluator, orderer *MoveOrderer, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:       cfg,
		evaluator: evaluator,
		orderer:   orderer,
		table:     NewTranspositionTable(),
		logger:    logger,
	}, nil
}

func (e *Engine) MaxDepth() int {
	return e.cfg.MaxDepth
}

// Nodes is the number of nodes visited by the last search.
func (e *Engine) Nodes() int {
	return e.nodes
}

// SelectMove returns the best move for side, which must be the side to move.
func (e *Engine) SelectMove(b *board.Board, side chess.Color) (Result, error) {
	e.table.Clear()
	return e.search(b, side, true)
}

// SelectMoveMinimax explores the full tree without pruning or caching. It
// returns the same score as SelectMove and serves as its reference.
func (e *Engine) SelectMoveMinimax(b *board.Board, side chess.Color) (Result, error) {
	return e.search(b, side, false)
}

func (e *Engine) search(b *board.Board, side chess.Color, pruned bool) (Result, error) {
	if b.Turn() != side {
		return Result{}, fmt.Errorf("%w: %s to move", ErrNotSideToMove, board.ColorName(b.Turn()))
	}
	moves := e.orderer.Order(b, b.LegalMoves())
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	s := &searcher{
		board:     b,
		target:    side,
		maxDepth:  e.cfg.MaxDepth,
		evaluator: e.evaluator,
		orderer:   e.orderer,
		table:     e.table,
	}
	start := time.Now()
	res := Result{Score: -ScoreInfinity}
	for _, m := range moves {
		var score Score
		if pruned {
			score = s.try(m, func() Score { return s.alphaBeta(1, -ScoreInfinity, ScoreInfinity) })
		} else {
			score = s.try(m, func() Score { return s.minimax(1) })
		}
		if score > res.Score {
			res.Move, res.Score = m, score
		}
	}
	res.Nodes = s.nodes
	res.Elapsed = time.Since(start)
	e.nodes = s.nodes

	e.logger.Debug().
		Str("move", res.Move.String()).
		Int("score", int(res.Score)).
		Int("nodes", res.Nodes).
		Int("tt", e.table.Len()).
		Bool("pruned", pruned).
		Dur("elapsed", res.Elapsed).
		Msg("search")
	return res, nil
}

type searcher struct {
	board     *board.Board
	target    chess.Color
	maxDepth  int
	evaluator PositionEvaluator
	orderer   *MoveOrderer
	table     *TranspositionTable
	nodes     int
}

// try plays m for the duration of fn.
func (s *searcher) try(m *chess.Move, fn func() Score) Score {
	s.board.Push(m)
	defer s.board.Pop()
	return fn()
}

// leaf scores a node and pulls mate scores towards zero by the distance
// from the root, so nearer mates are preferred.
func (s *searcher) leaf(ply int) Score {
	v := s.evaluator.Evaluate(s.board, s.target)
	switch {
	case v >= ScoreWin:
		return ScoreWin - Score(ply)
	case v <= ScoreLoss:
		return ScoreLoss + Score(ply)
	}
	return v
}

func (s *searcher) isLeaf(ply int) bool {
	return ply >= s.maxDepth || s.board.IsGameOver()
}

func (s *searcher) alphaBeta(ply int, alpha, beta Score) Score {
	s.nodes++
	key := s.board.Key()
	remaining := s.maxDepth - ply

	if v, ok := s.table.Lookup(key, remaining, alpha, beta); ok {
		return v
	}
	if s.isLeaf(ply) {
		v := s.leaf(ply)
		s.table.Store(key, remaining, v, -ScoreInfinity, ScoreInfinity)
		return v
	}

	alphaAtEntry, betaAtEntry := alpha, beta
	maximizing := s.board.Turn() == s.target
	best := ScoreInfinity
	if maximizing {
		best = -ScoreInfinity
	}
	for _, m := range s.orderer.Order(s.board, s.board.LegalMoves()) {
		score := s.try(m, func() Score { return s.alphaBeta(ply+1, alpha, beta) })
		if maximizing {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}
	s.table.Store(key, remaining, best, alphaAtEntry, betaAtEntry)
	return best
}

func (s *searcher) minimax(ply int) Score {
	s.nodes++
	if s.isLeaf(ply) {
		return s.leaf(ply)
	}
	maximizing := s.board.Turn() == s.target
	best := ScoreInfinity
	if maximizing {
		best = -ScoreInfinity
	}
	for _, m := range s.board.LegalMoves() {
		score := s.try(m, func() Score { return s.minimax(ply + 1) })
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}
