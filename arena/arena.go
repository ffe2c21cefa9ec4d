package arena

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"chessminimax/bots"

	"github.com/notnil/chess"
	"golang.org/x/sync/errgroup"
)

// Factory builds a fresh bot for one game. Bots are never shared between
// games, so each worker owns its search state.
type Factory func(seed int64) (bots.ChessBot, error)

type Config struct {
	Games int
	// Workers bounds the number of games played at once. Zero uses GOMAXPROCS.
	Workers int
	// A plays white in even-numbered games and black in odd ones.
	A, B Factory
	Options
}

// Summary is scored from A's point of view.
type Summary struct {
	Wins, Losses, Draws int
	Results             []Result
}

func (s Summary) Games() int {
	return s.Wins + s.Losses + s.Draws
}

// Run plays cfg.Games games and returns them in game order.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := cfg.Logger
	log.Info().Int("games", cfg.Games).Int("workers", workers).Msg("arena started")

	results := make([]Result, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			a, err := cfg.A(int64(2 * i))
			if err != nil {
				return err
			}
			b, err := cfg.B(int64(2*i + 1))
			if err != nil {
				return err
			}
			white, black := a, b
			if i%2 == 1 {
				white, black = b, a
			}
			res, err := PlayGame(ctx, white, black, cfg.Options)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			res.Number = i + 1
			results[i] = res
			log.Info().
				Int("number", res.Number).
				Str("white", res.White).
				Str("black", res.Black).
				Str("result", res.Outcome.String()).
				Str("comment", res.Comment).
				Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	s := Summary{Results: results}
	for i, res := range results {
		switch {
		case res.Outcome == chess.Draw:
			s.Draws++
		case (res.Outcome == chess.WhiteWon) == (i%2 == 0):
			s.Wins++
		default:
			s.Losses++
		}
	}
	stat := ComputeStat(s.Wins, s.Losses, s.Draws)
	log.Info().
		Int("wins", s.Wins).
		Int("losses", s.Losses).
		Int("draws", s.Draws).
		Float64("elo", stat.EloDifference).
		Msg("arena finished")
	return s, nil
}

type Stat struct {
	WinningFraction float64
	EloDifference   float64
	LOS             float64
}

// ComputeStat follows https://www.chessprogramming.org/Match_Statistics.
// A clean sweep gives an infinite Elo difference.
func ComputeStat(wins, losses, draws int) Stat {
	games := wins + losses + draws
	if games == 0 {
		return Stat{}
	}
	fraction := (float64(wins) + 0.5*float64(draws)) / float64(games)
	los := 0.5
	if wins+losses > 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return Stat{
		WinningFraction: fraction,
		EloDifference:   -math.Log(1/fraction-1) * 400 / math.Ln10,
		LOS:             los,
	}
}
