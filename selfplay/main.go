// Command selfplay runs a match between two bots and prints the score.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"chessminimax/arena"
	"chessminimax/bots"
	"chessminimax/internal/logging"
)

type Config struct {
	Games    int
	Workers  int
	MaxPlies int
	White    string
	Black    string
	FEN      string
	Weights  string
	LogLevel string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	flag.IntVar(&cfg.Games, "games", 10, "number of games")
	flag.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "games played at once")
	flag.IntVar(&cfg.MaxPlies, "max-plies", 300, "adjudicate a draw after this many plies, 0 for no limit")
	flag.StringVar(&cfg.White, "white", "minimax:3", "bot playing white in odd games: random, newborn or minimax[:depth]")
	flag.StringVar(&cfg.Black, "black", "newborn", "bot playing black in odd games")
	flag.StringVar(&cfg.FEN, "fen", "", "starting position")
	flag.StringVar(&cfg.Weights, "weights", "", "JSON file overriding evaluation weights")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Debug().Interface("config", cfg).Msg("selfplay")

	w := bots.DefaultWeights()
	if cfg.Weights != "" {
		if w, err = bots.LoadWeights(cfg.Weights); err != nil {
			return err
		}
	}
	a, err := arena.ParseBot(cfg.White, w, logger)
	if err != nil {
		return err
	}
	b, err := arena.ParseBot(cfg.Black, w, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := arena.Run(ctx, arena.Config{
		Games:   cfg.Games,
		Workers: cfg.Workers,
		A:       a,
		B:       b,
		Options: arena.Options{FEN: cfg.FEN, MaxPlies: cfg.MaxPlies, Logger: logger},
	})
	if err != nil {
		return err
	}

	for _, res := range s.Results {
		fmt.Printf("%3d  %-24s %-24s %-7s %s\n", res.Number, res.White, res.Black, res.Outcome, res.Comment)
	}
	stat := arena.ComputeStat(s.Wins, s.Losses, s.Draws)
	fmt.Printf("Score of %s vs %s: %d - %d - %d  [%.3f] %d\n",
		cfg.White, cfg.Black, s.Wins, s.Losses, s.Draws, stat.WinningFraction, s.Games())
	fmt.Printf("Elo difference: %.1f, LOS: %.1f %%\n", stat.EloDifference, stat.LOS*100)
	return nil
}
