// Command chessminimax plays a game against the minimax engine in the
// terminal. Moves are typed in UCI notation, e.g. e2e4 or e7e8q.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"chessminimax/bots"
	"chessminimax/console"
	"chessminimax/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		depth    = flag.Int("depth", bots.DefaultConfig().MaxDepth, "search depth in plies")
		color    = flag.String("color", "", "play as w or b; asked when empty")
		fen      = flag.String("fen", "", "starting position")
		weights  = flag.String("weights", "", "JSON file overriding evaluation weights")
		logLevel = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	logger, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		return err
	}
	w := bots.DefaultWeights()
	if *weights != "" {
		if w, err = bots.LoadWeights(*weights); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return console.Run(ctx, os.Stdin, os.Stdout, console.Options{
		Config:  bots.Config{MaxDepth: *depth},
		Weights: w,
		FEN:     *fen,
		Color:   *color,
		Logger:  logger,
	})
}
