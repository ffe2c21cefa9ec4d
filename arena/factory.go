package arena

import (
	"fmt"
	"strconv"
	"strings"

	"chessminimax/bots"

	"github.com/rs/zerolog"
)

// ParseBot turns a command line bot description into a Factory. Accepted
// forms are "random", "newborn", "minimax" and "minimax:<depth>".
func ParseBot(desc string, w bots.Weights, logger zerolog.Logger) (Factory, error) {
	name, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(desc)), ":")
	switch name {
	case "random":
		if hasArg {
			return nil, fmt.Errorf("arena: bot %q takes no argument", name)
		}
		return func(seed int64) (bots.ChessBot, error) {
			return bots.NewRandomBot(seed), nil
		}, nil
	case "newborn":
		if hasArg {
			return nil, fmt.Errorf("arena: bot %q takes no argument", name)
		}
		return func(int64) (bots.ChessBot, error) {
			return bots.NewNewbornBot(), nil
		}, nil
	case "minimax":
		cfg := bots.DefaultConfig()
		if hasArg {
			depth, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("arena: minimax depth %q: %w", arg, err)
			}
			cfg.MaxDepth = depth
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
		return func(int64) (bots.ChessBot, error) {
			return bots.NewMinimaxBot(cfg, w, logger)
		}, nil
	}
	return nil, fmt.Errorf("arena: unknown bot %q", desc)
}
