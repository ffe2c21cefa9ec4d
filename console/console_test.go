package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"chessminimax/bots"

	"github.com/rs/zerolog"
)

func run(t *testing.T, input string, opts Options) string {
	t.Helper()
	if opts.Config.MaxDepth == 0 {
		opts.Config = bots.Config{MaxDepth: 1}
	}
	if opts.Weights == (bots.Weights{}) {
		opts.Weights = bots.DefaultWeights()
	}
	opts.Logger = zerolog.Nop()
	var out bytes.Buffer
	if err := Run(context.Background(), strings.NewReader(input), &out, opts); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestRepromptsForColorAndMove(t *testing.T) {
	out := run(t, "x\nw\nzz\ne2e5\ne2e4\n", Options{})
	if n := strings.Count(out, promptColor); n != 2 {
		t.Fatalf("color prompt shown %d times, want 2\n%s", n, out)
	}
	if n := strings.Count(out, promptValidMove); n != 2 {
		t.Fatalf("valid move prompt shown %d times, want 2\n%s", n, out)
	}
	for _, want := range []string{"WHITE played: e2e4", "BLACK played: ", "Recursion count: "} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q\n%s", want, out)
		}
	}
}

func TestEngineMovesFirstForBlack(t *testing.T) {
	out := run(t, "", Options{Color: "b"})
	if !strings.Contains(out, "WHITE played: ") {
		t.Fatalf("engine did not open\n%s", out)
	}
	if strings.Contains(out, promptColor) {
		t.Fatal("preset colour was asked again")
	}
}

func TestGameOver(t *testing.T) {
	out := run(t, "", Options{Color: "b", FEN: "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"})
	if !strings.Contains(out, "WHITE played: a1a8") {
		t.Fatalf("engine missed the mate\n%s", out)
	}
	if !strings.Contains(out, "Game over: 1-0") {
		t.Fatalf("game over not reported\n%s", out)
	}
	if strings.Contains(out, promptMove) {
		t.Fatal("user asked to move after mate")
	}
}

func TestEvalCommand(t *testing.T) {
	out := run(t, "w\neval\nquit\n", Options{})
	for _, want := range []string{"material", "king shield", "total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("eval output lacks %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "played") {
		t.Fatal("quit still played a move")
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	var out bytes.Buffer
	opts := Options{Config: bots.Config{MaxDepth: 0}, Weights: bots.DefaultWeights()}
	if err := Run(context.Background(), strings.NewReader(""), &out, opts); err == nil {
		t.Fatal("zero depth accepted")
	}
	opts.Config.MaxDepth = 1
	opts.FEN = "nonsense"
	if err := Run(context.Background(), strings.NewReader(""), &out, opts); err == nil {
		t.Fatal("bad fen accepted")
	}
}
