package bots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/notnil/chess"
)

// Score is measured in centipawns from one side's point of view.
type Score int

const (
	ScoreDraw Score = 0
	ScoreWin  Score = 1_000_000
	ScoreLoss Score = -ScoreWin
	// ScoreInfinity bounds the search window and is never returned for a
	// searched node.
	ScoreInfinity Score = ScoreWin + 1
)

type Material struct {
	Pawn   Score `json:"pawn"`
	Knight Score `json:"knight"`
	Bishop Score `json:"bishop"`
	Rook   Score `json:"rook"`
	Queen  Score `json:"queen"`
	King   Score `json:"king"`
}

// Table holds square bonuses seen from the owner's side: row 0 is the far
// rank, row 7 the home rank, columns run from the a-file to the h-file.
type Table [8][8]Score

type PieceSquareTables struct {
	Pawn   Table `json:"pawn"`
	Knight Table `json:"knight"`
	Bishop Table `json:"bishop"`
	Rook   Table `json:"rook"`
	Queen  Table `json:"queen"`
	King   Table `json:"king"`
}

// Weights configures the evaluator. Values are fixed for the lifetime of an
// Evaluator.
type Weights struct {
	Material          Material          `json:"material"`
	PieceSquare       PieceSquareTables `json:"piece_square"`
	CheckBonus        Score             `json:"check_bonus"`
	CheckPenalty      Score             `json:"check_penalty"`
	Mobility          Score             `json:"mobility"`
	KingShield        Score             `json:"king_shield"`
	KingAttackPenalty Score             `json:"king_attack_penalty"`
	BishopPair        Score             `json:"bishop_pair"`
	RookOpenFile      Score             `json:"rook_open_file"`
	DoubledPawn       Score             `json:"doubled_pawn"`
	IsolatedPawn      Score             `json:"isolated_pawn"`
	// PassedPawn is carried in the configuration but not scored.
	PassedPawn Score `json:"passed_pawn"`
}

func (w *Weights) Value(kind chess.PieceType) Score {
	switch kind {
	case chess.Pawn:
		return w.Material.Pawn
	case chess.Knight:
		return w.Material.Knight
	case chess.Bishop:
		return w.Material.Bishop
	case chess.Rook:
		return w.Material.Rook
	case chess.Queen:
		return w.Material.Queen
	case chess.King:
		return w.Material.King
	default:
		return 0
	}
}

func (w *Weights) Table(kind chess.PieceType) *Table {
	switch kind {
	case chess.Pawn:
		return &w.PieceSquare.Pawn
	case chess.Knight:
		return &w.PieceSquare.Knight
	case chess.Bishop:
		return &w.PieceSquare.Bishop
	case chess.Rook:
		return &w.PieceSquare.Rook
	case chess.Queen:
		return &w.PieceSquare.Queen
	case chess.King:
		return &w.PieceSquare.King
	default:
		return nil
	}
}

// At returns the bonus for a piece of color standing on sq.
func (t *Table) At(sq chess.Square, color chess.Color) Score {
	row := 7 - int(sq.Rank())
	if color == chess.Black {
		row = int(sq.Rank())
	}
	return t[row][sq.File()]
}

func DefaultWeights() Weights {
	return Weights{
		Material: Material{
			Pawn:   100,
			Knight: 300,
			Bishop: 350,
			Rook:   500,
			Queen:  900,
			King:   0,
		},
		PieceSquare: PieceSquareTables{
			Pawn: Table{
				{0, 0, 0, 0, 0, 0, 0, 0},
				{50, 50, 50, 50, 50, 50, 50, 50},
				{10, 10, 20, 30, 30, 20, 10, 10},
				{5, 5, 10, 25, 25, 10, 5, 5},
				{0, 0, 0, 20, 20, 0, 0, 0},
				{5, -5, -10, 0, 0, -10, -5, 5},
				{5, 10, 10, -20, -20, 10, 10, 5},
				{0, 0, 0, 0, 0, 0, 0, 0},
			},
			Knight: Table{
				{-50, -40, -30, -30, -30, -30, -40, -50},
				{-40, -20, 0, 5, 5, 0, -20, -40},
				{-30, 5, 10, 15, 15, 10, 5, -30},
				{-30, 0, 15, 20, 20, 15, 0, -30},
				{-30, 5, 15, 20, 20, 15, 5, -30},
				{-30, 0, 10, 15, 15, 10, 0, -30},
				{-40, -20, 0, 0, 0, 0, -20, -40},
				{-50, -40, -30, -30, -30, -30, -40, -50},
			},
			Bishop: Table{
				{-20, -10, -10, -10, -10, -10, -10, -20},
				{-10, 0, 0, 0, 0, 0, 0, -10},
				{-10, 0, 5, 10, 10, 5, 0, -10},
				{-10, 5, 5, 10, 10, 5, 5, -10},
				{-10, 0, 10, 10, 10, 10, 0, -10},
				{-10, 10, 10, 10, 10, 10, 10, -10},
				{-10, 5, 0, 0, 0, 0, 5, -10},
				{-20, -10, -10, -10, -10, -10, -10, -20},
			},
			Rook: Table{
				{0, 0, 0, 0, 0, 0, 0, 0},
				{5, 10, 10, 10, 10, 10, 10, 5},
				{-5, 0, 0, 0, 0, 0, 0, -5},
				{-5, 0, 0, 0, 0, 0, 0, -5},
				{-5, 0, 0, 0, 0, 0, 0, -5},
				{-5, 0, 0, 0, 0, 0, 0, -5},
				{-5, 0, 0, 0, 0, 0, 0, -5},
				{0, 0, 0, 5, 5, 0, 0, 0},
			},
			Queen: Table{
				{-20, -10, -10, -5, -5, -10, -10, -20},
				{-10, 0, 0, 0, 0, 0, 0, -10},
				{-10, 0, 5, 5, 5, 5, 0, -10},
				{-5, 0, 5, 5, 5, 5, 0, -5},
				{0, 0, 5, 5, 5, 5, 0, -5},
				{-10, 5, 5, 5, 5, 5, 0, -10},
				{-10, 0, 5, 0, 0, 0, 0, -10},
				{-20, -10, -10, -5, -5, -10, -10, -20},
			},
			King: Table{
				{-30, -40, -40, -50, -50, -40, -40, -30},
				{-30, -40, -40, -50, -50, -40, -40, -30},
				{-30, -40, -40, -50, -50, -40, -40, -30},
				{-30, -40, -40, -50, -50, -40, -40, -30},
				{-20, -30, -30, -40, -40, -30, -30, -20},
				{-10, -20, -20, -20, -20, -20, -20, -10},
				{20, 20, 0, 0, 0, 0, 20, 20},
				{20, 30, 10, 0, 0, 10, 30, 20},
			},
		},
		CheckBonus:        50,
		CheckPenalty:      50,
		Mobility:          5,
		KingShield:        10,
		KingAttackPenalty: 20,
		BishopPair:        50,
		RookOpenFile:      25,
		DoubledPawn:       25,
		IsolatedPawn:      20,
		PassedPawn:        30,
	}
}

// LoadWeights reads a JSON file on top of DefaultWeights, so the file only
// needs the fields it changes.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights: %w", err)
	}
	if err := decodeWeights(data, &w); err != nil {
		return w, fmt.Errorf("decode weights %s: %w", path, err)
	}
	return w, nil
}

func decodeWeights(data []byte, w *Weights) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(w)
}
