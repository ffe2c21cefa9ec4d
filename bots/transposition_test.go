package bots

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		value, alpha, beta Score
		want               Bound
	}{
		{-10, -10, 10, BoundUpper},
		{-50, -10, 10, BoundUpper},
		{10, -10, 10, BoundLower},
		{50, -10, 10, BoundLower},
		{0, -10, 10, BoundExact},
		{5, -ScoreInfinity, ScoreInfinity, BoundExact},
		{ScoreWin - 1, -ScoreInfinity, ScoreInfinity, BoundExact},
	}
	for _, tt := range tests {
		if got := Classify(tt.value, tt.alpha, tt.beta); got != tt.want {
			t.Errorf("Classify(%d, %d, %d) = %v, want %v", tt.value, tt.alpha, tt.beta, got, tt.want)
		}
	}
}

func TestLookupRequiresDepth(t *testing.T) {
	tt := NewTranspositionTable()
	tt.Store(1, 2, 40, -ScoreInfinity, ScoreInfinity)
	if _, ok := tt.Lookup(1, 3, -100, 100); ok {
		t.Fatal("shallower entry answered a deeper query")
	}
	for _, depth := range []int{0, 1, 2} {
		if v, ok := tt.Lookup(1, depth, -100, 100); !ok || v != 40 {
			t.Fatalf("depth %d: got (%d, %v), want (40, true)", depth, v, ok)
		}
	}
	if _, ok := tt.Lookup(2, 0, -100, 100); ok {
		t.Fatal("lookup of unknown key succeeded")
	}
}

func TestLookupBounds(t *testing.T) {
	tt := NewTranspositionTable()
	tt.Store(1, 3, 50, -10, 50) // lower bound 50
	tt.Store(2, 3, -10, -10, 50) // upper bound -10

	if e, _ := tt.Probe(1); e.Bound != BoundLower {
		t.Fatalf("key 1 bound = %v, want lower", e.Bound)
	}
	if e, _ := tt.Probe(2); e.Bound != BoundUpper {
		t.Fatalf("key 2 bound = %v, want upper", e.Bound)
	}

	if v, ok := tt.Lookup(1, 3, 0, 40); !ok || v != 50 {
		t.Fatalf("lower bound above beta: got (%d, %v)", v, ok)
	}
	if _, ok := tt.Lookup(1, 3, 0, 60); ok {
		t.Fatal("lower bound below beta must not be used")
	}
	if v, ok := tt.Lookup(2, 3, 0, 40); !ok || v != -10 {
		t.Fatalf("upper bound below alpha: got (%d, %v)", v, ok)
	}
	if _, ok := tt.Lookup(2, 3, -20, 40); ok {
		t.Fatal("upper bound above alpha must not be used")
	}
}

func TestStoreReplacesAndClear(t *testing.T) {
	tt := NewTranspositionTable()
	tt.Store(7, 4, 10, -ScoreInfinity, ScoreInfinity)
	tt.Store(7, 1, 20, -ScoreInfinity, ScoreInfinity)
	e, ok := tt.Probe(7)
	if !ok || e.Depth != 1 || e.Value != 20 {
		t.Fatalf("entry = %+v, want the latest store", e)
	}
	if tt.Len() != 1 {
		t.Fatalf("len = %d, want 1", tt.Len())
	}
	tt.Clear()
	if tt.Len() != 0 {
		t.Fatalf("len after clear = %d", tt.Len())
	}
	if _, ok := tt.Probe(7); ok {
		t.Fatal("entry survived clear")
	}
}
