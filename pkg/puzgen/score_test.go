package puzgen

import (
	"testing"

	"github.com/freeeve/uci"
	"github.com/notnil/chess"
)

func TestScoreFromResult(t *testing.T) {
	tests := []struct {
		name string
		res  uci.ScoreResult
		turn chess.Color
		want Score
	}{
		{"mate for white to move", uci.ScoreResult{Mate: true, Score: 2}, chess.White, MateIn{Moves: 2, Side: chess.White}},
		{"mate for black to move", uci.ScoreResult{Mate: true, Score: 3}, chess.Black, MateIn{Moves: 3, Side: chess.Black}},
		{"white getting mated", uci.ScoreResult{Mate: true, Score: -4}, chess.White, MateIn{Moves: 4, Side: chess.Black}},
		{"black getting mated", uci.ScoreResult{Mate: true, Score: -1}, chess.Black, MateIn{Moves: 1, Side: chess.White}},
		{"centipawns", uci.ScoreResult{Mate: false, Score: -37}, chess.White, Centipawns{Value: -37}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreFromResult(tt.res, tt.turn)
			if got != tt.want {
				t.Fatalf("scoreFromResult(%+v, %v) = %v, want %v", tt.res, tt.turn, got, tt.want)
			}
		})
	}
}

func TestIsMate(t *testing.T) {
	if !IsMate(MateIn{Moves: 1, Side: chess.White}) {
		t.Fatal("mate score must report as mate")
	}
	if IsMate(Centipawns{Value: 900}) {
		t.Fatal("centipawn score must not report as mate")
	}
}

func TestScoreString(t *testing.T) {
	tests := []struct {
		score Score
		want  string
	}{
		{MateIn{Moves: 3, Side: chess.White}, "#3"},
		{MateIn{Moves: 2, Side: chess.Black}, "#-2"},
		{Centipawns{Value: 150}, "+1.50"},
		{Centipawns{Value: -37}, "-0.37"},
	}
	for _, tt := range tests {
		if got := tt.score.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
