package puzgen

import (
	"fmt"

	"github.com/freeeve/uci"
	"github.com/notnil/chess"
)

// Score is the evaluation attached to a candidate move or carried by a
// position annotation. It is either a mate distance or a centipawn value.
type Score interface {
	isScore()
	String() string
}

// MateIn is a forced mate in Moves full moves for Side.
type MateIn struct {
	Moves int
	Side  chess.Color
}

// Centipawns is an ordinary positional evaluation from white's perspective.
type Centipawns struct {
	Value int
}

func (MateIn) isScore()     {}
func (Centipawns) isScore() {}

func (m MateIn) String() string {
	if m.Side == chess.Black {
		return fmt.Sprintf("#-%d", m.Moves)
	}
	return fmt.Sprintf("#%d", m.Moves)
}

func (c Centipawns) String() string {
	return fmt.Sprintf("%+.2f", float64(c.Value)/100)
}

// IsMate reports whether s is a mate score of either sign.
func IsMate(s Score) bool {
	_, ok := s.(MateIn)
	return ok
}

// scoreFromResult converts an engine result into a Score. Engine scores are
// relative to the side to move; mate distances are normalized so that Side
// is the winning color.
func scoreFromResult(res uci.ScoreResult, turn chess.Color) Score {
	if !res.Mate {
		return Centipawns{Value: res.Score}
	}
	side := turn
	moves := res.Score
	if moves < 0 {
		side = turn.Other()
		moves = -moves
	}
	return MateIn{Moves: moves, Side: side}
}
