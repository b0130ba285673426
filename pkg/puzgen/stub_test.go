package puzgen

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

// stubLine is one scripted engine line, decoded lazily against the queried
// position.
type stubLine struct {
	uci   string
	score Score
}

// stubOracle answers queries from a FEN-keyed script. Unknown positions get
// an empty ranked list.
type stubOracle struct {
	t     *testing.T
	lines map[string][]stubLine
	calls int
}

func newStubOracle(t *testing.T) *stubOracle {
	return &stubOracle{
		t:     t,
		lines: make(map[string][]stubLine),
	}
}

func (s *stubOracle) on(pos *chess.Position, lines ...stubLine) {
	s.lines[pos.String()] = lines
}

func (s *stubOracle) Analyse(pos *chess.Position, lineCount int) ([]CandidateMove, error) {
	s.calls++
	scripted := s.lines[pos.String()]
	if len(scripted) > lineCount {
		scripted = scripted[:lineCount]
	}

	cands := make([]CandidateMove, 0, len(scripted))
	for _, line := range scripted {
		cands = append(cands, CandidateMove{
			Move:  mustMove(s.t, pos, line.uci),
			Score: line.score,
		})
	}
	return cands, nil
}

func newTestAnalyzer(oracle Oracle) *Analyzer {
	return NewAnalyzer(oracle, zerolog.Nop())
}

func posFromFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	fenOpt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("bad FEN %q: %v", fen, err)
	}
	return chess.NewGame(fenOpt).Position()
}

func mustMove(t *testing.T, pos *chess.Position, uci string) *chess.Move {
	t.Helper()
	move, err := chess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		t.Fatalf("bad move %q at %q: %v", uci, pos.String(), err)
	}
	return move
}

// kingRookMate is a three-ply forced mate used across the solver tests:
// white Kf6/Ra1 against the lone black Kh8. After Kg6 black's only legal
// move is Kg8, and Ra8 is then checkmate.
const kingRookMateFEN = "7k/8/5K2/8/8/8/8/R7 w - - 0 1"

// kingRookMateLine wires the stub script for the full line and returns the
// positions at each ply.
func kingRookMateLine(t *testing.T, oracle *stubOracle) (p0, p1, p2, mate *chess.Position) {
	p0 = posFromFEN(t, kingRookMateFEN)
	p1 = p0.Update(mustMove(t, p0, "f6g6"))
	p2 = p1.Update(mustMove(t, p1, "h8g8"))
	mate = p2.Update(mustMove(t, p2, "a1a8"))

	oracle.on(p0,
		stubLine{"f6g6", MateIn{Moves: 2, Side: chess.White}},
		stubLine{"a1a2", Centipawns{Value: 900}},
	)
	// The defender's single reply carries a hopeless score on purpose: the
	// defensive rule looks at the candidate count only.
	oracle.on(p1,
		stubLine{"h8g8", Centipawns{Value: -950}},
	)
	oracle.on(p2,
		stubLine{"a1a8", MateIn{Moves: 1, Side: chess.White}},
		stubLine{"a1a7", Centipawns{Value: 880}},
	)
	return p0, p1, p2, mate
}
