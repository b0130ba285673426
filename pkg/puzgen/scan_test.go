package puzgen

import (
	"reflect"
	"testing"

	"github.com/notnil/chess"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// mateInOneFEN: white Ra1/Kg6 against the lone black Kg8; Ra8 is mate.
const mateInOneFEN = "6k1/8/6K1/8/8/8/8/R7 w - - 0 1"

func TestScanGameEmitsMateInOne(t *testing.T) {
	oracle := newStubOracle(t)
	pos := posFromFEN(t, mateInOneFEN)
	oracle.on(pos, stubLine{"a1a8", MateIn{Moves: 1, Side: chess.White}})

	rec := &GameRecord{
		ID: "https://lichess.org/abcd1234",
		Positions: []AnnotatedPosition{
			{Pos: posFromFEN(t, startFEN)},
			{Pos: pos, Eval: MateIn{Moves: 1, Side: chess.White}},
		},
		GameData: GameData{WhitePlayer: "att", BlackPlayer: "def"},
	}

	a := newTestAnalyzer(oracle)
	puzzle, err := a.ScanGame(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if puzzle == nil {
		t.Fatal("expected a puzzle")
	}
	if puzzle.StartFEN != pos.String() {
		t.Fatalf("start fen = %q, want %q", puzzle.StartFEN, pos.String())
	}
	if !reflect.DeepEqual(puzzle.Solution, []string{"a1a8"}) {
		t.Fatalf("solution = %v, want [a1a8]", puzzle.Solution)
	}
	if !reflect.DeepEqual(puzzle.SolutionSAN, []string{"Ra8#"}) {
		t.Fatalf("san solution = %v, want [Ra8#]", puzzle.SolutionSAN)
	}
	if puzzle.MateIn != 1 || !puzzle.IsWhiteTurn {
		t.Fatalf("unexpected puzzle metadata: %+v", puzzle)
	}
	if puzzle.GameID != rec.ID || puzzle.GameData != rec.GameData {
		t.Fatalf("puzzle must carry the game identity: %+v", puzzle)
	}
}

func TestScanGameAdvancesPastFailedCook(t *testing.T) {
	oracle := newStubOracle(t)

	// Detector fires here, but the cook finds a second mating line and
	// rejects the ply.
	ambiguous := posFromFEN(t, "6k1/8/8/8/8/8/8/R5K1 w - - 0 1")
	oracle.on(ambiguous,
		stubLine{"a1a8", MateIn{Moves: 1, Side: chess.White}},
		stubLine{"g1g2", MateIn{Moves: 2, Side: chess.White}},
	)

	solvable := posFromFEN(t, mateInOneFEN)
	oracle.on(solvable, stubLine{"a1a8", MateIn{Moves: 1, Side: chess.White}})

	rec := &GameRecord{
		ID: "game-2",
		Positions: []AnnotatedPosition{
			{Pos: ambiguous, Eval: MateIn{Moves: 1, Side: chess.White}},
			{Pos: solvable, Eval: MateIn{Moves: 1, Side: chess.White}},
		},
	}

	a := newTestAnalyzer(oracle)
	puzzle, err := a.ScanGame(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if puzzle == nil {
		t.Fatal("expected scanner to find the later puzzle")
	}
	if puzzle.StartFEN != solvable.String() {
		t.Fatalf("scanner stopped at %q, want %q", puzzle.StartFEN, solvable.String())
	}
}

func TestScanGameFirstFoundWins(t *testing.T) {
	oracle := newStubOracle(t)
	first := posFromFEN(t, mateInOneFEN)
	oracle.on(first, stubLine{"a1a8", MateIn{Moves: 1, Side: chess.White}})

	// A second qualifying position exists but must never be reached.
	second := posFromFEN(t, "6k1/8/8/8/8/8/8/R5K1 w - - 0 1")

	rec := &GameRecord{
		ID: "game-3",
		Positions: []AnnotatedPosition{
			{Pos: first, Eval: MateIn{Moves: 1, Side: chess.White}},
			{Pos: second, Eval: MateIn{Moves: 1, Side: chess.White}},
		},
	}

	a := newTestAnalyzer(oracle)
	puzzle, err := a.ScanGame(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if puzzle == nil || puzzle.StartFEN != first.String() {
		t.Fatalf("expected the first qualifying position to win: %+v", puzzle)
	}
	// One detector query plus one cook query for the first position only.
	if oracle.calls != 2 {
		t.Fatalf("scan must stop after the first success, got %d oracle calls", oracle.calls)
	}
}

func TestScanGameWithoutAnnotationsFindsNothing(t *testing.T) {
	oracle := newStubOracle(t)
	rec := &GameRecord{
		ID: "game-4",
		Positions: []AnnotatedPosition{
			{Pos: posFromFEN(t, startFEN)},
			{Pos: posFromFEN(t, mateInOneFEN)},
		},
	}

	a := newTestAnalyzer(oracle)
	puzzle, err := a.ScanGame(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if puzzle != nil {
		t.Fatalf("expected no puzzle, got %+v", puzzle)
	}
	if oracle.calls != 0 {
		t.Fatalf("unannotated games must cost no oracle queries, got %d", oracle.calls)
	}
}

func TestPuzzleSolutionReplaysToCheckmate(t *testing.T) {
	oracle := newStubOracle(t)
	p0, _, _, _ := kingRookMateLine(t, oracle)

	rec := &GameRecord{
		ID: "game-5",
		Positions: []AnnotatedPosition{
			{Pos: p0, Eval: MateIn{Moves: 2, Side: chess.White}},
		},
	}

	a := newTestAnalyzer(oracle)
	puzzle, err := a.ScanGame(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if puzzle == nil {
		t.Fatal("expected a puzzle")
	}

	fenOpt, err := chess.FEN(puzzle.StartFEN)
	if err != nil {
		t.Fatalf("puzzle fen does not parse: %v", err)
	}
	game := chess.NewGame(fenOpt)
	for _, uciMove := range puzzle.Solution {
		move, err := chess.UCINotation{}.Decode(game.Position(), uciMove)
		if err != nil {
			t.Fatalf("solution move %q does not decode: %v", uciMove, err)
		}
		if err := game.Move(move); err != nil {
			t.Fatalf("solution move %q is illegal: %v", uciMove, err)
		}
	}
	if game.Position().Status() != chess.Checkmate {
		t.Fatalf("replayed solution ends in %v, want checkmate", game.Position().Status())
	}
}
