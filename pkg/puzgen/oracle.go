package puzgen

import (
	"fmt"
	"sort"

	"github.com/freeeve/uci"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

// CandidateMove is one ranked engine line: the move to play from the queried
// position and its evaluation.
type CandidateMove struct {
	Move  *chess.Move
	Score Score
}

// Oracle answers ranked-move queries for a position. Implementations other
// than the engine-backed one exist only in tests.
type Oracle interface {
	// Analyse returns up to lineCount candidate moves, best first. The list
	// is shorter than lineCount when the position has fewer legal replies.
	Analyse(pos *chess.Position, lineCount int) ([]CandidateMove, error)
}

// AnalysisConfig holds the engine tuning knobs. The depth limit applies to
// every query, attacker and defender alike.
type AnalysisConfig struct {
	Depth   int  `yaml:"depth"`
	Hash    int  `yaml:"hash"`
	Threads int  `yaml:"threads"`
	Ponder  bool `yaml:"ponder"`
	OwnBook bool `yaml:"own_book"`
}

// DefaultAnalysisConfig returns the reference settings: depth 20, 128MB
// hash, 4 threads.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Depth:   20,
		Hash:    128,
		Threads: 4,
	}
}

// SetupEngine starts a UCI engine process and applies cfg to it.
func SetupEngine(path string, cfg AnalysisConfig, arg ...string) (*uci.Engine, error) {
	e, err := uci.NewEngine(path, arg...)
	if err != nil {
		return nil, fmt.Errorf("start engine %s: %w", path, err)
	}

	err = e.SetOptions(uci.Options{
		MultiPV: 2,
		Hash:    cfg.Hash,
		Threads: cfg.Threads,
		Ponder:  cfg.Ponder,
		OwnBook: cfg.OwnBook,
	})
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("set engine options: %w", err)
	}
	return e, nil
}

type engineOracle struct {
	engine *uci.Engine
	opts   uci.Options
	depth  int
	log    zerolog.Logger
}

// NewEngineOracle wraps an already configured engine. The engine handle is
// owned by the caller; the oracle only issues queries on it.
func NewEngineOracle(e *uci.Engine, cfg AnalysisConfig, log zerolog.Logger) Oracle {
	return &engineOracle{
		engine: e,
		opts: uci.Options{
			MultiPV: 2,
			Hash:    cfg.Hash,
			Threads: cfg.Threads,
			Ponder:  cfg.Ponder,
			OwnBook: cfg.OwnBook,
		},
		depth: cfg.Depth,
		log:   log,
	}
}

func (o *engineOracle) Analyse(pos *chess.Position, lineCount int) ([]CandidateMove, error) {
	if o.opts.MultiPV != lineCount {
		o.opts.MultiPV = lineCount
		if err := o.engine.SetOptions(o.opts); err != nil {
			return nil, fmt.Errorf("set multipv %d: %w", lineCount, err)
		}
	}

	fen := pos.String()
	if err := o.engine.SetFEN(fen); err != nil {
		return nil, fmt.Errorf("set fen %q: %w", fen, err)
	}

	results, err := o.engine.GoDepth(o.depth, uci.HighestDepthOnly)
	if err != nil {
		return nil, fmt.Errorf("analyse %q: %w", fen, err)
	}

	cands, err := candidatesFromResults(pos, results.Results, lineCount)
	if err != nil {
		return nil, err
	}

	o.log.Debug().Str("fen", fen).Int("lines", len(cands)).Msg("engine query")
	return cands, nil
}

// candidatesFromResults orders raw engine lines by their MultiPV rank, cuts
// the list to the requested count and decodes each line's first move
// against the queried position.
func candidatesFromResults(pos *chess.Position, lines []uci.ScoreResult, lineCount int) ([]CandidateMove, error) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].MultiPV < lines[j].MultiPV
	})
	if len(lines) > lineCount {
		lines = lines[:lineCount]
	}

	cands := make([]CandidateMove, 0, len(lines))
	for _, line := range lines {
		if len(line.BestMoves) == 0 {
			continue
		}
		move, err := chess.UCINotation{}.Decode(pos, line.BestMoves[0])
		if err != nil {
			return nil, fmt.Errorf("decode engine move %q: %w", line.BestMoves[0], err)
		}
		cands = append(cands, CandidateMove{
			Move:  move,
			Score: scoreFromResult(line, pos.Turn()),
		})
	}
	return cands, nil
}
