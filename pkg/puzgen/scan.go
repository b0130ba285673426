package puzgen

import (
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

// Analyzer drives puzzle extraction for one game at a time. It owns no
// engine process itself; the oracle is handed in so tests can substitute a
// stub.
type Analyzer struct {
	oracle Oracle
	log    zerolog.Logger
}

func NewAnalyzer(oracle Oracle, log zerolog.Logger) *Analyzer {
	return &Analyzer{oracle: oracle, log: log}
}

// ScanGame walks the game's played positions in order and returns a puzzle
// for the first position whose mate annotation survives cooking. A nil
// puzzle with nil error means the game holds no forced-mate puzzle.
func (a *Analyzer) ScanGame(rec *GameRecord) (*Puzzle, error) {
	a.log.Debug().Str("game", rec.ID).Msg("analyzing game")

	for i, ap := range rec.Positions {
		found, err := a.hasMate(ap)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		a.log.Debug().
			Str("game", rec.ID).
			Int("move", i/2+1).
			Msg("mate found, probing")

		solution, ok, err := a.cook(ap.Pos, ap.Pos.Turn(), 0)
		if err != nil {
			return nil, err
		}
		if !ok || len(solution) == 0 {
			continue
		}
		return newPuzzle(rec, ap.Pos, solution), nil
	}
	return nil, nil
}

// ScanGames sets up an engine process, scans every game with it and tears
// it down again. Convenience wrapper used by the extraction worker.
func ScanGames(path string, cfg AnalysisConfig, games []*chess.Game, log zerolog.Logger, arg ...string) ([]Puzzle, error) {
	e, err := SetupEngine(path, cfg, arg...)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	analyzer := NewAnalyzer(NewEngineOracle(e, cfg, log), log)

	res := make([]Puzzle, 0)
	for _, game := range games {
		puzzle, err := analyzer.ScanGame(NewGameRecord(game))
		if err != nil {
			return nil, err
		}
		if puzzle != nil {
			res = append(res, *puzzle)
		}
	}
	return res, nil
}
