package scraper

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gmkornilov/mate-puzzle-extractor/internal/config"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/dao"
	"github.com/gmkornilov/mate-puzzle-extractor/pkg/puzgen"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

// The games export must request evals: the mate detector only fires on
// positions carrying an [%eval] annotation.
const exportURL = "https://lichess.org/api/games/user/%s?max=%d&evals=true"

type LichessGameScraperFactory struct {
	StockfishPath string
	StockfishArgs []string
	Analysis      puzgen.AnalysisConfig
	PuzzleRepo    dao.PuzzleRepository
	Log           zerolog.Logger
}

func NewLichessGameScraperFactory(cfg *config.Configuration, puzzleRepo dao.PuzzleRepository, log zerolog.Logger) *LichessGameScraperFactory {
	return &LichessGameScraperFactory{
		StockfishPath: cfg.Stockfish.Path,
		StockfishArgs: cfg.Stockfish.Args,
		Analysis:      puzgen.DefaultAnalysisConfig(),
		PuzzleRepo:    puzzleRepo,
		Log:           log,
	}
}

func (f *LichessGameScraperFactory) CreateLichessScraper(nickname string, last int) *LichessGameScraper {
	return &LichessGameScraper{
		nickname:      nickname,
		last:          last,
		stockfishPath: f.StockfishPath,
		stockfishArgs: f.StockfishArgs,
		analysis:      f.Analysis,
		puzzleRepo:    f.PuzzleRepo,
		log:           f.Log.With().Str("nickname", nickname).Logger(),
	}
}

// LichessGameScraper downloads a user's recent annotated games and scans
// them for forced-mate puzzles, one game at a time.
type LichessGameScraper struct {
	mu      sync.Mutex
	puzzles []puzgen.Puzzle
	err     error
	done    bool

	puzzleRepo    dao.PuzzleRepository
	nickname      string
	last          int
	stockfishPath string
	stockfishArgs []string
	analysis      puzgen.AnalysisConfig
	log           zerolog.Logger
}

func (l *LichessGameScraper) Done() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

func (l *LichessGameScraper) Result() interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.puzzles
}

func (l *LichessGameScraper) Error() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *LichessGameScraper) StartWork() {
	go l.Scrape()
}

func (l *LichessGameScraper) finish(puzzles []puzgen.Puzzle, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.puzzles = puzzles
	l.err = err
	l.done = true
}

func (l *LichessGameScraper) Scrape() {
	url := fmt.Sprintf(exportURL, l.nickname, l.last)
	resp, err := http.Get(url)
	if err != nil {
		l.finish(nil, fmt.Errorf("error fetching %s games", l.nickname))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		l.finish(nil, fmt.Errorf("user %s doesn't exist on lichess", l.nickname))
		return
	}

	scanner := chess.NewScanner(resp.Body)
	games := make([]*chess.Game, 0)
	for scanner.Scan() {
		games = append(games, scanner.Next())
	}
	l.log.Info().Int("games", len(games)).Msg("downloaded games")

	puzzles, err := puzgen.ScanGames(l.stockfishPath, l.analysis, games, l.log, l.stockfishArgs...)
	if err != nil {
		l.log.Error().Err(err).Msg("puzzle extraction failed")
		l.finish(nil, fmt.Errorf("error generating puzzles"))
		return
	}

	if err = l.puzzleRepo.InsertAllPuzzles(puzzles); err != nil {
		l.log.Error().Err(err).Msg("saving puzzles failed")
		l.finish(nil, fmt.Errorf("error saving puzzles to db"))
		return
	}

	l.finish(puzzles, nil)
}
