package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/gmkornilov/mate-puzzle-extractor/internal/config"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/dao"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/db"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/logx"
	"github.com/gmkornilov/mate-puzzle-extractor/pkg/puzgen"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		file       = flag.String("file", "", "input PGN file")
		enginePath = flag.String("engine", "stockfish", "analysis engine executable")
		threads    = flag.Int("threads", 0, "engine threads (overrides analysis config)")
		configPath = flag.String("config", "", "optional YAML analysis config")
		noDb       = flag.Bool("nodb", false, "don't store puzzles in the db")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := logx.NewLogger().Level(zerolog.InfoLevel)
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	if *file == "" {
		logger.Fatal().Msg("-file is required")
	}

	analysis := puzgen.DefaultAnalysisConfig()
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("read analysis config")
		}
		if err := yaml.Unmarshal(raw, &analysis); err != nil {
			logger.Fatal().Err(err).Msg("parse analysis config")
		}
	}
	if *threads > 0 {
		analysis.Threads = *threads
	}

	var puzzleRepo dao.PuzzleRepository
	if !*noDb {
		cfg, err := config.InitExtractorConfig()
		if err != nil {
			logger.Fatal().Err(err).Msg("load configuration")
		}
		dbClient, err := db.NewDbClient(cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect to mongo")
		}
		defer dbClient.Close()
		puzzleRepo = dao.NewPuzzleRepository(dbClient)
	}

	engine, err := puzgen.SetupEngine(*enginePath, analysis)
	if err != nil {
		logger.Fatal().Err(err).Msg("set up engine")
	}
	defer engine.Close()

	analyzer := puzgen.NewAnalyzer(puzgen.NewEngineOracle(engine, analysis, logger), logger)

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("open pgn file")
	}
	defer f.Close()

	enc := json.NewEncoder(os.Stdout)
	scanner := chess.NewScanner(f)
	for scanner.Scan() {
		rec := puzgen.NewGameRecord(scanner.Next())
		logger.Info().Str("game", rec.ID).Msg("scanning")

		puzzle, err := analyzer.ScanGame(rec)
		if err != nil {
			// Engine failures are fatal to the whole run: no further
			// analysis is possible once the channel is gone.
			logger.Fatal().Err(err).Msg("analysis failed")
		}
		if puzzle == nil {
			logger.Debug().Str("game", rec.ID).Msg("no only-move sequence found")
			continue
		}

		if err := enc.Encode(puzzle); err != nil {
			logger.Fatal().Err(err).Msg("emit puzzle")
		}
		if puzzleRepo != nil {
			if err := puzzleRepo.InsertPuzzle(*puzzle); err != nil {
				logger.Fatal().Err(err).Msg("store puzzle")
			}
		}
	}
}
