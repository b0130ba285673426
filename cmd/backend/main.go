package main

import (
	"net"

	"github.com/gin-gonic/gin"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/api"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/config"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/dao"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/db"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/logx"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/scraper"
)

func main() {
	logger := logx.NewLogger()

	cfg, err := config.InitConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("load configuration")
	}

	dbClient, err := db.NewDbClient(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to mongo")
	}
	defer dbClient.Close()

	puzzleRepo := dao.NewPuzzleRepository(dbClient)
	workerFactory := scraper.NewLichessGameScraperFactory(cfg, puzzleRepo, logger)
	puzzleApi := api.NewPuzzleApi(puzzleRepo, workerFactory)

	router := gin.Default()
	router.GET("/api/puzzle", puzzleApi.Puzzle)
	router.GET("/api/puzzles", puzzleApi.GamePuzzles)
	router.POST("/api/extract/:username", puzzleApi.StartExtract)
	router.GET("/api/extract/status/:job_id", puzzleApi.JobStatus)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("backend listening")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
