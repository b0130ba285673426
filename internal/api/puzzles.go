package api

import (
	"crypto/md5"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/dao"
	"github.com/gmkornilov/mate-puzzle-extractor/internal/scraper"
)

type PuzzleApi struct {
	PuzzleRepository dao.PuzzleRepository
	WorkerFactory    *scraper.LichessGameScraperFactory
	activeJobs       map[string]scraper.Worker
	totalJobs        int
	mu               sync.RWMutex
}

func NewPuzzleApi(puzzleRepo dao.PuzzleRepository, workerFactory *scraper.LichessGameScraperFactory) *PuzzleApi {
	return &PuzzleApi{
		PuzzleRepository: puzzleRepo,
		WorkerFactory:    workerFactory,
		activeJobs:       make(map[string]scraper.Worker, 0),
	}
}

// Puzzle returns a random stored puzzle, optionally capped by mate distance.
func (p *PuzzleApi) Puzzle(ctx *gin.Context) {
	mateInStr := ctx.DefaultQuery("max_mate_in", "0")
	maxMateIn, err := strconv.Atoi(mateInStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "max_mate_in should be an integer",
		})
		return
	}

	puzzle, err := p.PuzzleRepository.GetRandomPuzzle(maxMateIn)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, puzzle)
}

// GamePuzzles returns every stored puzzle extracted from one game.
func (p *PuzzleApi) GamePuzzles(ctx *gin.Context) {
	gameID := ctx.Query("game_id")
	if gameID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "game_id is required",
		})
		return
	}

	puzzles, err := p.PuzzleRepository.GetPuzzlesForGame(gameID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, puzzles)
}

// StartExtract launches a background job extracting puzzles from a lichess
// user's recent games.
func (p *PuzzleApi) StartExtract(ctx *gin.Context) {
	name := ctx.Param("username")
	lastStr := ctx.DefaultQuery("last", "20")
	last, err := strconv.Atoi(lastStr)
	if err != nil || last <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "last should be a positive integer",
		})
		return
	}

	worker := p.WorkerFactory.CreateLichessScraper(name, last)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.totalJobs++
	id := fmt.Sprintf("%x", md5.Sum([]byte(strconv.Itoa(p.totalJobs))))
	p.activeJobs[id] = worker
	worker.StartWork()
	ctx.JSON(http.StatusOK, gin.H{
		"job_id": id,
	})
}

// JobStatus polls a running extraction job, removing it once done.
func (p *PuzzleApi) JobStatus(ctx *gin.Context) {
	id := ctx.Param("job_id")
	p.mu.Lock()
	defer p.mu.Unlock()
	worker, ok := p.activeJobs[id]
	if !ok {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}
	if !worker.Done() {
		ctx.JSON(http.StatusOK, gin.H{
			"done": false,
		})
		return
	}

	delete(p.activeJobs, id)
	if worker.Error() != nil {
		ctx.JSON(http.StatusOK, gin.H{
			"done":  true,
			"error": worker.Error().Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"done":   true,
		"result": worker.Result(),
	})
}
