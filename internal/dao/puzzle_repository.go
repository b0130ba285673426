package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/gmkornilov/mate-puzzle-extractor/internal/db"
	"github.com/gmkornilov/mate-puzzle-extractor/pkg/puzgen"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PuzzleRepository interface {
	// GetRandomPuzzle samples one stored puzzle with mate distance at most
	// maxMateIn; maxMateIn <= 0 means no limit.
	GetRandomPuzzle(maxMateIn int) (puzgen.Puzzle, error)

	GetPuzzlesForGame(gameID string) ([]puzgen.Puzzle, error)

	InsertPuzzle(puzzle puzgen.Puzzle) error

	InsertAllPuzzles(puzzles []puzgen.Puzzle) error
}

type puzzleRepository struct {
	dbClient *db.PuzzleDbClient
}

func NewPuzzleRepository(dbClient *db.PuzzleDbClient) PuzzleRepository {
	return &puzzleRepository{dbClient}
}

func (p *puzzleRepository) GetRandomPuzzle(maxMateIn int) (puzgen.Puzzle, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{}
	if maxMateIn > 0 {
		matchStage := bson.D{{Key: "$match", Value: bson.D{{
			Key: "mate_in", Value: bson.D{{Key: "$lte", Value: maxMateIn}},
		}}}}
		pipeline = append(pipeline, matchStage)
	}
	pipeline = append(pipeline, bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}})

	cursor, err := p.dbClient.PuzzleCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return puzgen.Puzzle{}, err
	}

	var loaded []puzgen.Puzzle
	if err = cursor.All(ctx, &loaded); err != nil {
		return puzgen.Puzzle{}, err
	}
	if len(loaded) != 1 {
		return puzgen.Puzzle{}, fmt.Errorf("no stored puzzle matches mate_in <= %d", maxMateIn)
	}
	return loaded[0], nil
}

func (p *puzzleRepository) GetPuzzlesForGame(gameID string) ([]puzgen.Puzzle, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), time.Second)
	defer cancel()

	cur, err := p.dbClient.PuzzleCollection.Find(ctx, bson.D{{Key: "game_id", Value: gameID}})
	if err != nil {
		return nil, err
	}

	var puzzles []puzgen.Puzzle
	if err = cur.All(ctx, &puzzles); err != nil {
		return nil, err
	}
	return puzzles, nil
}

func (p *puzzleRepository) InsertPuzzle(puzzle puzgen.Puzzle) error {
	ctx, cancel := context.WithTimeout(context.TODO(), time.Second)
	defer cancel()

	_, err := p.dbClient.PuzzleCollection.InsertOne(ctx, puzzle)
	return err
}

func (p *puzzleRepository) InsertAllPuzzles(puzzles []puzgen.Puzzle) error {
	if len(puzzles) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.TODO(), time.Second)
	defer cancel()

	docs := make([]interface{}, 0, len(puzzles))
	for _, puzzle := range puzzles {
		docs = append(docs, puzzle)
	}
	_, err := p.dbClient.PuzzleCollection.InsertMany(ctx, docs)
	return err
}
