package db

import (
	"context"
	"fmt"

	"github.com/gmkornilov/mate-puzzle-extractor/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PuzzleDbClient struct {
	client           *mongo.Client
	PuzzleCollection *mongo.Collection
}

func (r *PuzzleDbClient) Close() error {
	return r.client.Disconnect(context.TODO())
}

func NewDbClient(cfg config.DatabaseConfig) (*PuzzleDbClient, error) {
	clientOpts := options.Client().ApplyURI(cfg.Address)

	client, err := mongo.Connect(context.TODO(), clientOpts)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(context.TODO(), nil); err != nil {
		return nil, err
	}

	collection := client.Database(cfg.DatabaseName).Collection(cfg.Collection)
	if collection == nil {
		return nil, fmt.Errorf("can't resolve collection %s.%s", cfg.DatabaseName, cfg.Collection)
	}
	return &PuzzleDbClient{
		client:           client,
		PuzzleCollection: collection,
	}, nil
}
