package config

import (
	"github.com/kelseyhightower/envconfig"
)

type DatabaseConfig struct {
	Address      string `envconfig:"MONGO_ADDRESS" default:"mongodb://localhost:27017"`
	DatabaseName string `envconfig:"MONGO_DATABASE" default:"puzzles"`
	Collection   string `envconfig:"MONGO_COLLECTION" default:"mate_puzzles"`
}

type StockfishConfig struct {
	Path string   `envconfig:"STOCKFISH_PATH" default:"stockfish"`
	Args []string `envconfig:"STOCKFISH_ARGS"`
}

// Configuration is the backend server configuration.
type Configuration struct {
	Server struct {
		Host string `envconfig:"SERVER_HOST"`
		Port string `envconfig:"SERVER_PORT" default:"8080"`
	}
	Database  DatabaseConfig
	Stockfish StockfishConfig
}

// ExtractorConfiguration is the part of the environment the CLI extractor
// needs when it stores puzzles; engine settings come from flags and the
// optional YAML analysis config instead.
type ExtractorConfiguration struct {
	Database DatabaseConfig
}

func InitConfig() (*Configuration, error) {
	cfg := &Configuration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}

func InitExtractorConfig() (*ExtractorConfiguration, error) {
	cfg := &ExtractorConfiguration{}
	err := envconfig.Process("", cfg)
	return cfg, err
}
