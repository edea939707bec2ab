package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"dbbench/util"
)

// Defaults reproduce the original workload: 5000 users, 20000 orders,
// seed 42, local servers, throwaway files in the working directory.
const (
	defaultPostgres      = "host=localhost user=bench password=password dbname=shopping_db sslmode=disable"
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "shopping_db"
	defaultSQLitePath    = "benchmark.db"
	defaultJSONPath      = "tiny_benchmark.json"
	defaultUsers         = 5000
	defaultOrders        = 20000
	defaultSeed          = 42
)

type Config struct {
	Postgres      string `yaml:"postgres"`
	MongoURI      string `yaml:"mongoUri"`
	MongoDatabase string `yaml:"mongoDatabase"`
	SQLitePath    string `yaml:"sqlitePath"`
	JSONPath      string `yaml:"jsonPath"`
	Users         int    `yaml:"users"`
	Orders        int    `yaml:"orders"`
	Seed          int64  `yaml:"seed"`
}

func defaultConfig() Config {
	return Config{
		Postgres:      defaultPostgres,
		MongoURI:      defaultMongoURI,
		MongoDatabase: defaultMongoDatabase,
		SQLitePath:    defaultSQLitePath,
		JSONPath:      defaultJSONPath,
		Users:         defaultUsers,
		Orders:        defaultOrders,
		Seed:          defaultSeed,
	}
}

// Returns a Config with the information in the configFile layered over
// the defaults. An empty configFile means defaults only.
func buildConfig(configFile string) *Config {
	cfg := defaultConfig()
	if configFile == "" {
		return &cfg
	}

	data := util.Try(os.ReadFile(configFile))
	util.CheckErr(yaml.Unmarshal(data, &cfg))

	return &cfg
}
