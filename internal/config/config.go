package config

import (
	"os"
	"strconv"
)

type Config struct {
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
	HTTPPort      string
	UserEmail     string
	LogLevel      string
	SyncWorkers   int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		SQLitePath:    "expenses.db",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "expense_sync",
		HTTPPort:      "8080",
		UserEmail:     "",
		LogLevel:      "info",
		SyncWorkers:   1,
	}

	envSQLitePath := os.Getenv("SQLITE_PATH")
	envMongoURI := os.Getenv("MONGO_URI")
	envMongoDatabase := os.Getenv("MONGO_DATABASE")
	envHTTPPort := os.Getenv("HTTP_PORT")
	envUserEmail := os.Getenv("USER_EMAIL")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envSyncWorkers := os.Getenv("SYNC_WORKERS")

	if len(envSQLitePath) != 0 {
		env.SQLitePath = envSQLitePath
	}

	if len(envMongoURI) != 0 {
		env.MongoURI = envMongoURI
	}

	if len(envMongoDatabase) != 0 {
		env.MongoDatabase = envMongoDatabase
	}

	if len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	if len(envUserEmail) != 0 {
		env.UserEmail = envUserEmail
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	if len(envSyncWorkers) != 0 {
		workers, err := strconv.Atoi(envSyncWorkers)
		if err != nil {
			return nil, err
		}
		env.SyncWorkers = workers
	}

	return &env, nil
}
