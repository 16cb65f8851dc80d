package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"

	"littlelemon/internal/db"
	"littlelemon/internal/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var errMissingURL = errors.New("DB_URL not set in environment")

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	mode := flag.String("mode", "up", "migration mode: up or down")
	dir := flag.String("dir", "./migrations", "directory holding *.sql migrations")
	flag.Parse()

	if err := run(os.Getenv("DB_URL"), *mode, *dir); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
}

func run(dbURL, mode, dir string) error {
	if dbURL == "" {
		return errMissingURL
	}

	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	return db.Migrate(conn, mode, dir)
}
