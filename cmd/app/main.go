package main

import (
	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/app"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

func main() {
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database: %v", err)
		}
	}()

	app.Start()
}
