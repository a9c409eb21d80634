package main

import (
	"github.com/joho/godotenv"

	"github.com/StinkyLord/py-env-sync/cmd"
)

func main() {
	// Load .env if present so PYENVSYNC_* variables can live next to the
	// project. Missing file is fine.
	_ = godotenv.Load()

	cmd.Execute()
}
