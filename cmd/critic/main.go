package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/dshills/critic/internal/cli"
)

func main() {
	// A missing .env file is not an error; credentials may come from the
	// process environment.
	_ = godotenv.Load()

	os.Exit(cli.Run())
}
