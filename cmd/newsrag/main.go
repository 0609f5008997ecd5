package main

import (
	"github.com/joho/godotenv"
	"newsrag/internal/cli"
)

func main() {
	// A .env file is optional; API keys can come from the environment.
	_ = godotenv.Load()

	cli.Execute()
}
