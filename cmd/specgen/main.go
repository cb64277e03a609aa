package main

import (
	"github.com/joho/godotenv"

	"specgen/internal/app/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
