package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ezerfernandes/mdmermaid/internal/cmd"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
