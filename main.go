package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	releaseVersion = "1.0.0"
)

func main() {
	log.SetFlags(0)

	// Optional .env for local development; env vars win either way
	_ = godotenv.Load()

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
