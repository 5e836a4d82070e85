package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/rakapratama/permit-extractor/internal/client"
	"github.com/rakapratama/permit-extractor/internal/common"
)

func main() {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Println("ERROR: invalid configuration:", err)
		log.Println("  mac/Linux (bash/zsh): export PERMITX_API_BASE_URL=http://HOST:PORT")
		log.Println("  Windows (PowerShell): $env:PERMITX_API_BASE_URL='http://HOST:PORT'")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.NewClient(cfg.API, nil)
	if err := api.Health(ctx); err != nil {
		log.Fatalf("API health: FAIL (%v)", err)
	}
	log.Println("API health: OK")
	log.Printf("base url: %s", cfg.API.BaseURL)
}
