package main

import (
	"context"
	"flag"
	"log"

	"github.com/kaypiton/billing-backend/internal/app"
	"github.com/kaypiton/billing-backend/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to the yaml config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	if err := a.Run(context.Background()); err != nil {
		log.Fatalf("run error: %v", err)
	}
}
