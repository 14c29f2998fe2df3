package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/autobattler/internal/config"
	"github.com/peterkuimelis/autobattler/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP address to listen on")
	flag.StringVar(&cfg.DecksFile, "decks", cfg.DecksFile, "path to decks YAML file")
	flag.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "path to catalog YAML file (empty for built-in cards)")
	flag.Parse()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cat, err := cfg.LoadCatalog()
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}
	decks, err := cfg.LoadDecks(cat)
	if err != nil {
		logger.Fatal("load decks", zap.Error(err))
	}

	srv := web.NewServer(cat, decks, cfg.MaxTurns, logger)
	if err := srv.ListenAndServe(cfg.HTTPAddr); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
