package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/autobattler/internal/config"
	abmcp "github.com/peterkuimelis/autobattler/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	flag.StringVar(&cfg.DecksFile, "decks", cfg.DecksFile, "path to decks YAML file")
	flag.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "path to catalog YAML file (empty for built-in cards)")
	flag.Parse()

	// stdout carries the MCP protocol; operational logs go to stderr.
	cfg.Logging.Format = "json"
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	cat, err := cfg.LoadCatalog()
	if err != nil {
		fatal(err)
	}
	decks, err := cfg.LoadDecks(cat)
	if err != nil {
		fatal(err)
	}

	s := server.NewMCPServer("autobattler", "1.0.0")
	abmcp.NewTools(cat, decks, cfg.MaxTurns, cfg.BatchWorkers, logger).Register(s)

	if err := server.ServeStdio(s); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
