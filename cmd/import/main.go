package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gameshelf/database"
	"gameshelf/internal/config"
	"gameshelf/internal/extract"
	"gameshelf/internal/http-api/repository"
	"gameshelf/internal/importer"
	"gameshelf/internal/scrape"
)

// One-shot import runner: scrape a catalog URL, extract game details, and
// upsert the record. Useful for seeding the catalog without the API running.
func main() {
	urlFlag := flag.String("url", "", "catalog page URL to import (required)")
	forSale := flag.Bool("for-sale", false, "mark the imported game as for sale")
	comingSoon := flag.Bool("coming-soon", false, "mark the imported game as coming soon")
	expansion := flag.Bool("expansion", false, "mark the imported game as an expansion")
	room := flag.String("room", "", "location room")
	shelf := flag.String("shelf", "", "location shelf")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall import timeout")
	flag.Parse()

	if *urlFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: import -url <catalog page URL> [-for-sale] [-coming-soon] [-expansion] [-room R] [-shelf S]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	scrapeClient := scrape.NewClient(cfg.FirecrawlAPIKey,
		scrape.WithBaseURL(cfg.FirecrawlAPIURL),
		scrape.WithHTTPClient(&http.Client{Timeout: cfg.ScrapeTimeout}),
	)
	extractClient := extract.NewClient(cfg.OpenAIAPIKey,
		extract.WithBaseURL(cfg.OpenAIAPIURL),
		extract.WithModel(cfg.OpenAIModel),
		extract.WithHTTPClient(&http.Client{Timeout: cfg.ExtractTimeout}),
		extract.WithCharBudget(cfg.ImportMarkdownBudget),
	)
	pipeline := importer.NewPipeline(scrapeClient, extractClient, repository.NewImportStore(db), logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("interrupt received, cancelling import")
		cancel()
	}()

	req := importer.Request{
		URL:          *urlFlag,
		IsComingSoon: *comingSoon,
		IsForSale:    *forSale,
		IsExpansion:  *expansion,
	}
	if *room != "" {
		req.LocationRoom = room
	}
	if *shelf != "" {
		req.LocationShelf = shelf
	}

	game, err := pipeline.Run(ctx, req)
	if err != nil {
		logger.Error("import failed", "url", *urlFlag, "error", err)
		os.Exit(1)
	}

	logger.Info("import complete",
		"game_id", game.ID,
		"title", game.Title,
		"mechanics", len(game.Mechanics),
	)
}
