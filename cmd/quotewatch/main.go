package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quotewatch/internal/config"
	"quotewatch/internal/fetch"
	"quotewatch/internal/httpx"
	"quotewatch/internal/provider/hexun"
	"quotewatch/internal/render"
	"quotewatch/internal/watchlist"
)

func main() {
	var configPath string
	var filePath string
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.StringVar(&filePath, "file", getenv("WATCHLIST", ""), "path to watchlist JSON file")
	flag.Parse()
	if filePath == "" && flag.NArg() > 0 {
		filePath = flag.Arg(0)
	}
	if filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: quotewatch [flags] <watchlist.json>")
		os.Exit(1)
	}
	if _, err := os.Stat(filePath); err != nil {
		log.Fatalf("watchlist: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	secs, err := watchlist.Load(filePath)
	if err != nil {
		log.Fatalf("watchlist: %v", err)
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec)*time.Second, cfg.Hexun.UserAgent)
	client := hexun.NewClient(hexun.WithHTTPClient(httpClient))
	fetcher := &fetch.Orchestrator{Client: client, MaxConcurrency: cfg.Hexun.MaxConcurrency}

	results := fetcher.Fetch(context.Background(), secs)
	for _, r := range results {
		if r.Err != nil {
			log.Printf("%s: %v", r.Security.Name, r.Err)
		}
	}
	fmt.Print(render.Table(results))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
