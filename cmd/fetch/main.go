package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"coindash/internal/aggregate"
	"coindash/internal/cache"
	"coindash/internal/coingecko"
	"coindash/internal/config"
	"coindash/internal/httpx"
)

// One-shot fetch of a single operation, printed as envelope JSON.
func main() {
	var op string
	var id string
	var count int
	var from, to string
	var ids string
	var configPath string

	flag.StringVar(&op, "op", "overview", "operation: markets|coin|overview|gainers|category|price|roi|global|trending")
	flag.StringVar(&id, "id", "bitcoin", "coin or category id")
	flag.IntVar(&count, "count", 100, "record count for markets/category")
	flag.StringVar(&from, "from", "", "ROI start date, DD-MM-YYYY")
	flag.StringVar(&to, "to", "", "ROI end date, DD-MM-YYYY")
	flag.StringVar(&ids, "ids", "bitcoin,ethereum", "comma-separated coin ids for price")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	hc := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	cg := coingecko.NewClient(cache.New(), cfg.CoinGecko.APIKey,
		coingecko.WithBaseURL(cfg.CoinGecko.BaseURL),
		coingecko.WithHTTPClient(httpx.Doer{Client: hc}),
		coingecko.WithRetryPolicy(cfg.CoinGecko.MaxRetries, time.Duration(cfg.CoinGecko.BaseDelayMs)*time.Millisecond),
	)
	svc := aggregate.New(cg)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var out any
	switch op {
	case "markets":
		out = svc.MarketData(ctx, count)
	case "coin":
		out = svc.CoinOverview(ctx, id)
	case "overview":
		out = svc.MarketOverview(ctx)
	case "gainers":
		out = svc.GainersLosers(ctx, count)
	case "category":
		out = svc.CategoryDrilldown(ctx, id, count)
	case "price":
		out = cg.SimplePrice(ctx, strings.Split(ids, ","), []string{"usd"}, coingecko.SimplePriceOptions{Include24hChange: true})
	case "roi":
		out = svc.ROI(ctx, id, from, to)
	case "global":
		out = cg.Global(ctx)
	case "trending":
		out = cg.Trending(ctx)
	default:
		log.Fatalf("unknown op %q", op)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
