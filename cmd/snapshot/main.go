package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"coindash/internal/aggregate"
	"coindash/internal/cache"
	"coindash/internal/coingecko"
	"coindash/internal/config"
	"coindash/internal/httpx"
	"coindash/internal/transform"
)

// snapshot dumps a full market snapshot (ranked records plus 30-day
// charts for the top coins) as one JSON document. Chart fetches run
// through the paced batch helper to stay inside the upstream quota.
func main() {
	var count int
	var charts int
	var outPath string
	var configPath string

	flag.IntVar(&count, "count", 250, "number of market records")
	flag.IntVar(&charts, "charts", 10, "number of top coins to fetch 30d charts for")
	flag.StringVar(&outPath, "out", "", "output file (default stdout)")
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	markets := svc.MarketData(ctx, count)
	if !markets.Success {
		log.Fatalf("market data: %s", markets.Error)
	}

	if charts > len(markets.Data) {
		charts = len(markets.Data)
	}
	type chartEntry struct {
		CoinID string                `json:"coinId"`
		Chart  coingecko.MarketChart `json:"chart"`
	}
	fns := make([]func(context.Context) (chartEntry, error), 0, charts)
	for _, rec := range markets.Data[:charts] {
		fns = append(fns, func(ctx context.Context) (chartEntry, error) {
			env := cg.MarketChart(ctx, rec.ID, "usd", 30)
			return chartEntry{CoinID: rec.ID, Chart: env.Data}, env.Err()
		})
	}
	delay := time.Duration(cfg.CoinGecko.BatchDelayMs) * time.Millisecond
	chartData, err := aggregate.PacedBatch(ctx, delay, fns)
	if err != nil {
		log.Fatalf("charts: %v", err)
	}

	doc := struct {
		TakenAt time.Time                `json:"takenAt"`
		Records []transform.MarketRecord `json:"records"`
		Charts  []chartEntry             `json:"charts"`
	}{
		TakenAt: time.Now().UTC(),
		Records: markets.Data,
		Charts:  chartData,
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("create %s: %v", outPath, err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		log.Fatalf("encode: %v", err)
	}
	if outPath != "" {
		log.Printf("wrote %s: %d records, %d charts", outPath, len(doc.Records), len(doc.Charts))
	}
}
