// Package aggregate composes the endpoint adapters into composite
// views. Fan-out is all-or-nothing: when any branch fails the whole
// composite envelope reports failure and the successful branches are
// discarded.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"coindash/internal/coingecko"
	"coindash/internal/transform"
)

const (
	// pageSize is the per_page ceiling of /coins/markets.
	pageSize = 250
	// maxRecords is the hard upstream cap on ranked rows.
	maxRecords = 1444
)

// Service exposes the composite market-data operations.
type Service struct {
	cg *coingecko.Client
}

func New(cg *coingecko.Client) *Service {
	return &Service{cg: cg}
}

// MarketData fetches count ranked market records, fanning page requests
// out concurrently and concatenating them in page-index order
// regardless of completion order.
func (s *Service) MarketData(ctx context.Context, count int) coingecko.Envelope[[]transform.MarketRecord] {
	if count <= 0 {
		count = 100
	}
	if count > maxRecords {
		count = maxRecords
	}
	pages := (count + pageSize - 1) / pageSize

	results := make([][]coingecko.Market, pages)
	cached := make([]bool, pages)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pages; i++ {
		g.Go(func() error {
			env := s.cg.CoinsMarkets(gctx, coingecko.MarketsParams{
				PerPage:               pageSize,
				Page:                  i + 1,
				Sparkline:             true,
				PriceChangePercentage: []string{"1h", "24h", "7d"},
			})
			if err := env.Err(); err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			results[i] = env.Data
			cached[i] = env.Cached
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return coingecko.Fail[[]transform.MarketRecord](err)
	}

	all := make([]coingecko.Market, 0, count)
	for _, page := range results {
		all = append(all, page...)
	}
	if len(all) > count {
		all = all[:count]
	}
	return coingecko.OK(transform.MarketRecords(all), allTrue(cached))
}

// CoinOverview is the comprehensive per-coin composite view.
type CoinOverview struct {
	Details coingecko.CoinDetails `json:"details"`
	Tickers coingecko.Tickers     `json:"tickers"`
	Chart   coingecko.MarketChart `json:"chart"`
}

// CoinOverview fetches details, tickers and a 7-day chart concurrently.
func (s *Service) CoinOverview(ctx context.Context, id string) coingecko.Envelope[CoinOverview] {
	if id == "" {
		return coingecko.Fail[CoinOverview](errors.New("coin id is required"))
	}
	var view CoinOverview
	cached := make([]bool, 3)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env := s.cg.CoinDetails(gctx, id)
		view.Details, cached[0] = env.Data, env.Cached
		return env.Err()
	})
	g.Go(func() error {
		env := s.cg.CoinTickers(gctx, id, 1)
		view.Tickers, cached[1] = env.Data, env.Cached
		return env.Err()
	})
	g.Go(func() error {
		env := s.cg.MarketChart(gctx, id, "usd", 7)
		view.Chart, cached[2] = env.Data, env.Cached
		return env.Err()
	})
	if err := g.Wait(); err != nil {
		return coingecko.Fail[CoinOverview](err)
	}
	return coingecko.OK(view, allTrue(cached))
}

// MarketOverview is the dashboard composite: global stats, trending
// lists and the top-10 coins.
type MarketOverview struct {
	Global   transform.GlobalSnapshot   `json:"global"`
	Trending transform.TrendingSnapshot `json:"trending"`
	TopCoins []transform.MarketRecord   `json:"topCoins"`
}

// MarketOverview fetches its three branches concurrently.
func (s *Service) MarketOverview(ctx context.Context) coingecko.Envelope[MarketOverview] {
	var view MarketOverview
	cached := make([]bool, 3)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env := s.cg.Global(gctx)
		view.Global, cached[0] = transform.Global(env.Data), env.Cached
		return env.Err()
	})
	g.Go(func() error {
		env := s.cg.Trending(gctx)
		view.Trending, cached[1] = transform.Trending(env.Data), env.Cached
		return env.Err()
	})
	g.Go(func() error {
		env := s.cg.CoinsMarkets(gctx, coingecko.MarketsParams{
			PerPage:               10,
			PriceChangePercentage: []string{"1h", "7d"},
		})
		view.TopCoins, cached[2] = transform.MarketRecords(env.Data), env.Cached
		return env.Err()
	})
	if err := g.Wait(); err != nil {
		return coingecko.Fail[MarketOverview](err)
	}
	return coingecko.OK(view, allTrue(cached))
}

// CategoryView is the category drill-down composite.
type CategoryView struct {
	Category coingecko.Category       `json:"category"`
	Coins    []transform.MarketRecord `json:"coins"`
}

// CategoryDrilldown fetches the category row and its top coins
// concurrently.
func (s *Service) CategoryDrilldown(ctx context.Context, categoryID string, count int) coingecko.Envelope[CategoryView] {
	if categoryID == "" {
		return coingecko.Fail[CategoryView](errors.New("category id is required"))
	}
	if count <= 0 || count > pageSize {
		count = 50
	}
	var view CategoryView
	cached := make([]bool, 2)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env := s.cg.Categories(gctx)
		if err := env.Err(); err != nil {
			return err
		}
		cached[0] = env.Cached
		for _, cat := range env.Data {
			if cat.ID == categoryID {
				view.Category = cat
				return nil
			}
		}
		return fmt.Errorf("unknown category %q", categoryID)
	})
	g.Go(func() error {
		env := s.cg.CoinsMarkets(gctx, coingecko.MarketsParams{
			Category: categoryID,
			PerPage:  count,
		})
		view.Coins, cached[1] = transform.MarketRecords(env.Data), env.Cached
		return env.Err()
	})
	if err := g.Wait(); err != nil {
		return coingecko.Fail[CategoryView](err)
	}
	return coingecko.OK(view, allTrue(cached))
}

// GainersLosers carries the two movement extremes of a market snapshot.
type GainersLosers struct {
	Gainers []transform.MarketRecord `json:"gainers"`
	Losers  []transform.MarketRecord `json:"losers"`
}

// GainersLosers fetches a broad 250-row snapshot (no sparkline), sorts
// by 24h change and returns the top n each way. Losers come back with
// the most negative change first.
func (s *Service) GainersLosers(ctx context.Context, n int) coingecko.Envelope[GainersLosers] {
	if n <= 0 {
		n = 10
	}
	env := s.cg.CoinsMarkets(ctx, coingecko.MarketsParams{PerPage: pageSize})
	if err := env.Err(); err != nil {
		return coingecko.Fail[GainersLosers](err)
	}
	records := transform.MarketRecords(env.Data)
	sorted := make([]transform.MarketRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriceChange24h > sorted[j].PriceChange24h
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	gainers := sorted[:n]
	losers := make([]transform.MarketRecord, n)
	for i := 0; i < n; i++ {
		losers[i] = sorted[len(sorted)-1-i]
	}
	return coingecko.OK(GainersLosers{Gainers: gainers, Losers: losers}, env.Cached)
}

func allTrue(flags []bool) bool {
	for _, f := range flags {
		if !f {
			return false
		}
	}
	return true
}
