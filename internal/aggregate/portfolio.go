package aggregate

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"coindash/internal/coingecko"
)

// Holding is a caller-supplied position: a coin id and an amount held.
// Holdings are inputs only; nothing here persists them.
type Holding struct {
	CoinID string  `json:"coinId"`
	Amount float64 `json:"amount"`
}

// HoldingValue is one valued holding.
type HoldingValue struct {
	CoinID         string  `json:"coinId"`
	Amount         float64 `json:"amount"`
	Price          float64 `json:"price"`
	Value          float64 `json:"value"`
	Change24hPct   float64 `json:"change24hPct"`
	ValueChange24h float64 `json:"valueChange24h"`
}

// Portfolio is the valuation of a set of holdings.
type Portfolio struct {
	Holdings       []HoldingValue `json:"holdings"`
	TotalValue     float64        `json:"totalValue"`
	TotalChange24h float64        `json:"totalChange24h"`
}

// Portfolio values the given holdings from one batched price query.
// Holdings whose coin id is absent from the price response are dropped
// silently.
func (s *Service) Portfolio(ctx context.Context, holdings []Holding) coingecko.Envelope[Portfolio] {
	if len(holdings) == 0 {
		return coingecko.Fail[Portfolio](errors.New("at least one holding is required"))
	}
	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		ids = append(ids, h.CoinID)
	}

	env := s.cg.SimplePrice(ctx, ids, []string{"usd"}, coingecko.SimplePriceOptions{Include24hChange: true})
	if err := env.Err(); err != nil {
		return coingecko.Fail[Portfolio](err)
	}

	var out Portfolio
	for _, h := range holdings {
		prices, found := env.Data[h.CoinID]
		if !found {
			continue
		}
		price := prices["usd"]
		change := prices["usd_24h_change"]
		value := h.Amount * price
		valueChange := value * change / 100
		out.Holdings = append(out.Holdings, HoldingValue{
			CoinID:         h.CoinID,
			Amount:         h.Amount,
			Price:          price,
			Value:          value,
			Change24hPct:   change,
			ValueChange24h: valueChange,
		})
		out.TotalValue += value
		out.TotalChange24h += valueChange
	}
	return coingecko.OK(out, env.Cached)
}

// ROI is the return between two historical prices of one coin.
type ROI struct {
	CoinID     string  `json:"coinId"`
	FromDate   string  `json:"fromDate"`
	ToDate     string  `json:"toDate"`
	FromPrice  float64 `json:"fromPrice"`
	ToPrice    float64 `json:"toPrice"`
	ROIPercent float64 `json:"roiPercent"`
}

// ROI computes the percentage change of a coin's USD price between two
// dates given as DD-MM-YYYY.
func (s *Service) ROI(ctx context.Context, id, fromDate, toDate string) coingecko.Envelope[ROI] {
	if id == "" {
		return coingecko.Fail[ROI](errors.New("coin id is required"))
	}
	var fromHist, toHist coingecko.CoinHistory
	cached := make([]bool, 2)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env := s.cg.CoinHistory(gctx, id, fromDate)
		fromHist, cached[0] = env.Data, env.Cached
		return env.Err()
	})
	g.Go(func() error {
		env := s.cg.CoinHistory(gctx, id, toDate)
		toHist, cached[1] = env.Data, env.Cached
		return env.Err()
	})
	if err := g.Wait(); err != nil {
		return coingecko.Fail[ROI](err)
	}

	fromPrice := fromHist.MarketData.CurrentPrice["usd"]
	toPrice := toHist.MarketData.CurrentPrice["usd"]
	if fromPrice == 0 {
		return coingecko.Fail[ROI](fmt.Errorf("no price data for %s on %s", id, fromDate))
	}
	return coingecko.OK(ROI{
		CoinID:     id,
		FromDate:   fromDate,
		ToDate:     toDate,
		FromPrice:  fromPrice,
		ToPrice:    toPrice,
		ROIPercent: (toPrice - fromPrice) / fromPrice * 100,
	}, allTrue(cached))
}
