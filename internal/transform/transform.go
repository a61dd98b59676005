// Package transform reshapes raw CoinGecko payloads into normalized,
// ranked records with derived metrics. Every function here is pure and
// total: malformed or partial input yields zero-valued fields, never a
// panic or an error.
package transform

import (
	"math"
	"strings"

	"coindash/internal/coingecko"
)

// MarketRecord is a normalized market row. Rank is the 1-based position
// in the input the record was built from; the transformer never
// re-sorts, so callers must request data in the order they want ranked.
type MarketRecord struct {
	Rank              int       `json:"rank"`
	ID                string    `json:"id"`
	Symbol            string    `json:"symbol"`
	Name              string    `json:"name"`
	Image             string    `json:"image"`
	CurrentPrice      float64   `json:"currentPrice"`
	MarketCap         float64   `json:"marketCap"`
	Volume24h         float64   `json:"volume24h"`
	PriceChange1h     float64   `json:"priceChange1h"`
	PriceChange24h    float64   `json:"priceChange24h"`
	PriceChange7d     float64   `json:"priceChange7d"`
	High24h           float64   `json:"high24h"`
	Low24h            float64   `json:"low24h"`
	ATH               float64   `json:"ath"`
	ATHDate           string    `json:"athDate"`
	ATL               float64   `json:"atl"`
	ATLDate           string    `json:"atlDate"`
	CirculatingSupply float64   `json:"circulatingSupply"`
	TotalSupply       float64   `json:"totalSupply"`
	MaxSupply         float64   `json:"maxSupply"`
	Sparkline         []float64 `json:"sparkline"`

	// Derived metrics, computed at transform time.
	VolumeToMarketCap float64 `json:"volumeToMarketCap"`
	PriceVolatility   float64 `json:"priceVolatility"`
}

// MarketRecords normalizes a market-list payload, ranking rows by input
// position and computing the derived metrics.
func MarketRecords(raw []coingecko.Market) []MarketRecord {
	out := make([]MarketRecord, 0, len(raw))
	for i, m := range raw {
		rec := MarketRecord{
			Rank:              i + 1,
			ID:                m.ID,
			Symbol:            strings.ToUpper(m.Symbol),
			Name:              m.Name,
			Image:             m.Image,
			CurrentPrice:      m.CurrentPrice,
			MarketCap:         m.MarketCap,
			Volume24h:         m.TotalVolume,
			PriceChange1h:     m.PriceChangePercentage1h,
			PriceChange24h:    m.PriceChangePercentage24h,
			PriceChange7d:     m.PriceChangePercentage7d,
			High24h:           m.High24h,
			Low24h:            m.Low24h,
			ATH:               m.ATH,
			ATHDate:           m.ATHDate,
			ATL:               m.ATL,
			ATLDate:           m.ATLDate,
			CirculatingSupply: m.CirculatingSupply,
			TotalSupply:       m.TotalSupply,
			MaxSupply:         m.MaxSupply,
		}
		if m.Sparkline != nil {
			rec.Sparkline = m.Sparkline.Price
		}
		if m.TotalVolume != 0 && m.MarketCap != 0 {
			rec.VolumeToMarketCap = m.TotalVolume / m.MarketCap
		}
		if m.High24h != 0 && m.Low24h != 0 && m.CurrentPrice != 0 {
			rec.PriceVolatility = math.Abs(m.High24h-m.Low24h) / m.CurrentPrice * 100
		}
		out = append(out, rec)
	}
	return out
}

// GlobalSnapshot is the normalized market-wide statistics view.
type GlobalSnapshot struct {
	TotalMarketCapUSD  float64 `json:"totalMarketCapUsd"`
	TotalVolumeUSD     float64 `json:"totalVolumeUsd"`
	BTCDominance       float64 `json:"btcDominance"`
	ETHDominance       float64 `json:"ethDominance"`
	ActiveAssets       int     `json:"activeAssets"`
	Markets            int     `json:"markets"`
	MarketCapChange24h float64 `json:"marketCapChange24h"`
	UpdatedAt          int64   `json:"updatedAt"`
}

// Global extracts the nested global payload with zero defaults for
// every optional path.
func Global(raw coingecko.GlobalData) GlobalSnapshot {
	d := raw.Data
	return GlobalSnapshot{
		TotalMarketCapUSD:  d.TotalMarketCap["usd"],
		TotalVolumeUSD:     d.TotalVolume["usd"],
		BTCDominance:       d.MarketCapPercentage["btc"],
		ETHDominance:       d.MarketCapPercentage["eth"],
		ActiveAssets:       d.ActiveCryptocurrencies,
		Markets:            d.Markets,
		MarketCapChange24h: d.MarketCapChangePercentage24hUSD,
		UpdatedAt:          d.UpdatedAt,
	}
}

// TrendingCoin is one normalized trending coin.
type TrendingCoin struct {
	Rank          int     `json:"rank"`
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	MarketCapRank int     `json:"marketCapRank"`
	Thumb         string  `json:"thumb"`
	PriceBTC      float64 `json:"priceBtc"`
}

// TrendingNFT is one normalized trending NFT collection.
type TrendingNFT struct {
	Rank           int     `json:"rank"`
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	Thumb          string  `json:"thumb"`
	FloorPrice     float64 `json:"floorPrice"`
	FloorChange24h float64 `json:"floorChange24h"`
}

// TrendingCategory is one normalized trending category.
type TrendingCategory struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	CoinsCount float64 `json:"coinsCount"`
}

// TrendingSnapshot carries the three independently ranked trending
// lists.
type TrendingSnapshot struct {
	Coins      []TrendingCoin     `json:"coins"`
	NFTs       []TrendingNFT      `json:"nfts"`
	Categories []TrendingCategory `json:"categories"`
}

// Trending normalizes a /search/trending payload. Each list is ranked
// 1-based by its own input order, independent of the other two.
func Trending(raw coingecko.TrendingData) TrendingSnapshot {
	snap := TrendingSnapshot{
		Coins:      make([]TrendingCoin, 0, len(raw.Coins)),
		NFTs:       make([]TrendingNFT, 0, len(raw.NFTs)),
		Categories: make([]TrendingCategory, 0, len(raw.Categories)),
	}
	for i, c := range raw.Coins {
		snap.Coins = append(snap.Coins, TrendingCoin{
			Rank:          i + 1,
			ID:            c.Item.ID,
			Name:          c.Item.Name,
			Symbol:        strings.ToUpper(c.Item.Symbol),
			MarketCapRank: c.Item.MarketCapRank,
			Thumb:         c.Item.Thumb,
			PriceBTC:      c.Item.PriceBTC,
		})
	}
	for i, n := range raw.NFTs {
		snap.NFTs = append(snap.NFTs, TrendingNFT{
			Rank:           i + 1,
			ID:             n.ID,
			Name:           n.Name,
			Symbol:         n.Symbol,
			Thumb:          n.Thumb,
			FloorPrice:     n.FloorPriceInNativeCurrency,
			FloorChange24h: n.FloorPrice24hPercentageChange,
		})
	}
	for i, cat := range raw.Categories {
		snap.Categories = append(snap.Categories, TrendingCategory{
			Rank:       i + 1,
			Name:       cat.Name,
			Slug:       cat.Slug,
			CoinsCount: cat.CoinsCount,
		})
	}
	return snap
}
