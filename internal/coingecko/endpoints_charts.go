package coingecko

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

func chartParams(currency string, days int) url.Values {
	if currency == "" {
		currency = "usd"
	}
	if days <= 0 {
		days = 7
	}
	params := url.Values{}
	params.Set("vs_currency", currency)
	params.Set("days", strconv.Itoa(days))
	return params
}

func rangeParams(currency string, from, to int64) url.Values {
	if currency == "" {
		currency = "usd"
	}
	params := url.Values{}
	params.Set("vs_currency", currency)
	params.Set("from", strconv.FormatInt(from, 10))
	params.Set("to", strconv.FormatInt(to, 10))
	return params
}

// MarketChart fetches price/cap/volume series for the past days days.
func (c *Client) MarketChart(ctx context.Context, id, currency string, days int) Envelope[MarketChart] {
	if id == "" {
		return Fail[MarketChart](errors.New("coin id is required"))
	}
	path := "/coins/" + url.PathEscape(id) + "/market_chart"
	return resolve[MarketChart](ctx, c, path, chartParams(currency, days), c.shortTTL)
}

// MarketChartRange fetches series between two unix timestamps.
func (c *Client) MarketChartRange(ctx context.Context, id, currency string, from, to int64) Envelope[MarketChart] {
	if id == "" {
		return Fail[MarketChart](errors.New("coin id is required"))
	}
	if from <= 0 || to <= from {
		return Fail[MarketChart](errors.New("from/to must be a valid unix timestamp range"))
	}
	path := "/coins/" + url.PathEscape(id) + "/market_chart/range"
	return resolve[MarketChart](ctx, c, path, rangeParams(currency, from, to), c.longTTL)
}

// OHLC fetches candlestick rows for the past days days.
func (c *Client) OHLC(ctx context.Context, id, currency string, days int) Envelope[OHLC] {
	if id == "" {
		return Fail[OHLC](errors.New("coin id is required"))
	}
	path := "/coins/" + url.PathEscape(id) + "/ohlc"
	return resolve[OHLC](ctx, c, path, chartParams(currency, days), c.shortTTL)
}

// ContractMarketChart fetches series for a token by contract address.
func (c *Client) ContractMarketChart(ctx context.Context, platform, address, currency string, days int) Envelope[MarketChart] {
	if platform == "" || address == "" {
		return Fail[MarketChart](errors.New("asset platform and contract address are required"))
	}
	path := "/coins/" + url.PathEscape(platform) + "/contract/" + url.PathEscape(address) + "/market_chart"
	return resolve[MarketChart](ctx, c, path, chartParams(currency, days), c.shortTTL)
}

// ContractMarketChartRange fetches series for a token by contract
// address between two unix timestamps.
func (c *Client) ContractMarketChartRange(ctx context.Context, platform, address, currency string, from, to int64) Envelope[MarketChart] {
	if platform == "" || address == "" {
		return Fail[MarketChart](errors.New("asset platform and contract address are required"))
	}
	if from <= 0 || to <= from {
		return Fail[MarketChart](errors.New("from/to must be a valid unix timestamp range"))
	}
	path := "/coins/" + url.PathEscape(platform) + "/contract/" + url.PathEscape(address) + "/market_chart/range"
	return resolve[MarketChart](ctx, c, path, rangeParams(currency, from, to), c.longTTL)
}

// Global fetches the market-wide statistics snapshot.
func (c *Client) Global(ctx context.Context) Envelope[GlobalData] {
	return resolve[GlobalData](ctx, c, "/global", nil, c.shortTTL)
}

// Trending fetches the trending coins, NFTs and categories.
func (c *Client) Trending(ctx context.Context) Envelope[TrendingData] {
	return resolve[TrendingData](ctx, c, "/search/trending", nil, c.shortTTL)
}
