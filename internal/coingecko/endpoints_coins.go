package coingecko

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MarketsParams shapes a /coins/markets request.
type MarketsParams struct {
	// Currency to price against, e.g. "usd". Defaults to "usd".
	Currency string
	// IDs filters to specific coins. Empty means the full ranking.
	IDs []string
	// Category filters to one category slug.
	Category string
	// Order, e.g. "market_cap_desc". Defaults to "market_cap_desc".
	Order string
	// PerPage is 1-250. Defaults to 100.
	PerPage int
	// Page is 1-based. Defaults to 1.
	Page int
	// Sparkline includes the 7d price series per row.
	Sparkline bool
	// PriceChangePercentage lists extra change windows, e.g. "1h","7d".
	PriceChangePercentage []string
}

func (p MarketsParams) values() url.Values {
	params := url.Values{}
	cur := p.Currency
	if cur == "" {
		cur = "usd"
	}
	params.Set("vs_currency", cur)
	order := p.Order
	if order == "" {
		order = "market_cap_desc"
	}
	params.Set("order", order)
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = 100
	}
	params.Set("per_page", strconv.Itoa(perPage))
	page := p.Page
	if page <= 0 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("sparkline", strconv.FormatBool(p.Sparkline))
	if csv := joinIDs(p.IDs); csv != "" {
		params.Set("ids", csv)
	}
	if p.Category != "" {
		params.Set("category", p.Category)
	}
	if len(p.PriceChangePercentage) > 0 {
		params.Set("price_change_percentage", strings.Join(p.PriceChangePercentage, ","))
	}
	return params
}

// CoinsMarkets fetches one page of ranked market rows.
func (c *Client) CoinsMarkets(ctx context.Context, p MarketsParams) Envelope[[]Market] {
	return resolve[[]Market](ctx, c, "/coins/markets", p.values(), c.shortTTL)
}

// CoinDetails fetches the full metadata record for one coin. Heavy
// sub-payloads (localization, tickers, community, developer) are left
// out; market data is included.
func (c *Client) CoinDetails(ctx context.Context, id string) Envelope[CoinDetails] {
	if id == "" {
		return Fail[CoinDetails](errors.New("coin id is required"))
	}
	params := url.Values{}
	params.Set("localization", "false")
	params.Set("tickers", "false")
	params.Set("market_data", "true")
	params.Set("community_data", "false")
	params.Set("developer_data", "false")
	params.Set("sparkline", "false")
	path := "/coins/" + url.PathEscape(id)
	return resolve[CoinDetails](ctx, c, path, params, c.longTTL)
}

// CoinHistory fetches the coin snapshot at a date given as DD-MM-YYYY.
func (c *Client) CoinHistory(ctx context.Context, id, date string) Envelope[CoinHistory] {
	if id == "" {
		return Fail[CoinHistory](errors.New("coin id is required"))
	}
	if _, err := time.Parse("02-01-2006", date); err != nil {
		return Fail[CoinHistory](fmt.Errorf("date must be DD-MM-YYYY: %w", err))
	}
	params := url.Values{}
	params.Set("date", date)
	params.Set("localization", "false")
	path := "/coins/" + url.PathEscape(id) + "/history"
	return resolve[CoinHistory](ctx, c, path, params, c.longTTL)
}

// CoinTickers fetches exchange tickers for one coin.
func (c *Client) CoinTickers(ctx context.Context, id string, page int) Envelope[Tickers] {
	if id == "" {
		return Fail[Tickers](errors.New("coin id is required"))
	}
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	path := "/coins/" + url.PathEscape(id) + "/tickers"
	return resolve[Tickers](ctx, c, path, params, c.shortTTL)
}

// CoinByContract looks a coin up by contract address on a platform.
func (c *Client) CoinByContract(ctx context.Context, platform, address string) Envelope[CoinDetails] {
	if platform == "" || address == "" {
		return Fail[CoinDetails](errors.New("asset platform and contract address are required"))
	}
	path := "/coins/" + url.PathEscape(platform) + "/contract/" + url.PathEscape(address)
	return resolve[CoinDetails](ctx, c, path, nil, c.longTTL)
}
