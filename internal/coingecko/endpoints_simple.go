package coingecko

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// SimplePriceOptions selects the optional fields of a /simple/price or
// /simple/token_price response.
type SimplePriceOptions struct {
	IncludeMarketCap     bool
	Include24hVolume     bool
	Include24hChange     bool
	IncludeLastUpdatedAt bool
}

func (o SimplePriceOptions) apply(params url.Values) {
	if o.IncludeMarketCap {
		params.Set("include_market_cap", "true")
	}
	if o.Include24hVolume {
		params.Set("include_24hr_vol", "true")
	}
	if o.Include24hChange {
		params.Set("include_24hr_change", "true")
	}
	if o.IncludeLastUpdatedAt {
		params.Set("include_last_updated_at", "true")
	}
}

// joinIDs joins a coin-id (or currency) list into the comma-separated
// form upstream expects, dropping blank entries.
func joinIDs(ids []string) string {
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	return strings.Join(clean, ",")
}

// SimplePrice fetches spot prices for one or more coin ids.
func (c *Client) SimplePrice(ctx context.Context, ids, vsCurrencies []string, opts SimplePriceOptions) Envelope[SimplePrices] {
	idCSV := joinIDs(ids)
	curCSV := joinIDs(vsCurrencies)
	if idCSV == "" {
		return Fail[SimplePrices](errors.New("at least one coin id is required"))
	}
	if curCSV == "" {
		curCSV = "usd"
	}
	params := url.Values{}
	params.Set("ids", idCSV)
	params.Set("vs_currencies", curCSV)
	opts.apply(params)
	return resolve[SimplePrices](ctx, c, "/simple/price", params, c.shortTTL)
}

// TokenPrice fetches spot prices for tokens on a platform by contract
// address.
func (c *Client) TokenPrice(ctx context.Context, platform string, addresses, vsCurrencies []string, opts SimplePriceOptions) Envelope[SimplePrices] {
	addrCSV := joinIDs(addresses)
	curCSV := joinIDs(vsCurrencies)
	if platform == "" {
		return Fail[SimplePrices](errors.New("asset platform is required"))
	}
	if addrCSV == "" {
		return Fail[SimplePrices](errors.New("at least one contract address is required"))
	}
	if curCSV == "" {
		curCSV = "usd"
	}
	params := url.Values{}
	params.Set("contract_addresses", addrCSV)
	params.Set("vs_currencies", curCSV)
	opts.apply(params)
	path := "/simple/token_price/" + url.PathEscape(platform)
	return resolve[SimplePrices](ctx, c, path, params, c.shortTTL)
}
