package coingecko

import (
	"context"
	"errors"
	"net/url"
)

// CoinsList fetches the full id/symbol/name catalogue. With
// includePlatform the rows also carry contract addresses per platform.
func (c *Client) CoinsList(ctx context.Context, includePlatform bool) Envelope[[]ListedCoin] {
	params := url.Values{}
	if includePlatform {
		params.Set("include_platform", "true")
	}
	return resolve[[]ListedCoin](ctx, c, "/coins/list", params, c.longTTL)
}

// AssetPlatforms fetches the catalogue of chains CoinGecko indexes.
func (c *Client) AssetPlatforms(ctx context.Context) Envelope[[]AssetPlatform] {
	return resolve[[]AssetPlatform](ctx, c, "/asset_platforms", nil, c.longTTL)
}

// TokenList fetches the standard token list for a platform.
func (c *Client) TokenList(ctx context.Context, platform string) Envelope[TokenList] {
	if platform == "" {
		return Fail[TokenList](errors.New("asset platform is required"))
	}
	path := "/token_lists/" + url.PathEscape(platform) + "/all.json"
	return resolve[TokenList](ctx, c, path, nil, c.longTTL)
}

// Categories fetches all coin categories with market data.
func (c *Client) Categories(ctx context.Context) Envelope[[]Category] {
	return resolve[[]Category](ctx, c, "/coins/categories", nil, c.longTTL)
}

// CategoriesList fetches the bare category id/name catalogue.
func (c *Client) CategoriesList(ctx context.Context) Envelope[[]CategoryName] {
	return resolve[[]CategoryName](ctx, c, "/coins/categories/list", nil, c.longTTL)
}
