package coingecko

// Upstream payload shapes. Numeric fields that CoinGecko may omit or
// null out decode to their zero value; the transformers rely on that.

// SimplePrices maps coin id -> currency (or "<cur>_24h_change" etc.)
// -> value, as returned by /simple/price and /simple/token_price.
type SimplePrices map[string]map[string]float64

// Market is one row of a /coins/markets response.
type Market struct {
	ID                       string     `json:"id"`
	Symbol                   string     `json:"symbol"`
	Name                     string     `json:"name"`
	Image                    string     `json:"image"`
	CurrentPrice             float64    `json:"current_price"`
	MarketCap                float64    `json:"market_cap"`
	MarketCapRank            int        `json:"market_cap_rank"`
	TotalVolume              float64    `json:"total_volume"`
	High24h                  float64    `json:"high_24h"`
	Low24h                   float64    `json:"low_24h"`
	PriceChangePercentage1h  float64    `json:"price_change_percentage_1h_in_currency"`
	PriceChangePercentage24h float64    `json:"price_change_percentage_24h"`
	PriceChangePercentage7d  float64    `json:"price_change_percentage_7d_in_currency"`
	ATH                      float64    `json:"ath"`
	ATHDate                  string     `json:"ath_date"`
	ATL                      float64    `json:"atl"`
	ATLDate                  string     `json:"atl_date"`
	CirculatingSupply        float64    `json:"circulating_supply"`
	TotalSupply              float64    `json:"total_supply"`
	MaxSupply                float64    `json:"max_supply"`
	Sparkline                *Sparkline `json:"sparkline_in_7d,omitempty"`
}

// Sparkline is the 7-day price series attached to a market row when
// sparkline=true is requested.
type Sparkline struct {
	Price []float64 `json:"price"`
}

// ListedCoin is one row of /coins/list.
type ListedCoin struct {
	ID        string            `json:"id"`
	Symbol    string            `json:"symbol"`
	Name      string            `json:"name"`
	Platforms map[string]string `json:"platforms,omitempty"`
}

// AssetPlatform is one row of /asset_platforms.
type AssetPlatform struct {
	ID              string `json:"id"`
	ChainIdentifier *int64 `json:"chain_identifier"`
	Name            string `json:"name"`
	ShortName       string `json:"shortname"`
}

// TokenList is the payload of /token_lists/{platform}/all.json.
type TokenList struct {
	Name     string      `json:"name"`
	LogoURI  string      `json:"logoURI"`
	Keywords []string    `json:"keywords"`
	Tokens   []TokenInfo `json:"tokens"`
}

// TokenInfo is one token entry of a TokenList.
type TokenInfo struct {
	ChainID  int64  `json:"chainId"`
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoURI"`
}

// Category is one row of /coins/categories (with market data).
type Category struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	MarketCap          float64  `json:"market_cap"`
	MarketCapChange24h float64  `json:"market_cap_change_24h"`
	Content            string   `json:"content"`
	Top3Coins          []string `json:"top_3_coins"`
	Volume24h          float64  `json:"volume_24h"`
	UpdatedAt          string   `json:"updated_at"`
}

// CategoryName is one row of /coins/categories/list.
type CategoryName struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

// CoinDetails is the subset of /coins/{id} (and the contract lookup)
// consumed downstream.
type CoinDetails struct {
	ID                  string            `json:"id"`
	Symbol              string            `json:"symbol"`
	Name                string            `json:"name"`
	Description         map[string]string `json:"description"`
	Image               CoinImage         `json:"image"`
	MarketCapRank       int               `json:"market_cap_rank"`
	GenesisDate         string            `json:"genesis_date"`
	Categories          []string          `json:"categories"`
	ContractAddress     string            `json:"contract_address,omitempty"`
	SentimentVotesUpPct float64           `json:"sentiment_votes_up_percentage"`
	MarketData          CoinMarketData    `json:"market_data"`
}

// CoinImage carries the three icon resolutions.
type CoinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// CoinMarketData is the nested market_data block of a coin details or
// history payload. Per-currency values are keyed by currency code.
type CoinMarketData struct {
	CurrentPrice             map[string]float64 `json:"current_price"`
	MarketCap                map[string]float64 `json:"market_cap"`
	TotalVolume              map[string]float64 `json:"total_volume"`
	High24h                  map[string]float64 `json:"high_24h"`
	Low24h                   map[string]float64 `json:"low_24h"`
	PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
	PriceChangePercentage7d  float64            `json:"price_change_percentage_7d"`
	PriceChangePercentage30d float64            `json:"price_change_percentage_30d"`
	CirculatingSupply        float64            `json:"circulating_supply"`
	TotalSupply              float64            `json:"total_supply"`
	MaxSupply                float64            `json:"max_supply"`
}

// CoinHistory is the payload of /coins/{id}/history.
type CoinHistory struct {
	ID         string         `json:"id"`
	Symbol     string         `json:"symbol"`
	Name       string         `json:"name"`
	Image      CoinImage      `json:"image"`
	MarketData CoinMarketData `json:"market_data"`
}

// Tickers is the payload of /coins/{id}/tickers.
type Tickers struct {
	Name    string   `json:"name"`
	Tickers []Ticker `json:"tickers"`
}

// Ticker is one exchange ticker row.
type Ticker struct {
	Base          string             `json:"base"`
	Target        string             `json:"target"`
	Market        TickerMarket       `json:"market"`
	Last          float64            `json:"last"`
	Volume        float64            `json:"volume"`
	ConvertedLast map[string]float64 `json:"converted_last"`
	TrustScore    string             `json:"trust_score"`
	TradeURL      string             `json:"trade_url"`
}

// TickerMarket identifies the exchange a ticker came from.
type TickerMarket struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// MarketChart is the payload of /coins/{id}/market_chart[/range] and
// the contract variants. Each point is a [timestamp-ms, value] pair.
type MarketChart struct {
	Prices       [][]float64 `json:"prices"`
	MarketCaps   [][]float64 `json:"market_caps"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// OHLC is the payload of /coins/{id}/ohlc: rows of
// [timestamp-ms, open, high, low, close].
type OHLC [][]float64

// GlobalData is the payload of /global.
type GlobalData struct {
	Data GlobalStats `json:"data"`
}

// GlobalStats is the nested "data" block of /global.
type GlobalStats struct {
	ActiveCryptocurrencies          int                `json:"active_cryptocurrencies"`
	Markets                         int                `json:"markets"`
	TotalMarketCap                  map[string]float64 `json:"total_market_cap"`
	TotalVolume                     map[string]float64 `json:"total_volume"`
	MarketCapPercentage             map[string]float64 `json:"market_cap_percentage"`
	MarketCapChangePercentage24hUSD float64            `json:"market_cap_change_percentage_24h_usd"`
	UpdatedAt                       int64              `json:"updated_at"`
}

// TrendingData is the payload of /search/trending.
type TrendingData struct {
	Coins      []TrendingCoin     `json:"coins"`
	NFTs       []TrendingNFT      `json:"nfts"`
	Categories []TrendingCategory `json:"categories"`
}

// TrendingCoin wraps the nested "item" object of a trending coin.
type TrendingCoin struct {
	Item TrendingCoinItem `json:"item"`
}

// TrendingCoinItem is the display payload of one trending coin.
type TrendingCoinItem struct {
	ID            string  `json:"id"`
	CoinID        int64   `json:"coin_id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	MarketCapRank int     `json:"market_cap_rank"`
	Thumb         string  `json:"thumb"`
	Small         string  `json:"small"`
	Large         string  `json:"large"`
	PriceBTC      float64 `json:"price_btc"`
	Score         int     `json:"score"`
}

// TrendingNFT is one trending NFT collection.
type TrendingNFT struct {
	ID                            string  `json:"id"`
	Name                          string  `json:"name"`
	Symbol                        string  `json:"symbol"`
	Thumb                         string  `json:"thumb"`
	NFTContractID                 int64   `json:"nft_contract_id"`
	NativeCurrencySymbol          string  `json:"native_currency_symbol"`
	FloorPriceInNativeCurrency    float64 `json:"floor_price_in_native_currency"`
	FloorPrice24hPercentageChange float64 `json:"floor_price_24h_percentage_change"`
}

// TrendingCategory is one trending category.
type TrendingCategory struct {
	ID                       int64   `json:"id"`
	Name                     string  `json:"name"`
	Slug                     string  `json:"slug"`
	CoinsCount               float64 `json:"coins_count"`
	MarketCap1hChange        float64 `json:"market_cap_1h_change"`
	MarketCapChangePercent24 float64 `json:"market_cap_change_percentage_24h,omitempty"`
}
