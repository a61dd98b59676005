package aggregate_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coindash/internal/aggregate"
	"coindash/internal/cache"
	"coindash/internal/coingecko"
)

func newService(srv *httptest.Server) *aggregate.Service {
	return aggregate.New(coingecko.NewClient(cache.New(), "",
		coingecko.WithBaseURL(srv.URL),
		coingecko.WithRetryPolicy(3, time.Millisecond),
	))
}

// marketsPageHandler serves deterministic /coins/markets pages:
// page p row i has id "coin-<(p-1)*perPage+i+1>".
func marketsPageHandler(t *testing.T, pagesSeen *sync.Map) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coins/markets", r.URL.Path)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		pagesSeen.Store(page, true)

		rows := make([]coingecko.Market, perPage)
		for i := range rows {
			n := (page-1)*perPage + i + 1
			rows[i] = coingecko.Market{
				ID:           fmt.Sprintf("coin-%d", n),
				Symbol:       fmt.Sprintf("c%d", n),
				CurrentPrice: float64(n),
			}
		}
		json.NewEncoder(w).Encode(rows)
	}
}

func TestMarketData_PaginatesInIssueOrder(t *testing.T) {
	t.Parallel()

	var pagesSeen sync.Map
	srv := httptest.NewServer(marketsPageHandler(t, &pagesSeen))
	defer srv.Close()

	env := newService(srv).MarketData(t.Context(), 600)
	require.True(t, env.Success, "error: %s", env.Error)
	require.Len(t, env.Data, 600)

	for _, page := range []int{1, 2, 3} {
		_, ok := pagesSeen.Load(page)
		require.True(t, ok, "page %d not requested", page)
	}
	_, ok := pagesSeen.Load(4)
	require.False(t, ok, "ceil(600/250) is 3 pages")

	// Concatenated in page order; rank is the 1-based output position.
	require.Equal(t, "coin-1", env.Data[0].ID)
	require.Equal(t, 1, env.Data[0].Rank)
	require.Equal(t, "coin-251", env.Data[250].ID)
	require.Equal(t, 251, env.Data[250].Rank)
	require.Equal(t, "coin-600", env.Data[599].ID)
	require.Equal(t, 600, env.Data[599].Rank)
}

func TestMarketData_CapsAtUpstreamLimit(t *testing.T) {
	t.Parallel()

	var pagesSeen sync.Map
	srv := httptest.NewServer(marketsPageHandler(t, &pagesSeen))
	defer srv.Close()

	env := newService(srv).MarketData(t.Context(), 5000)
	require.True(t, env.Success, "error: %s", env.Error)
	require.Len(t, env.Data, 1444)
}

func TestMarketData_FailedPageFailsWhole(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	env := newService(srv).MarketData(t.Context(), 600)
	require.False(t, env.Success)
	require.Contains(t, env.Error, "page 2")
}

func TestGainersLosers_OrdersBy24hChange(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows := make([]coingecko.Market, 250)
		for i := range rows {
			rows[i] = coingecko.Market{
				ID: fmt.Sprintf("coin-%d", i+1),
				PriceChangePercentage24h: float64((i*53)%249) - 62,
			}
		}
		json.NewEncoder(w).Encode(rows)
	}))
	defer srv.Close()

	env := newService(srv).GainersLosers(t.Context(), 10)
	require.True(t, env.Success, "error: %s", env.Error)
	require.Len(t, env.Data.Gainers, 10)
	require.Len(t, env.Data.Losers, 10)

	for i := 1; i < 10; i++ {
		require.GreaterOrEqual(t, env.Data.Gainers[i-1].PriceChange24h, env.Data.Gainers[i].PriceChange24h)
		require.LessOrEqual(t, env.Data.Losers[i-1].PriceChange24h, env.Data.Losers[i].PriceChange24h)
	}
	require.InDelta(t, 186.0, env.Data.Gainers[0].PriceChange24h, 1e-9)
	require.InDelta(t, -62.0, env.Data.Losers[0].PriceChange24h, 1e-9)
}

func TestMarketOverview_MergesBranches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/global":
			w.Write([]byte(`{"data":{"active_cryptocurrencies":12000,"market_cap_percentage":{"btc":52.0}}}`))
		case "/search/trending":
			w.Write([]byte(`{"coins":[{"item":{"id":"pepe","symbol":"pepe"}}]}`))
		case "/coins/markets":
			w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","current_price":50000}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	env := newService(srv).MarketOverview(t.Context())
	require.True(t, env.Success, "error: %s", env.Error)
	require.Equal(t, 12000, env.Data.Global.ActiveAssets)
	require.InDelta(t, 52.0, env.Data.Global.BTCDominance, 1e-9)
	require.Equal(t, "pepe", env.Data.Trending.Coins[0].ID)
	require.Equal(t, 1, env.Data.Trending.Coins[0].Rank)
	require.Equal(t, "BTC", env.Data.TopCoins[0].Symbol)
}

func TestMarketOverview_AllOrNothing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/global" {
			http.Error(w, "nope", http.StatusBadGateway)
			return
		}
		// The other branches succeed and are discarded.
		switch r.URL.Path {
		case "/search/trending":
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	env := newService(srv).MarketOverview(t.Context())
	require.False(t, env.Success)
	require.Contains(t, env.Error, "502")
}

func TestCoinOverview_AllOrNothing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coins/bitcoin":
			w.Write([]byte(`{"id":"bitcoin","symbol":"btc","name":"Bitcoin"}`))
		case "/coins/bitcoin/tickers":
			w.Write([]byte(`{"name":"Bitcoin","tickers":[{"base":"BTC","target":"USDT","last":50000}]}`))
		case "/coins/bitcoin/market_chart":
			http.Error(w, "nope", http.StatusNotFound)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	env := newService(srv).CoinOverview(t.Context(), "bitcoin")
	require.False(t, env.Success)
	require.Contains(t, env.Error, "404")
}

func TestCoinOverview_Merges(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coins/bitcoin":
			w.Write([]byte(`{"id":"bitcoin","symbol":"btc","name":"Bitcoin","market_data":{"current_price":{"usd":50000}}}`))
		case "/coins/bitcoin/tickers":
			w.Write([]byte(`{"name":"Bitcoin","tickers":[{"base":"BTC","target":"USDT","last":50000}]}`))
		case "/coins/bitcoin/market_chart":
			w.Write([]byte(`{"prices":[[1717243200000,50000]]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	env := newService(srv).CoinOverview(t.Context(), "bitcoin")
	require.True(t, env.Success, "error: %s", env.Error)
	require.Equal(t, "Bitcoin", env.Data.Details.Name)
	require.Len(t, env.Data.Tickers.Tickers, 1)
	require.Len(t, env.Data.Chart.Prices, 1)
	require.InDelta(t, 50000.0, env.Data.Details.MarketData.CurrentPrice["usd"], 1e-9)
}

func TestCategoryDrilldown_UnknownCategory(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coins/categories":
			w.Write([]byte(`[{"id":"meme-token","name":"Meme"}]`))
		case "/coins/markets":
			w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	env := newService(srv).CategoryDrilldown(t.Context(), "no-such-category", 10)
	require.False(t, env.Success)
	require.Contains(t, env.Error, "unknown category")
}

func TestCategoryDrilldown_Merges(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coins/categories":
			w.Write([]byte(`[{"id":"meme-token","name":"Meme","market_cap":6.1e10}]`))
		case "/coins/markets":
			require.Equal(t, "meme-token", r.URL.Query().Get("category"))
			w.Write([]byte(`[{"id":"dogecoin","symbol":"doge","current_price":0.12}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	env := newService(srv).CategoryDrilldown(t.Context(), "meme-token", 10)
	require.True(t, env.Success, "error: %s", env.Error)
	require.Equal(t, "Meme", env.Data.Category.Name)
	require.Equal(t, "DOGE", env.Data.Coins[0].Symbol)
}
