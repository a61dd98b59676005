package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"coindash/internal/aggregate"
	"coindash/internal/cache"
	"coindash/internal/coingecko"
	"coindash/internal/config"
	"coindash/internal/httpx"
)

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	hc := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

	opts := []coingecko.Option{
		coingecko.WithBaseURL(cfg.CoinGecko.BaseURL),
		coingecko.WithHTTPClient(httpx.Doer{Client: hc}),
		coingecko.WithRetryPolicy(cfg.CoinGecko.MaxRetries, time.Duration(cfg.CoinGecko.BaseDelayMs)*time.Millisecond),
		coingecko.WithTTLs(
			time.Duration(cfg.CoinGecko.ShortTTLSeconds)*time.Second,
			time.Duration(cfg.CoinGecko.LongTTLSeconds)*time.Second,
		),
	}
	if cfg.CoinGecko.Coalesce {
		opts = append(opts, coingecko.WithRequestCoalescing())
	}
	cg := coingecko.NewClient(cache.New(), cfg.CoinGecko.APIKey, opts...)
	svc := aggregate.New(cg)

	shortTTL := time.Duration(cfg.CoinGecko.ShortTTLSeconds) * time.Second
	longTTL := time.Duration(cfg.CoinGecko.LongTTLSeconds) * time.Second

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(svc, shortTTL, longTTL)

	addr := ":" + cfg.Server.Port
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func newRouter(svc *aggregate.Service, shortTTL, longTTL time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/markets", func(c *gin.Context) {
		count := intQuery(c, "count", 100)
		respond(c, svc.MarketData(c.Request.Context(), count), shortTTL)
	})

	api.GET("/coins/:id", func(c *gin.Context) {
		respond(c, svc.CoinOverview(c.Request.Context(), c.Param("id")), longTTL)
	})

	api.GET("/overview", func(c *gin.Context) {
		respond(c, svc.MarketOverview(c.Request.Context()), shortTTL)
	})

	api.GET("/gainers-losers", func(c *gin.Context) {
		n := intQuery(c, "n", 10)
		respond(c, svc.GainersLosers(c.Request.Context(), n), shortTTL)
	})

	api.GET("/categories/:id", func(c *gin.Context) {
		count := intQuery(c, "count", 50)
		respond(c, svc.CategoryDrilldown(c.Request.Context(), c.Param("id"), count), longTTL)
	})

	api.POST("/portfolio", func(c *gin.Context) {
		var body struct {
			Holdings []aggregate.Holding `json:"holdings"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body: " + err.Error()})
			return
		}
		respond(c, svc.Portfolio(c.Request.Context(), body.Holdings), shortTTL)
	})

	api.GET("/roi", func(c *gin.Context) {
		respond(c, svc.ROI(c.Request.Context(), c.Query("coin"), c.Query("from"), c.Query("to")), longTTL)
	})

	return r
}

// respond re-wraps an envelope with transport status and cache headers,
// preserving the envelope fields verbatim.
func respond[T any](c *gin.Context, env coingecko.Envelope[T], ttl time.Duration) {
	if !env.Success {
		c.JSON(http.StatusInternalServerError, env)
		return
	}
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(ttl.Seconds())))
	c.JSON(http.StatusOK, env)
}

func intQuery(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if x, err := strconv.Atoi(v); err == nil && x > 0 {
			return x
		}
	}
	return def
}
