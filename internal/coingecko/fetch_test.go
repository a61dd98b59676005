package coingecko

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoffDelay_DoublesAndCaps(t *testing.T) {
	t.Parallel()

	c := &Client{baseDelay: time.Second}

	require.Equal(t, 1*time.Second, c.backoffDelay(0))
	require.Equal(t, 2*time.Second, c.backoffDelay(1))
	require.Equal(t, 4*time.Second, c.backoffDelay(2))
	require.Equal(t, 8*time.Second, c.backoffDelay(3))
	require.Equal(t, maxBackoff, c.backoffDelay(5))
	require.Equal(t, maxBackoff, c.backoffDelay(40))
	require.Equal(t, time.Second, c.backoffDelay(-1))
}

func TestCacheKey_FieldOrderIndependent(t *testing.T) {
	t.Parallel()

	a := url.Values{}
	a.Set("vs_currency", "usd")
	a.Set("per_page", "250")
	a.Set("page", "1")

	b := url.Values{}
	b.Set("page", "1")
	b.Set("per_page", "250")
	b.Set("vs_currency", "usd")

	require.Equal(t, cacheKey("/coins/markets", a), cacheKey("/coins/markets", b))
}

func TestCacheKey_NoParams(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/global", cacheKey("/global", nil))
	require.Equal(t, "/global", cacheKey("/global", url.Values{}))
}

func TestCacheKey_DistinguishesValues(t *testing.T) {
	t.Parallel()

	a := url.Values{"page": {"1"}}
	b := url.Values{"page": {"2"}}
	require.NotEqual(t, cacheKey("/coins/markets", a), cacheKey("/coins/markets", b))
}
