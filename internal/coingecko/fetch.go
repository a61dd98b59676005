package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// statusError reports a non-2xx upstream response. Only 429 is
// retryable; every other status fails fast.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("upstream status %d", e.code)
	}
	return fmt.Sprintf("upstream status %d: %s", e.code, e.body)
}

// transportError reports a network-level fault. Retryable unless it
// carries a context cancellation.
type transportError struct{ err error }

func (e *transportError) Error() string { return "transport: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests
	}
	var te *transportError
	return errors.As(err, &te)
}

// backoffDelay returns the wait after the attempt-th failed try,
// attempt counted from zero: base, 2*base, 4*base, capped.
func (c *Client) backoffDelay(attempt int) time.Duration {
	if attempt < 0 {
		return c.baseDelay
	}
	if attempt > 20 {
		return maxBackoff
	}
	d := c.baseDelay << uint(attempt)
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

// getJSON performs one logical GET against rawURL, decoding a 2xx body
// into out. Rate-limit (429) and transport faults are retried with
// exponential backoff inside a retry budget of maxRetries attempts in
// total; any other failure surfaces immediately.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	for attempt := 0; ; attempt++ {
		err := c.doOnce(ctx, rawURL, out)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt+1 >= c.maxRetries {
			return fmt.Errorf("retries exhausted after %d attempts: %w", attempt+1, err)
		}
		if werr := c.waitBackoff(ctx, c.backoffDelay(attempt)); werr != nil {
			return werr
		}
	}
}

func (c *Client) waitBackoff(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) doOnce(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return &statusError{code: res.StatusCode, body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// resolve runs the shared adapter path: canonical key, cache consult,
// fetch on miss, store, envelope. Failures never escape as errors.
func resolve[T any](ctx context.Context, c *Client, path string, params url.Values, ttl time.Duration) Envelope[T] {
	key := cacheKey(path, params)
	if v, ok := c.store.Get(key, ttl); ok {
		if data, ok := v.(T); ok {
			return OK(data, true)
		}
	}

	fetch := func() (any, error) {
		var out T
		if err := c.getJSON(ctx, c.requestURL(path, params), &out); err != nil {
			return out, err
		}
		c.store.Put(key, out)
		return out, nil
	}

	var v any
	var err error
	if c.flight != nil {
		v, err, _ = c.flight.Do(key, fetch)
	} else {
		v, err = fetch()
	}
	if err != nil {
		return Fail[T](err)
	}
	return OK(v.(T), false)
}

// requestURL joins the base URL, the endpoint path, the per-call
// parameters and the client-wide parameters (API key).
func (c *Client) requestURL(path string, params url.Values) string {
	q := url.Values{}
	for k, vs := range c.query {
		q[k] = vs
	}
	for k, vs := range params {
		q[k] = vs
	}
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
