package coingecko

import "net/url"

// cacheKey builds a canonical cache key from an endpoint name and its
// effective parameters. url.Values.Encode sorts by parameter name, so
// two semantically identical calls produce the same key regardless of
// the order the parameters were assembled in.
func cacheKey(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}
