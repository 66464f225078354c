package ratelimiter

import (
	"net/http"
	"strconv"
	"time"
)

// KeyFunc picks the bucket for a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// DenyFunc writes the response for a throttled request. Retry-After is
// already set.
type DenyFunc func(w http.ResponseWriter, r *http.Request, res Result)

// Middleware takes one token per request. Store errors let the request
// through.
func Middleware(l Limiter, key KeyFunc, deny DenyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := l.Allow(r.Context(), k)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))

			if !res.Allowed() {
				if wait := res.RetryAfter(time.Now()); wait > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(wait/time.Second)))
				}
				deny(w, r, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
