package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// RateLimit allows each client IP one request per interval, with bursts of
// up to burst requests. Limiters for up to cacheSize clients are kept and
// forgotten after ttl of inactivity.
//
// The client IP is r.RemoteAddr. Forwarding headers are only honoured if
// chimiddleware.RealIP ran first, which the server does only when
// TRUST_PROXY_HEADERS is set.
//
// Rejected requests get 429 with a Retry-After header and the usual JSON
// error body.
func RateLimit(interval time.Duration, burst int, cacheSize int, ttl time.Duration) func(http.Handler) http.Handler {
	limiters := expirable.NewLRU[string, *rate.Limiter](cacheSize, nil, ttl)
	var mu sync.Mutex

	getLimiter := func(client string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		limiter, exists := limiters.Get(client)
		if !exists {
			limiter = rate.NewLimiter(rate.Every(interval), burst)
			limiters.Add(client, limiter)
		}
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := getLimiter(clientIP(r))

			reservation := limiter.Reserve()
			if !reservation.OK() {
				tooManyRequests(w, 0)
				return
			}

			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				tooManyRequests(w, delay)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(math.Floor(limiter.Tokens()))))

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RealIP rewrites RemoteAddr to a bare IP
		return r.RemoteAddr
	}
	return ip
}

func tooManyRequests(w http.ResponseWriter, retryAfter time.Duration) {
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"rate_limited","message":"too many requests, slow down"}`))
}
