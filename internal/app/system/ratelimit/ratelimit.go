// internal/app/system/ratelimit/ratelimit.go
// Package ratelimit throttles requests per client with fixed windows.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/medisow/medisowadmin/internal/app/system/jsonio"
	"go.uber.org/zap"
)

// Limiter counts requests per key. It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New allows limit requests per key in each period.
func New(limit int, period time.Duration) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow records a request for key and reports whether it fits the window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.period)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// RetryAfter is the time until key's window closes.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[key]
	if !ok {
		return 0
	}
	if d := w.expiresAt.Sub(l.now()); d > 0 {
		return d
	}
	return 0
}

// Sweep drops expired windows and returns how many were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	n := 0
	for k, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, k)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every period until ctx ends.
func (l *Limiter) RunSweeper(ctx context.Context) {
	t := time.NewTicker(l.period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep()
		}
	}
}

// ClientIP prefers the first X-Forwarded-For entry, then X-Real-IP, then
// the remote address without its port.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

type errorBody struct {
	Error string `json:"error"`
}

// Middleware answers 429 with Retry-After once a client exceeds l.
func Middleware(l *Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if !l.Allow(ip) {
				wait := l.RetryAfter(ip)
				logger.Warn("rate limited", zap.String("ip", ip), zap.String("path", r.URL.Path), zap.Duration("retry_after", wait))
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
				jsonio.Write(w, http.StatusTooManyRequests, errorBody{Error: "too many requests; try again later"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
