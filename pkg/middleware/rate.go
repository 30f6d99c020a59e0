// Package middleware provides the HTTP middleware of the storefront
// server: access logging, panic recovery, CORS, per-IP rate limiting and
// bearer-token authentication.
package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/shashiranjanraj/storefront/pkg/response"
)

// visitor is one client IP's token bucket.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter allows each client IP max requests per window, refilled
// continuously, with bursts of up to max.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
	done     chan struct{}
	once     sync.Once
}

// NewLimiter starts a limiter and its eviction loop. max <= 0 disables
// limiting. Call Stop when done.
func NewLimiter(max int, window time.Duration) *Limiter {
	l := &Limiter{
		max:      max,
		window:   window,
		now:      time.Now,
		visitors: map[string]*visitor{},
		done:     make(chan struct{}),
	}
	if max > 0 {
		go l.evictLoop()
	}
	return l
}

func (l *Limiter) evictLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.evict()
		}
	}
}

// evict drops visitors idle for a whole window; their buckets are full again.
func (l *Limiter) evict() {
	cutoff := l.now().Add(-l.window)
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
		}
	}
}

// Stop ends the eviction loop.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.done) })
}

func (l *Limiter) limiterFor(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		every := rate.Every(l.window / time.Duration(l.max))
		v = &visitor{limiter: rate.NewLimiter(every, l.max)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Allow records one request from ip and reports whether it is within the
// budget, plus how long until the next request would be.
func (l *Limiter) Allow(ip string) (bool, time.Duration) {
	if l.max <= 0 {
		return true, 0
	}
	now := l.now()

	r := l.limiterFor(ip, now).ReserveN(now, 1)
	if !r.OK() {
		return false, l.window
	}
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// Middleware answers 429 with Retry-After once a client is over budget.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := l.Allow(clientIP(r))
		if !ok {
			secs := int(wait.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the first X-Forwarded-For hop, X-Real-Ip, or the peer address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if real := r.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
