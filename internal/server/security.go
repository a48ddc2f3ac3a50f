package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/neo84716/ro-data/internal/logger"
)

// AuthMiddleware requires the API key on mutating requests. Reads stay public
// and an empty key disables the check entirely.
func AuthMiddleware(apiKey string, proxies proxySet, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := proxies.clientIP(r)
			detector.RecordFailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"method", r.Method,
				"path", r.URL.Path,
				"has_key", provided != "",
				"ip", ip)
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector counts requests and failed auth per client IP in
// fixed windows of RateWindow.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	clients     map[string]*clientCounts
	windowStart time.Time
	limit       int
}

type clientCounts struct {
	requests   int
	failedAuth int
}

func NewSuspiciousActivityDetector(limit int) *SuspiciousActivityDetector {
	if limit <= 0 {
		limit = RateLimitPerWindow
	}
	return &SuspiciousActivityDetector{
		clients:     make(map[string]*clientCounts),
		windowStart: time.Now(),
		limit:       limit,
	}
}

// client returns the counters for ip in the current window. Caller holds mu.
func (s *SuspiciousActivityDetector) client(ip string) *clientCounts {
	if time.Since(s.windowStart) > RateWindow {
		clear(s.clients)
		s.windowStart = time.Now()
	}
	c, ok := s.clients[ip]
	if !ok {
		c = &clientCounts{}
		s.clients[ip] = c
	}
	return c
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	c := s.client(ip)
	c.failedAuth++
	n := c.failedAuth
	s.mu.Unlock()

	if n >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
}

// RecordRequest counts a request and returns false once ip is over the window limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	c := s.client(ip)
	c.requests++
	n := c.requests
	s.mu.Unlock()

	if n <= s.limit {
		return true
	}
	if n%RateAlertEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", n)
	}
	return false
}

// RateLimitMiddleware rejects clients that exceed the detector's window limit
func RateLimitMiddleware(proxies proxySet, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(proxies.clientIP(r)) {
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(RateWindow.Seconds())))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// proxySet holds the remote addresses whose X-Forwarded-For header is honored.
type proxySet map[string]struct{}

func newProxySet(addrs []string) proxySet {
	set := make(proxySet, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			set[a] = struct{}{}
		}
	}
	return set
}

// clientIP resolves the caller's address. The rightmost forwarded entry is
// the hop that reached the trusted proxy.
func (p proxySet) clientIP(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if _, trusted := p[remoteIP]; !trusted {
		return remoteIP
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}
