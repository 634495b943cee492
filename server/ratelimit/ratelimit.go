package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const (
	DEFAULT_LIMIT  = 5
	DEFAULT_WINDOW = 10 * time.Minute
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window limiter keyed by client address. A limit <= 0
// disables it.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows *ttlcache.Cache[string, *window]
	now     func() time.Time
}

func NewLimiter(limit int, windowDuration time.Duration) *Limiter {
	if windowDuration <= 0 {
		windowDuration = DEFAULT_WINDOW
	}

	return &Limiter{
		limit:  limit,
		window: windowDuration,
		windows: ttlcache.New(
			ttlcache.WithTTL[string, *window](windowDuration),
			ttlcache.WithDisableTouchOnHit[string, *window](),
		),
		now: time.Now,
	}
}

// Start runs expired window eviction until Stop is called.
func (l *Limiter) Start() {
	go l.windows.Start()
}

func (l *Limiter) Stop() {
	l.windows.Stop()
}

// Allow records a hit for 'key'. When the limit is reached it returns false
// along with the time left until the window resets.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	if l.limit <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	var current *window
	if item := l.windows.Get(key); item != nil {
		current = item.Value()
	}

	if current == nil || !now.Before(current.resetAt) {
		current = &window{resetAt: now.Add(l.window)}
		l.windows.Set(key, current, l.window)
	}

	if current.count >= l.limit {
		return false, current.resetAt.Sub(now)
	}

	current.count++
	return true, 0
}

// RetryAfter is the time left until the window of 'key' resets, without recording a hit.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	item := l.windows.Get(key)
	if item == nil {
		return 0
	}

	left := item.Value().resetAt.Sub(l.now())
	if left < 0 {
		return 0
	}

	return left
}

// TrustedProxies lists the networks allowed to set X-Forwarded-For.
type TrustedProxies []*net.IPNet

// ParseTrustedProxies parses CIDRs such as "10.0.0.0/8". A bare address is
// taken as a single host.
func ParseTrustedProxies(cidrs []string) (TrustedProxies, error) {
	proxies := TrustedProxies{}
	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if !strings.Contains(cidr, "/") {
			if ip := net.ParseIP(cidr); ip != nil && ip.To4() != nil {
				cidr += "/32"
			} else {
				cidr += "/128"
			}
		}

		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("ParseTrustedProxies: %v", err)
		}
		proxies = append(proxies, network)
	}

	return proxies, nil
}

func (tp TrustedProxies) contains(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}

	for _, network := range tp {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the host of RemoteAddr. When that host is a trusted
// proxy, X-Forwarded-For is walked from the right and the first hop that is
// not itself a trusted proxy is returned.
func (tp TrustedProxies) ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if !tp.contains(host) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !tp.contains(hop) {
			return hop
		}
		host = hop
	}

	return host
}
