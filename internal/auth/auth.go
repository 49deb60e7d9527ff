package auth

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// IdleTTL is how long a client's bucket is kept after its last request.
// Idle buckets are swept lazily, at most once per IdleTTL.
const IdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	ips       map[string]*visitor
	mu        sync.Mutex
	r         rate.Limit
	b         int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:       make(map[string]*visitor),
		r:         r,
		b:         b,
		idle:      IdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= i.idle {
		for k, v := range i.ips {
			if now.Sub(v.lastSeen) >= i.idle {
				delete(i.ips, k)
			}
		}
		i.lastSweep = now
	}

	v, exists := i.ips[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Len reports how many client buckets are held.
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

// Rate limiting middleware
func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i.getLimiter(clientIP(r)).Allow() {
			http.Error(w, "Too Many Requests. Try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// KeyGuard admits requests whose X-API-Key matches a bcrypt hash. An empty
// hash disables the check.
type KeyGuard struct {
	hash []byte

	mu   sync.Mutex
	seen []byte
}

func NewKeyGuard(hash string) *KeyGuard {
	return &KeyGuard{hash: []byte(strings.TrimSpace(hash))}
}

func HashKey(key string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(b), err
}

func (g *KeyGuard) Enabled() bool { return len(g.hash) > 0 }

// Check compares key with the stored hash. The last accepted key is
// remembered so steady traffic does not pay for bcrypt on every request.
func (g *KeyGuard) Check(key string) bool {
	if !g.Enabled() {
		return true
	}
	if key == "" {
		return false
	}
	g.mu.Lock()
	seen := g.seen
	g.mu.Unlock()
	if seen != nil && subtle.ConstantTimeCompare(seen, []byte(key)) == 1 {
		return true
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(key)); err != nil {
		return false
	}
	g.mu.Lock()
	g.seen = []byte(key)
	g.mu.Unlock()
	return true
}

func (g *KeyGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Check(r.Header.Get("X-API-Key")) {
			slog.Warn("rejected api key", "path", r.URL.Path, "ip", clientIP(r))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
