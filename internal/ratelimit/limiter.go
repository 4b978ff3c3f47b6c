// Package ratelimit throttles schedule saves and backend generation per client.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	// Schedule save limits
	SaveCooldown   time.Duration // Minimum time between saves of one season by one client (default: 10s)
	SaveMaxPerHour int           // Max saves per client per hour (default: 30)

	// Remote generation limits
	GenerateMaxPerHour int // Max backend generate calls per client per hour (default: 60)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		SaveCooldown:       10 * time.Second,
		SaveMaxPerHour:     30,
		GenerateMaxPerHour: 60,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

// entry tracks request counts and timestamps.
type entry struct {
	count   int
	firstAt time.Time // First request in window
	lastAt  time.Time // Most recent request (for cooldown)
}

// Limiter throttles schedule saves and backend generation per client.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.RWMutex
	// Keyed by hash of client address (and season for cooldowns)
	saveBySeason  map[string]*entry
	saveByClient  map[string]*entry
	generateByKey map[string]*entry

	// Cleanup goroutine management
	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		saveBySeason:  make(map[string]*entry),
		saveByClient:  make(map[string]*entry),
		generateByKey: make(map[string]*entry),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// CheckSave checks if a schedule save is allowed.
// Does NOT record the attempt - call RecordSave after the backend accepted it.
func (l *Limiter) CheckSave(client string, seasonID int64) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	seasonKey := l.hashKey("save:season:", seasonScope(client, seasonID))
	clientKey := l.hashKey("save:client:", client)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if e := l.saveBySeason[seasonKey]; e != nil {
		elapsed := now.Sub(e.lastAt)
		if elapsed < l.config.SaveCooldown {
			return LimitResult{
				Allowed:    false,
				RetryAfter: l.config.SaveCooldown - elapsed,
				Reason:     "cooldown",
			}
		}
	}

	if result := hourlyLimit(l.saveByClient[clientKey], now, l.config.SaveMaxPerHour); !result.Allowed {
		return result
	}

	return LimitResult{Allowed: true}
}

// RecordSave records a successful save.
func (l *Limiter) RecordSave(client string, seasonID int64) {
	now := l.clock.Now()
	seasonKey := l.hashKey("save:season:", seasonScope(client, seasonID))
	clientKey := l.hashKey("save:client:", client)

	l.mu.Lock()
	defer l.mu.Unlock()

	recordWindow(l.saveBySeason, seasonKey, now)
	recordWindow(l.saveByClient, clientKey, now)
}

// CheckGenerate checks if a backend generate call is allowed.
func (l *Limiter) CheckGenerate(client string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	key := l.hashKey("generate:client:", client)

	l.mu.RLock()
	defer l.mu.RUnlock()

	return hourlyLimit(l.generateByKey[key], now, l.config.GenerateMaxPerHour)
}

// RecordGenerate records a backend generate call.
func (l *Limiter) RecordGenerate(client string) {
	now := l.clock.Now()
	key := l.hashKey("generate:client:", client)

	l.mu.Lock()
	defer l.mu.Unlock()

	recordWindow(l.generateByKey, key, now)
}

func hourlyLimit(e *entry, now time.Time, max int) LimitResult {
	if e != nil && now.Sub(e.firstAt) < time.Hour && e.count >= max {
		return LimitResult{
			Allowed:    false,
			RetryAfter: time.Hour - now.Sub(e.firstAt),
			Reason:     "hourly_limit",
		}
	}
	return LimitResult{Allowed: true}
}

func recordWindow(entries map[string]*entry, key string, now time.Time) {
	e := entries[key]
	if e == nil || now.Sub(e.firstAt) >= time.Hour {
		entries[key] = &entry{count: 1, firstAt: now, lastAt: now}
		return
	}
	e.count++
	e.lastAt = now
}

func seasonScope(client string, seasonID int64) string {
	return client + "|" + strconv.FormatInt(seasonID, 10)
}

func (l *Limiter) hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(hash[:8])
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	// Every window is at most an hour; cooldowns are shorter.
	for _, entries := range []map[string]*entry{l.saveBySeason, l.saveByClient, l.generateByKey} {
		for k, e := range entries {
			if now.Sub(e.lastAt) > time.Hour {
				delete(entries, k)
			}
		}
	}
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost IP from X-Forwarded-For (added by your proxy).
// When trustProxy is false, ignores X-Forwarded-For entirely (prevents spoofing).
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// Use RIGHTMOST IP - this is the one your proxy added, not user-supplied
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				// Skip private/internal IPs to find the real client
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			// All IPs are private, use the last one
			return strings.TrimSpace(parts[len(parts)-1])
		}

		// Check X-Real-IP (set by nginx)
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	// Fall back to RemoteAddr (direct connection or untrusted proxy)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port (e.g., Unix socket or malformed)
		// Try to parse as IP directly, otherwise return as-is
		if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
			return r.RemoteAddr
		}
		// Last resort: strip anything after last colon that looks like a port
		if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
			candidate := r.RemoteAddr[:idx]
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
		return r.RemoteAddr
	}
	return ip
}

// privateNetworks holds parsed CIDR ranges for private/reserved IPs.
// Parsed once at package init for efficiency.
var privateNetworks []*net.IPNet

func init() {
	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10", // Link-local
	}
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

// isPrivateIP checks if an IP is in a private/reserved range.
// Handles both IPv4 and IPv4-mapped IPv6 addresses (e.g., ::ffff:192.168.1.1).
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}

	// Convert IPv4-mapped IPv6 to IPv4 for consistent matching
	// e.g., ::ffff:192.168.1.1 -> 192.168.1.1
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}

	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// LogRateLimitExceeded logs a rate limit event.
func LogRateLimitExceeded(ctx context.Context, limitType, client, reason string, retryAfter time.Duration) {
	log.Ctx(ctx).Warn().
		Str("event", "rate_limit_exceeded").
		Str("type", limitType).
		Str("ip", client).
		Str("reason", reason).
		Dur("retry_after", retryAfter).
		Msg("Schedule rate limit exceeded")
}
