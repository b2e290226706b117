package security

import (
	"net"
	"sync"
	"time"

	"quipvid/logger"

	"golang.org/x/time/rate"
)

// RateLimiter limits how fast a single IP may open connections.
type RateLimiter interface {
	Allow(ip string) bool
	AddWhitelist(ip string)
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiterImpl struct {
	limiters    map[string]*clientLimiter
	whitelist   map[string]bool
	mutex       sync.RWMutex
	maxConnsSec rate.Limit
	burst       int
}

func (rl *rateLimiterImpl) Allow(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if rl.whitelist[ip] {
		return true
	}

	client, exists := rl.limiters[ip]
	if !exists {
		client = &clientLimiter{
			limiter:  rate.NewLimiter(rl.maxConnsSec, rl.burst),
			lastSeen: time.Now(),
		}
		rl.limiters[ip] = client
	} else {
		client.lastSeen = time.Now()
	}

	return client.limiter.Allow()
}

func (rl *rateLimiterImpl) AddWhitelist(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.whitelist[ip] = true
}

// RateLimitConfig configures a RateLimitListener.
type RateLimitConfig struct {
	MaxConnsPerSec int
	Burst          int
}

// RateLimitListener wraps a net.Listener, dropping connections from IPs
// that exceed the per-IP token bucket.
type RateLimitListener struct {
	net.Listener
	limiter   *rateLimiterImpl
	closeChan chan struct{}
	closeOnce sync.Once
}

func NewRateLimitListener(listener net.Listener, config *RateLimitConfig) *RateLimitListener {
	if config == nil {
		config = &RateLimitConfig{
			MaxConnsPerSec: 25,
			Burst:          50,
		}
	}

	limiter := &rateLimiterImpl{
		limiters:    make(map[string]*clientLimiter),
		whitelist:   make(map[string]bool),
		maxConnsSec: rate.Limit(config.MaxConnsPerSec),
		burst:       config.Burst,
	}

	rl := &RateLimitListener{
		Listener:  listener,
		limiter:   limiter,
		closeChan: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimitListener) Accept() (net.Conn, error) {
	for {
		conn, err := rl.Listener.Accept()
		if err != nil {
			return nil, err
		}

		clientIP := getClientIP(conn)
		if clientIP == "" {
			logger.Warning("Cannot determine client IP, dropping connection")
			conn.Close()
			continue
		}

		if !rl.limiter.Allow(clientIP) {
			logger.Warningf("Connection rate limit: rejecting %s", clientIP)
			conn.Close()
			continue
		}

		return conn, nil
	}
}

func (rl *RateLimitListener) AddWhitelist(ip string) {
	rl.limiter.AddWhitelist(ip)
}

func getClientIP(conn net.Conn) string {
	if addr, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return ""
}

func (rl *rateLimiterImpl) cleanupExpiredLimiters() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	threshold := time.Now().Add(-1 * time.Hour)
	for ip, client := range rl.limiters {
		if client.lastSeen.Before(threshold) {
			delete(rl.limiters, ip)
		}
	}
}

func (rl *RateLimitListener) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.limiter.cleanupExpiredLimiters()
		case <-rl.closeChan:
			return
		}
	}
}

func (rl *RateLimitListener) Close() error {
	rl.closeOnce.Do(func() {
		close(rl.closeChan)
	})
	return rl.Listener.Close()
}
