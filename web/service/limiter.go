package service

import (
	"sync"
	"time"
)

const (
	maxLoginAttempts = 5
	loginBlockTime   = 15 * time.Minute
)

type loginAttempt struct {
	count    int
	lastSeen time.Time
}

// LoginLimiter blocks an address after repeated failed logins.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*loginAttempt
}

var (
	loginLimiter     *LoginLimiter
	loginLimiterOnce sync.Once
)

func GetLoginLimiter() *LoginLimiter {
	loginLimiterOnce.Do(func() {
		loginLimiter = &LoginLimiter{
			attempts: make(map[string]*loginAttempt),
		}
		go loginLimiter.cleanupLoop()
	})
	return loginLimiter
}

// IsBlocked reports whether addr has exhausted its attempts within the
// block window.
func (l *LoginLimiter) IsBlocked(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	attempt, ok := l.attempts[addr]
	if !ok {
		return false
	}
	if time.Since(attempt.lastSeen) > loginBlockTime {
		delete(l.attempts, addr)
		return false
	}
	return attempt.count >= maxLoginAttempts
}

func (l *LoginLimiter) RecordFailure(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	attempt, ok := l.attempts[addr]
	if !ok {
		attempt = &loginAttempt{}
		l.attempts[addr] = attempt
	}
	attempt.count++
	attempt.lastSeen = time.Now()
}

func (l *LoginLimiter) RecordSuccess(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, addr)
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(loginBlockTime)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		for addr, attempt := range l.attempts {
			if time.Since(attempt.lastSeen) > loginBlockTime {
				delete(l.attempts, addr)
			}
		}
		l.mu.Unlock()
	}
}
