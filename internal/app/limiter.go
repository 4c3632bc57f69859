package app

import (
	"sync"
	"time"

	"github.com/avezina/signalhub/internal/domain"
)

// JoinLimiter bounds how often a single connection may join rooms,
// sliding-window over the configured interval. Joins over the limit
// are dropped, not queued.
type JoinLimiter struct {
	mu       sync.Mutex
	history  map[domain.ConnectionID][]time.Time
	limit    int
	interval time.Duration
}

func NewJoinLimiter(limit int, interval time.Duration) *JoinLimiter {
	return &JoinLimiter{
		history:  make(map[domain.ConnectionID][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (l *JoinLimiter) Allow(id domain.ConnectionID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.interval)

	attempts := l.history[id]
	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.history[id] = fresh
		return false
	}

	fresh = append(fresh, now)
	l.history[id] = fresh
	return true
}

// Forget drops a connection's history; called on disconnect so the map
// does not grow with dead ids.
func (l *JoinLimiter) Forget(id domain.ConnectionID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.history, id)
}
