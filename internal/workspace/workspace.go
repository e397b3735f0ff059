// Package workspace keeps each signed-in session's screens alive between
// requests. A workspace is keyed by the session token and dropped when the
// session ends, when it sits idle past its TTL, or when it is the stalest
// one and the manager is full.
package workspace

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-console/internal/screen"
)

// Factory builds the screens for a new session.
type Factory func(token string) *screen.Set

type Config struct {
	// IdleTTL is how long a workspace survives without a request.
	IdleTTL time.Duration
	// Max bounds the number of live workspaces; zero means unbounded.
	Max int
	// CleanupInterval is how often expired workspaces are swept. Zero
	// derives it from IdleTTL.
	CleanupInterval time.Duration
}

type Manager struct {
	mu      sync.Mutex
	cache   *cache.Cache
	max     int
	factory Factory
	active  prometheus.Gauge
}

// New returns a Manager for cfg. active may be nil.
func New(cfg Config, factory Factory, active prometheus.Gauge) *Manager {
	m := &Manager{
		cache:   cache.New(cfg.IdleTTL, cfg.cleanupInterval()),
		max:     cfg.Max,
		factory: factory,
		active:  active,
	}
	m.cache.OnEvicted(func(token string, v any) {
		v.(*screen.Set).Close()
		if m.active != nil {
			m.active.Dec()
		}
		log.Debug().Msg("workspace closed")
	})
	return m
}

func (c Config) cleanupInterval() time.Duration {
	switch {
	case c.CleanupInterval > 0:
		return c.CleanupInterval
	case c.IdleTTL <= 0 || c.IdleTTL > 10*time.Minute:
		return 10 * time.Minute
	default:
		return c.IdleTTL
	}
}

// Get returns the token's workspace, creating it on first use, and pushes
// its expiry back.
func (m *Manager) Get(token string) *screen.Set {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.cache.Get(token); ok {
		set := v.(*screen.Set)
		m.cache.SetDefault(token, set)
		return set
	}
	// An expired entry may still be held until the janitor runs; Delete
	// evicts it so it is closed and uncounted before being replaced.
	m.cache.Delete(token)
	m.makeRoom()

	set := m.factory(token)
	m.cache.SetDefault(token, set)
	if m.active != nil {
		m.active.Inc()
	}
	return set
}

// makeRoom evicts the workspace closest to expiry while the manager is
// full.
func (m *Manager) makeRoom() {
	if m.max <= 0 || m.cache.ItemCount() < m.max {
		return
	}
	m.cache.DeleteExpired()
	for m.cache.ItemCount() >= m.max {
		var (
			stalest string
			oldest  int64
			found   bool
		)
		for token, item := range m.cache.Items() {
			if !found || item.Expiration < oldest {
				stalest, oldest, found = token, item.Expiration, true
			}
		}
		if !found {
			return
		}
		log.Info().Msg("workspace limit reached, evicting the stalest")
		m.cache.Delete(stalest)
	}
}

// Drop closes and forgets the token's workspace, if any.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Delete(token)
}

func (m *Manager) Len() int {
	return m.cache.ItemCount()
}
