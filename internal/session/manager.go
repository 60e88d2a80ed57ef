package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session's store survives, matching the
// session cookie lifetime.
const DefaultTTL = 24 * time.Hour

type entry struct {
	store     *Store
	expiresAt time.Time
}

// Manager maps opaque session IDs to their stores, creating on first use and
// evicting expired sessions on a periodic sweep.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	secret  []byte
	done    chan struct{}
}

// NewManager creates a session manager. secret signs session cookie values;
// ttl <= 0 uses DefaultTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		entries: make(map[string]*entry),
		ttl:     ttl,
		secret:  []byte(secret),
		done:    make(chan struct{}),
	}
	go m.sweep()
	return m
}

// NewSessionID issues a fresh session identifier.
func (m *Manager) NewSessionID() string {
	return uuid.New().String()
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Get returns the store for a session, creating it on first use and pushing
// out its expiry.
func (m *Manager) Get(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[sessionID]
	if !ok {
		e = &entry{store: NewStore()}
		m.entries[sessionID] = e
	}
	e.expiresAt = time.Now().Add(m.ttl)
	return e.store
}

// Sign produces the cookie value for a session ID: the ID plus an
// HMAC-SHA256 tag over it.
func (m *Manager) Sign(sessionID string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(sessionID))
	return sessionID + "." + hex.EncodeToString(mac.Sum(nil))
}

// Verify extracts the session ID from a signed cookie value. It returns
// false for malformed or tampered values.
func (m *Manager) Verify(value string) (string, bool) {
	id, _, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	if hmac.Equal([]byte(m.Sign(id)), []byte(value)) {
		return id, true
	}
	return "", false
}

// Close stops the eviction sweep.
func (m *Manager) Close() {
	close(m.done)
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for id, e := range m.entries {
				if now.After(e.expiresAt) {
					delete(m.entries, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
