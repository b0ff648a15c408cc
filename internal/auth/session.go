package auth

import (
	"sync"

	"github.com/example/bala-store/internal/domain"
)

// SessionCache holds the authenticated identity for each live session,
// keyed by access token. Tokens are stateless, so this cache is what makes
// logout real: a token whose entry is gone no longer authenticates, valid
// signature or not. Sessions have no expiry of their own; they live until
// explicit logout or process restart.
type SessionCache struct {
	mu       sync.RWMutex
	sessions map[string]domain.UserAccount // token -> sanitized identity
}

func NewSessionCache() *SessionCache {
	return &SessionCache{sessions: make(map[string]domain.UserAccount)}
}

// Put registers a session identity. The stored copy is always sanitized.
func (c *SessionCache) Put(token string, identity domain.UserAccount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[token] = identity.Sanitized()
}

func (c *SessionCache) Get(token string) (domain.UserAccount, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	identity, ok := c.sessions[token]
	return identity, ok
}

func (c *SessionCache) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
}

// UpdateUser refreshes the cached identity in every live session belonging
// to the user, so a credential patch shows up without a re-login.
func (c *SessionCache) UpdateUser(identity domain.UserAccount) {
	sanitized := identity.Sanitized()
	c.mu.Lock()
	defer c.mu.Unlock()
	for token, existing := range c.sessions {
		if existing.ID == identity.ID {
			c.sessions[token] = sanitized
		}
	}
}

// DeleteUser drops every session belonging to a user, used when an
// administrator removes an account.
func (c *SessionCache) DeleteUser(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for token, identity := range c.sessions {
		if identity.ID == userID {
			delete(c.sessions, token)
		}
	}
}
