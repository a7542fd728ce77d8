package token

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"skyci/internal/credentials"
	"skyci/pkg/logging"
)

// refreshMargin is how long before the stored expiry a cached token stops
// being served, to tolerate clock skew between client and API.
const refreshMargin = time.Minute

// Cache wraps the Generator and serves a cached token while it remains
// valid. Refresh is serialized: concurrent callers observing an expired
// token trigger exactly one generation and share its result.
//
// The cached token is owned exclusively by the Cache and never persisted.
type Cache struct {
	cred     credentials.Credential
	validity time.Duration

	// generate and now are swappable for tests.
	generate func(credentials.Credential, time.Duration) (SignedToken, error)
	now      func() time.Time

	mu      sync.RWMutex
	current SignedToken
	group   singleflight.Group
}

// NewCache creates a token cache for the given credential. Tokens are
// requested with the given validity (clamped by the Generator).
func NewCache(cred credentials.Credential, validity time.Duration) *Cache {
	if validity <= 0 || validity > MaxValidity {
		validity = MaxValidity
	}
	return &Cache{
		cred:     cred,
		validity: validity,
		generate: Generator{}.Generate,
		now:      time.Now,
	}
}

// Token returns the cached token when it has remaining lifetime above the
// safety margin, generating a fresh one otherwise. Abandoning the context
// releases the caller without disturbing a refresh shared with others.
func (c *Cache) Token(ctx context.Context) (string, error) {
	if value, ok := c.validToken(); ok {
		return value, nil
	}

	ch := c.group.DoChan("token", func() (interface{}, error) {
		// A racer may have refreshed while this caller queued.
		if value, ok := c.validToken(); ok {
			return value, nil
		}

		signed, err := c.generate(c.cred, c.validity)
		if err != nil {
			return nil, err
		}

		// Store a conservatively shortened expiry (19 of 20 minutes) so a
		// token is never handed out moments before the API rejects it.
		stored := signed
		stored.ExpiresAt = signed.ExpiresAt.Add(-c.validity / 20)

		c.mu.Lock()
		c.current = stored
		c.mu.Unlock()

		logging.Debug("TokenCache", "generated token valid until %s", stored.ExpiresAt.Format(time.RFC3339))
		return stored.Value, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate unconditionally empties the cache so the next Token call
// regenerates. The request pipeline calls it on an authorization-denied
// response.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = SignedToken{}
	c.mu.Unlock()
	logging.Debug("TokenCache", "token invalidated")
}

func (c *Cache) validToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current.Value == "" {
		return "", false
	}
	if c.current.ExpiresAt.Sub(c.now()) <= refreshMargin {
		return "", false
	}
	return c.current.Value, true
}
