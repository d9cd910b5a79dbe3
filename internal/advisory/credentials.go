package advisory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource yields a bearer credential for the advisory service. A failure
// here is equivalent to the service being unavailable: the caller falls back
// to rule-only assessment without any network attempt.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed credential, typically loaded from the
// environment at startup.
type StaticTokenSource struct {
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token(_ context.Context) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("advisory token is not configured")
	}
	return s.token, nil
}

// CachingTokenSource wraps another source and reuses its credential until
// shortly before the JWT exp claim. Tokens that do not parse as JWTs are
// cached indefinitely.
type CachingTokenSource struct {
	src    TokenSource
	leeway time.Duration
	clock  func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// CachingTokenSourceOption configures a CachingTokenSource.
type CachingTokenSourceOption func(*CachingTokenSource)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) CachingTokenSourceOption {
	return func(c *CachingTokenSource) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLeeway sets how long before expiry the cached token is discarded.
func WithLeeway(leeway time.Duration) CachingTokenSourceOption {
	return func(c *CachingTokenSource) {
		if leeway > 0 {
			c.leeway = leeway
		}
	}
}

func NewCachingTokenSource(src TokenSource, opts ...CachingTokenSourceOption) (*CachingTokenSource, error) {
	if src == nil {
		return nil, fmt.Errorf("token source is required")
	}

	c := &CachingTokenSource{
		src:    src,
		leeway: 30 * time.Second,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *CachingTokenSource) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && (c.expiry.IsZero() || c.clock().Add(c.leeway).Before(c.expiry)) {
		return c.token, nil
	}

	token, err := c.src.Token(ctx)
	if err != nil {
		c.token = ""
		return "", err
	}

	c.token = token
	c.expiry = tokenExpiry(token)
	return token, nil
}

// tokenExpiry extracts the exp claim without verifying the signature; we are
// the client, verification is the server's concern. Returns the zero time
// when the token is not a JWT or carries no expiry.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
