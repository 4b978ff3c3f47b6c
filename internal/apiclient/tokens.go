package apiclient

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// TokenStore holds the credentials attached to API requests.
type TokenStore interface {
	Tokens() Tokens
	SetTokens(Tokens)
	Clear()
}

// MemoryTokenStore keeps tokens for the lifetime of the process.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens Tokens
}

func NewMemoryTokenStore(initial Tokens) *MemoryTokenStore {
	return &MemoryTokenStore{tokens: initial}
}

func (s *MemoryTokenStore) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *MemoryTokenStore) SetTokens(tokens Tokens) {
	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	s.tokens = Tokens{}
	s.mu.Unlock()
}

// AccessTokenExpiry reads the exp claim of a JWT without verifying its
// signature; the backend remains the authority on validity. Opaque tokens and
// tokens without exp report false.
func AccessTokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
