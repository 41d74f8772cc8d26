package auth

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
)

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// StoreTokenProvider reads the session token saved at login.
type StoreTokenProvider struct {
	kv  storage.Store
	key string
}

// NewStoreTokenProvider creates a TokenProvider reading key from kv.
func NewStoreTokenProvider(kv storage.Store, key string) *StoreTokenProvider {
	return &StoreTokenProvider{kv: kv, key: key}
}

// AccessToken returns the token, trimming whitespace.
func (p *StoreTokenProvider) AccessToken() (string, error) {
	raw, ok, err := p.kv.Get(p.key)
	if err != nil {
		return "", fmt.Errorf("reading token %s: %w", p.key, err)
	}
	token := strings.TrimSpace(raw)
	if !ok || token == "" {
		return "", fmt.Errorf("no session token, log in first: %w", domain.ErrUnauthorized)
	}
	return token, nil
}
