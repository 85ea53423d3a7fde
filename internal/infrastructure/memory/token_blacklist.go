package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
)

var _ ports.TokenBlacklist = (*TokenBlacklist)(nil)

// TokenBlacklist lista de tokens revocados en proceso, usada cuando no hay Redis configurado.
type TokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewTokenBlacklist crea la lista vacía.
func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{revoked: map[string]time.Time{}, now: time.Now}
}

func (b *TokenBlacklist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	for t, exp := range b.revoked {
		if now.After(exp) {
			delete(b.revoked, t)
		}
	}
	b.revoked[token] = now.Add(ttl)
	return nil
}

func (b *TokenBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.revoked[token]
	return ok && b.now().Before(exp), nil
}
