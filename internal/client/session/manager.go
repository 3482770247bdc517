package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bloghub/internal/client/models"
)

// Manager is the session context passed to the components that need the
// current session.
type Manager struct {
	store *Store
	key   string
}

func NewManager(store *Store, key string) *Manager {
	return &Manager{store: store, key: key}
}

// Load returns the stored session, or nil when nobody is logged in.
func (m *Manager) Load(ctx context.Context) (*Session, error) {
	record, err := m.store.Get(ctx, m.key)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	s, err := fromRecord(record)
	if err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.AccessToken == "" {
		return nil, nil
	}

	if s.User == nil {
		if claims, err := ParseClaims(s.AccessToken); err == nil {
			s.User = &models.User{ID: claims.Subject, Email: claims.Email}
		}
	}

	return s, nil
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s == nil {
		return m.store.Set(ctx, m.key, nil)
	}
	record, err := s.toRecord()
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return m.store.Set(ctx, m.key, record)
}

func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Remove(ctx, m.key)
}

// AccessToken returns the stored access token, or "" when logged out.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	s, err := m.Load(ctx)
	if err != nil || s == nil {
		return "", err
	}
	return s.AccessToken, nil
}

// RefreshToken returns the stored refresh token, or "" when there is none.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	s, err := m.Load(ctx)
	if err != nil || s == nil {
		return "", err
	}
	return s.RefreshToken, nil
}
