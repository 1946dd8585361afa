package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Amansahu83/clothstore-web/internal/kvstore"
)

// Role of an authenticated user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User is the authenticated identity as the backend returns it.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Manager owns the persisted session: the bearer token and the user it
// belongs to. Token and user are written together and removed together, so
// other components never observe a half-session. Everything else treats
// this state as read-only.
type Manager struct {
	store kvstore.Store
	bus   *Broadcaster
}

func NewManager(store kvstore.Store, bus *Broadcaster) *Manager {
	return &Manager{store: store, bus: bus}
}

// Token returns the stored bearer token, or "" when no session exists.
func (m *Manager) Token(ctx context.Context) string {
	v, err := m.store.Get(ctx, kvstore.KeyToken)
	if err != nil {
		return ""
	}
	return v
}

// User returns the stored user. Missing or undecodable state yields nil;
// a corrupt value never propagates past this boundary.
func (m *Manager) User(ctx context.Context) *User {
	raw, err := m.store.Get(ctx, kvstore.KeyUser)
	if err != nil {
		return nil
	}
	var u User
	if errUnmarshal := json.Unmarshal([]byte(raw), &u); errUnmarshal != nil {
		return nil
	}
	return &u
}

// IsAdmin reports whether a user is present and holds the admin role.
func (m *Manager) IsAdmin(ctx context.Context) bool {
	u := m.User(ctx)
	return u != nil && u.Role == RoleAdmin
}

// SetAuth persists the token and user, then broadcasts the auth-changed
// signal. Both writes land before the signal fires; if the user write
// fails the token is rolled back so the no-partial-session invariant holds.
func (m *Manager) SetAuth(ctx context.Context, token string, user User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if errSet := m.store.Set(ctx, kvstore.KeyToken, token); errSet != nil {
		return fmt.Errorf("store token: %w", errSet)
	}
	if errSet := m.store.Set(ctx, kvstore.KeyUser, string(raw)); errSet != nil {
		if errRemove := m.store.Remove(ctx, kvstore.KeyToken); errRemove != nil {
			log.Printf("session: rollback token after failed user write: %v", errRemove)
		}
		return fmt.Errorf("store user: %w", errSet)
	}
	m.bus.Publish()
	return nil
}

// ClearAuth performs a full session reset: token, user, cart and the
// notification watermark are all removed, then the auth-changed signal
// fires. Listeners re-read state and find it gone.
func (m *Manager) ClearAuth(ctx context.Context) error {
	var errs []error
	for _, key := range []string{kvstore.KeyToken, kvstore.KeyUser, kvstore.KeyCart, kvstore.KeyWatermark} {
		if err := m.store.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	m.bus.Publish()
	return errors.Join(errs...)
}
