package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bloghub/internal/client/backend"
	"github.com/dmitrijs2005/bloghub/internal/client/models"
	"github.com/dmitrijs2005/bloghub/internal/client/session"
	"github.com/dmitrijs2005/bloghub/internal/logging"
)

// SessionStore persists the current session. *session.Manager implements it.
type SessionStore interface {
	Load(ctx context.Context) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignUp: create an auth identity and its profile row.
//   - Login: exchange credentials for a session and persist it.
//   - Logout: revoke the session remotely and always forget it locally.
//   - CurrentUser: the logged-in user, or nil when anonymous.
//
// All methods must honor context cancellation.
type AuthService interface {
	SignUp(ctx context.Context, email, password, username string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	client   backend.Client
	sessions SessionStore
	log      logging.Logger
	now      func() time.Time
}

func NewAuthService(client backend.Client, sessions SessionStore, log logging.Logger) AuthService {
	return &authService{client: client, sessions: sessions, log: log, now: time.Now}
}

// SignUp creates the identity, persists the session when the backend issued
// one, and inserts the profile row keyed by the new identity id. A failed
// profile insert leaves the identity in place; the orphan is logged.
func (a *authService) SignUp(ctx context.Context, email, password, username string) (*models.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if err := requireFields("email", email, "password", password, "username", username); err != nil {
		return nil, err
	}

	res, err := a.client.SignUp(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	if res.Session != nil {
		if err := a.sessions.Save(ctx, res.Session); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	if res.User == nil || res.User.ID == "" {
		return res.User, nil
	}

	now := a.now().UTC()
	profile := models.NewProfile{
		ID:        res.User.ID,
		Username:  username,
		AvatarURL: "",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.client.Insert(ctx, profilesTable, []models.NewProfile{profile}, nil); err != nil {
		a.log.Warn(ctx, "profile insert failed, identity left without profile", "user_id", res.User.ID, "error", err)
		return nil, fmt.Errorf("create profile: %w", err)
	}

	a.log.Info(ctx, "signed up", "user_id", res.User.ID)
	return res.User, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if err := requireFields("email", email, "password", password); err != nil {
		return nil, err
	}

	s, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if s.User != nil {
		a.log.Info(ctx, "logged in", "user_id", s.User.ID)
	}
	return s.User, nil
}

// Logout revokes the stored token and clears the local session. The local
// session is cleared even when the remote call fails.
func (a *authService) Logout(ctx context.Context) error {
	s, loadErr := a.sessions.Load(ctx)

	var remoteErr error
	if loadErr == nil && s != nil {
		remoteErr = a.client.SignOut(ctx, s.AccessToken)
		if errors.Is(remoteErr, backend.ErrUnauthorized) {
			// the token is already dead, nothing to revoke
			remoteErr = nil
		}
	}

	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if remoteErr != nil {
		return fmt.Errorf("sign out: %w", remoteErr)
	}
	return nil
}

// CurrentUser asks the auth API who owns the stored token. No session and a
// rejected token both mean anonymous: nil user, nil error.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return nil, nil
	}

	u, err := a.client.GetUser(ctx, s.AccessToken)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// requireFields takes name/value pairs and reports the first empty value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, pairs[i])
		}
	}
	return nil
}
