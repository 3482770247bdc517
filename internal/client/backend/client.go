package backend

import (
	"context"

	"github.com/dmitrijs2005/bloghub/internal/client/models"
	"github.com/dmitrijs2005/bloghub/internal/client/session"
)

type Client interface {
	Close() error

	SignUp(ctx context.Context, email, password string) (*SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*session.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*models.User, error)

	// Insert writes rows into table; the stored representation is decoded
	// into out when out is not nil.
	Insert(ctx context.Context, table string, rows any, out any) error
	Select(ctx context.Context, table string, q Query, out any) error
	Update(ctx context.Context, table string, q Query, patch any, out any) error
}

// SignUpResult is the outcome of a sign-up. Session is nil when the backend
// requires the email address to be confirmed first.
type SignUpResult struct {
	User    *models.User
	Session *session.Session
}

// TokenSource supplies and stores the session used for table calls.
// *session.Manager implements it.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	Save(ctx context.Context, s *session.Session) error
}
