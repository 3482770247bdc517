package cli

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/bloghub/internal/client/backend"
	"github.com/dmitrijs2005/bloghub/internal/client/services"
)

// loginPage prompts for credentials and logs in. An empty email leaves the
// page without trying.
func (a *App) loginPage(ctx context.Context, nav *navigation) (string, error) {
	email, err := getSimpleText(a.reader, "Email (empty to cancel)", a.out)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", nil
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", err
	}

	u, err := a.auth.Login(ctx, email, string(password))
	if ctx.Err() != nil {
		return "", nil
	}
	if err != nil {
		nav.log.Warn(ctx, "login failed", "error", err)
		switch {
		case errors.Is(err, services.ErrValidation):
			a.notify(validationMessage(err))
		case errors.Is(err, backend.ErrInvalidCredentials):
			a.notify(msgInvalidCredentials)
		case isBackendError(err):
			a.notify(backend.Message(err))
		default:
			a.notify(msgUnexpected)
		}
		return "", nil
	}

	a.user = u
	a.notify(msgLoggedIn)
	return PathFeed, nil
}

// signUpPage creates the account and its profile, then sends the user to
// the login page.
func (a *App) signUpPage(ctx context.Context, nav *navigation) (string, error) {
	email, err := getSimpleText(a.reader, "Email (empty to cancel)", a.out)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", nil
	}

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return "", err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", err
	}

	_, err = a.auth.SignUp(ctx, email, string(password), username)
	if ctx.Err() != nil {
		return "", nil
	}
	if err != nil {
		nav.log.Warn(ctx, "sign up failed", "error", err)
		if errors.Is(err, services.ErrValidation) {
			a.notify(msgSignUpFailed + validationMessage(err))
			return "", nil
		}
		a.notify(msgSignUpFailed + backend.Message(err))
		return "", nil
	}

	a.notify(msgSignedUp)
	return PathLogin, nil
}

// Logout signs out and opens the login page. The local session is gone
// even when the backend call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.user = nil
	if err != nil {
		a.log.Error(ctx, "error signing out", "error", err)
		a.notify(msgSignOutFailed)
	} else {
		a.notify(msgLoggedOut)
	}
	return a.Navigate(ctx, PathLogin)
}

func isBackendError(err error) bool {
	var be *backend.Error
	return errors.As(err, &be)
}

// validationMessage turns "validation failed: title is required" into
// "Title is required".
func validationMessage(err error) string {
	msg, _ := strings.CutPrefix(err.Error(), services.ErrValidation.Error()+": ")
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}
