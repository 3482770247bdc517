package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bloghub/internal/client/backend"
	"github.com/dmitrijs2005/bloghub/internal/client/services"
)

func (a *App) profilePage(ctx context.Context, nav *navigation) (string, error) {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		nav.log.Warn(ctx, "current user unavailable", "error", err)
	}
	if ctx.Err() != nil {
		return "", nil
	}
	if user == nil {
		return PathLogin, nil
	}
	a.user = user

	o, err := a.profiles.Overview(ctx, user)
	if ctx.Err() != nil {
		return "", nil
	}
	if err != nil {
		nav.log.Error(ctx, "error fetching profile", "error", err)
		a.notify(msgProfileFailed)
		return PathFeed, nil
	}

	fmt.Fprintln(a.out, o.Profile.Username)
	fmt.Fprintf(a.out, "  Email:  %s\n", o.Email)
	if joined := formatDate(o.Profile.CreatedAt); joined != "" {
		fmt.Fprintf(a.out, "  Joined: %s\n", joined)
	}

	fmt.Fprintln(a.out, "\nMy Blogs")
	if len(o.Blogs) == 0 {
		a.notify(msgNoBlogsYet + " Use 'create' to write your first blog.")
		return "", nil
	}
	renderList(a.out, o.Blogs)
	return "", nil
}

// Rename changes the current user's username.
func (a *App) Rename(ctx context.Context, username string) error {
	if a.user == nil {
		a.notify("Please log in to edit your profile")
		return nil
	}

	p, err := a.profiles.Rename(ctx, a.user.ID, username)
	if err != nil {
		a.log.Warn(ctx, "rename failed", "error", err)
		switch {
		case errors.Is(err, services.ErrValidation):
			a.notify(validationMessage(err))
		case isBackendError(err):
			a.notify(backend.Message(err))
		default:
			a.notify(msgUnexpected)
		}
		return err
	}

	a.notify("Username changed to " + p.Username)
	return nil
}
