package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bloghub/internal/client/models"
	"github.com/dmitrijs2005/bloghub/internal/client/services"
)

// createPage collects a new post and publishes it for the current user.
// Anonymous users are sent to the login page.
func (a *App) createPage(ctx context.Context, nav *navigation) (string, error) {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		nav.log.Warn(ctx, "current user unavailable", "error", err)
	}
	if ctx.Err() != nil {
		return "", nil
	}
	if user == nil {
		a.notify(msgLoginRequired)
		return PathLogin, nil
	}
	a.user = user

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return "", err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return "", err
	}
	tags, err := getSimpleText(a.reader, "Tags (comma-separated)", a.out)
	if err != nil {
		return "", err
	}

	var cover string
	if a.covers {
		cover, err = getSimpleText(a.reader, "Cover image file (optional)", a.out)
		if err != nil {
			return "", err
		}
	}

	blog, err := a.blogs.Create(ctx, user, models.NewBlogDraft(title, content, tags), cover)
	if ctx.Err() != nil {
		return "", nil
	}
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			a.notify(validationMessage(err))
		case errors.Is(err, services.ErrNotLoggedIn):
			a.notify(msgLoginRequired)
			return PathLogin, nil
		default:
			nav.log.Error(ctx, "error creating blog", "error", err)
			a.notify(msgCreateFailed)
		}
		return "", nil
	}

	nav.log.Info(ctx, "blog created", "blog_id", blog.ID)
	a.notify(msgBlogCreated)
	return PathFeed, nil
}
