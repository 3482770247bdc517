package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bloghub/internal/client/models"
)

// Watch prints a line for every blog published while it runs. Ctrl+C
// stops it.
func (a *App) Watch(ctx context.Context) error {
	if a.watcher == nil {
		a.notify("Realtime notifications are not available.")
		return nil
	}

	wctx, cancel := a.navContext(ctx)
	defer cancel()

	var token string
	if a.tokens != nil {
		t, err := a.tokens.AccessToken(wctx)
		if err != nil {
			a.log.Warn(ctx, "watching anonymously", "error", err)
		}
		token = t
	}

	a.notify("Watching for new blogs, press Ctrl+C to stop.")
	err := a.watcher.Watch(wctx, token, func(b models.Blog) {
		fmt.Fprintf(a.out, "New blog: %s (view %s)\n", b.Title, b.ID)
	})
	if err != nil {
		a.log.Error(ctx, "realtime watch failed", "error", err)
		a.notify("Realtime connection lost: " + err.Error())
		return err
	}

	a.notify("Stopped watching.")
	return nil
}
