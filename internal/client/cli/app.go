package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/bloghub/internal/client/backend"
	"github.com/dmitrijs2005/bloghub/internal/client/config"
	"github.com/dmitrijs2005/bloghub/internal/client/media"
	"github.com/dmitrijs2005/bloghub/internal/client/models"
	"github.com/dmitrijs2005/bloghub/internal/client/realtime"
	"github.com/dmitrijs2005/bloghub/internal/client/services"
	"github.com/dmitrijs2005/bloghub/internal/client/session"
	"github.com/dmitrijs2005/bloghub/internal/client/storage"
	"github.com/dmitrijs2005/bloghub/internal/logging"
)

// Watcher streams newly published blogs. *realtime.Watcher implements it.
type Watcher interface {
	Watch(ctx context.Context, accessToken string, onInsert func(models.Blog)) error
}

// accessTokens yields the stored access token. *session.Manager implements it.
type accessTokens interface {
	AccessToken(ctx context.Context) (string, error)
}

type App struct {
	auth     services.AuthService
	blogs    services.BlogService
	profiles services.ProfileService
	watcher  Watcher
	tokens   accessTokens

	// covers enables the cover image prompt of the create page.
	covers bool

	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closers []io.Closer

	user       *models.User
	interrupts chan os.Signal
}

// NewApp opens the local database and wires the backend client, the
// session manager and the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, c.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	key := c.SessionKey
	if key == "" {
		key = session.StorageKey(c.SupabaseURL)
	}
	sessions := session.NewManager(session.NewStore(db), key)

	api, err := backend.NewHTTPClient(c.SupabaseURL, c.AnonKey, &http.Client{Timeout: c.HTTPTimeout}, sessions, log.With("component", "backend"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var covers services.CoverUploader
	if c.StorageEnabled() {
		up, err := media.NewUploader(ctx, media.Options{
			Endpoint:      c.StorageEndpoint(),
			Region:        c.S3Region,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Bucket:        c.CoverBucket,
			PublicBaseURL: c.SupabaseURL,
		})
		if err != nil {
			_ = api.Close()
			_ = db.Close()
			return nil, err
		}
		covers = up
	}

	watcher, err := realtime.NewWatcher(c.SupabaseURL, c.AnonKey, c.RealtimeHeartbeat, log.With("component", "realtime"))
	if err != nil {
		_ = api.Close()
		_ = db.Close()
		return nil, err
	}

	blogs := services.NewBlogService(api, covers, log)

	return &App{
		auth:     services.NewAuthService(api, sessions, log),
		blogs:    blogs,
		profiles: services.NewProfileService(api, blogs),
		watcher:  watcher,
		tokens:   sessions,
		covers:   covers != nil,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  []io.Closer{api, db},
	}, nil
}

// Close releases the backend client and the local database.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Run shows the feed and then serves the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	a.interrupts = sig

	printlnFn("Welcome to BlogHub (type 'help' for commands, Ctrl+C cancels a running page)")

	a.refreshUser(ctx)
	if err := a.Navigate(ctx, PathFeed); err != nil {
		a.log.Error(ctx, "navigation failed", "error", err)
	}

	runREPL(ctx, a, a.status, a.reader)
}

// refreshUser asks the backend who is logged in. Failures leave the app
// anonymous.
func (a *App) refreshUser(ctx context.Context) {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "current user unavailable", "error", err)
	}
	a.user = u
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return "anonymous"
	}
	if a.user.Email != "" {
		return a.user.Email
	}
	return a.user.ID
}
