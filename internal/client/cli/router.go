package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/bloghub/internal/logging"
	"github.com/oklog/ulid/v2"
)

const (
	PathFeed    = "/"
	PathLogin   = "/login"
	PathSignUp  = "/signup"
	PathCreate  = "/create"
	PathProfile = "/profile"
	PathBlog    = "/blog/:id"
	PathSearch  = "/search"

	// maxRedirects bounds the redirect chain of one navigation.
	maxRedirects = 5
)

var ErrTooManyRedirects = errors.New("too many redirects")

// Route is a parsed location: the pattern it matched, its path parameters
// and its query.
type Route struct {
	Pattern string
	Path    string
	Params  map[string]string
	Query   url.Values
}

// navigation is what a page gets to work with.
type navigation struct {
	Route
	ID  string
	log logging.Logger
}

// page renders one route and returns where to go next ("" to stay).
// Errors are reserved for failures the page could not turn into a notice.
type page func(ctx context.Context, nav *navigation) (string, error)

var patterns = []string{PathFeed, PathLogin, PathSignUp, PathCreate, PathProfile, PathBlog, PathSearch}

// ParseRoute matches raw against the known patterns.
func ParseRoute(raw string) (Route, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.IsAbs() || u.Host != "" {
		return Route{}, false
	}

	path := u.Path
	if path == "" {
		path = PathFeed
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	for _, pattern := range patterns {
		if params, ok := match(pattern, path); ok {
			return Route{Pattern: pattern, Path: path, Params: params, Query: u.Query()}, true
		}
	}
	return Route{}, false
}

func match(pattern, path string) (map[string]string, bool) {
	want := strings.Split(pattern, "/")
	got := strings.Split(path, "/")
	if len(want) != len(got) {
		return nil, false
	}

	params := map[string]string{}
	for i, seg := range want {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if got[i] == "" {
				return nil, false
			}
			params[name] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

// BlogPath is the location of one blog post.
func BlogPath(id string) string {
	return "/blog/" + url.PathEscape(id)
}

// SearchPath is the location of the results for q.
func SearchPath(q string) string {
	return PathSearch + "?" + url.Values{"q": {q}}.Encode()
}

func (a *App) pages() map[string]page {
	return map[string]page{
		PathFeed:    a.feedPage,
		PathLogin:   a.loginPage,
		PathSignUp:  a.signUpPage,
		PathCreate:  a.createPage,
		PathProfile: a.profilePage,
		PathBlog:    a.blogPage,
		PathSearch:  a.searchPage,
	}
}

// Navigate renders path and follows the redirects the pages return.
func (a *App) Navigate(ctx context.Context, path string) error {
	return a.navigate(ctx, path, a.pages())
}

func (a *App) navigate(ctx context.Context, path string, pages map[string]page) error {
	for hop := 0; hop <= maxRedirects; hop++ {
		route, ok := ParseRoute(path)
		if !ok {
			a.notify("Page not found: " + path)
			return nil
		}

		p, ok := pages[route.Pattern]
		if !ok {
			a.notify("Page not found: " + path)
			return nil
		}

		nav := &navigation{Route: route, ID: ulid.Make().String()}
		nav.log = a.log.With("nav_id", nav.ID, "route", route.Pattern)

		next, err := a.render(ctx, p, nav)
		if err != nil {
			nav.log.Error(ctx, "page failed", "error", err)
			a.notify(msgUnexpected)
			return nil
		}
		if next == "" {
			return nil
		}

		nav.log.Debug(ctx, "redirect", "to", next)
		path = next
	}

	a.log.Warn(ctx, "redirect loop", "path", path)
	return ErrTooManyRedirects
}

// render runs p under a context of its own which Ctrl+C cancels.
func (a *App) render(parent context.Context, p page, nav *navigation) (string, error) {
	ctx, cancel := a.navContext(parent)
	defer cancel()

	next, err := p(ctx, nav)
	if ctx.Err() != nil && parent.Err() == nil {
		nav.log.Info(ctx, "navigation cancelled")
		a.notify("Cancelled.")
		return "", nil
	}
	return next, err
}

func (a *App) navContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	if a.interrupts == nil {
		return ctx, cancel
	}

	// drop an interrupt that arrived while no page was running
	select {
	case <-a.interrupts:
	default:
	}

	go func() {
		select {
		case <-a.interrupts:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// notify prints a one-line notice, the terminal stand-in for a toast.
func (a *App) notify(msg string) {
	fmt.Fprintln(a.out, msg)
}
