package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bloghub/internal/client/models"
)

// feedPage lists every blog, newest first. A failed fetch shows an empty
// feed.
func (a *App) feedPage(ctx context.Context, nav *navigation) (string, error) {
	blogs, err := a.blogs.Feed(ctx)
	if err != nil {
		nav.log.Error(ctx, "error fetching blogs", "error", err)
		blogs = nil
	}
	if ctx.Err() != nil {
		return "", nil
	}

	fmt.Fprintln(a.out, "Latest Blogs")
	if len(blogs) == 0 {
		a.notify(msgEmptyFeed)
		return "", nil
	}
	renderList(a.out, blogs)
	return "", nil
}

func (a *App) searchPage(ctx context.Context, nav *navigation) (string, error) {
	query := strings.TrimSpace(nav.Query.Get("q"))

	var blogs []models.Blog
	if query != "" {
		var err error
		blogs, err = a.blogs.Search(ctx, query)
		if err != nil {
			nav.log.Error(ctx, "error searching blogs", "error", err)
			blogs = nil
		}
		if ctx.Err() != nil {
			return "", nil
		}
	}

	if query == "" {
		fmt.Fprintln(a.out, "Search Results")
		a.notify(msgEnterSearchTerm)
		return "", nil
	}

	fmt.Fprintf(a.out, "Search Results for \"%s\"\n", query)
	if len(blogs) == 0 {
		a.notify(msgNoSearchResults)
		return "", nil
	}
	renderList(a.out, blogs)
	return "", nil
}

// blogPage shows one post. Any failure, not found included, sends the user
// back to the feed.
func (a *App) blogPage(ctx context.Context, nav *navigation) (string, error) {
	id := nav.Params["id"]

	blog, err := a.blogs.Get(ctx, id)
	if err != nil {
		nav.log.Error(ctx, "error fetching blog", "blog_id", id, "error", err)
		return PathFeed, nil
	}
	if ctx.Err() != nil {
		return "", nil
	}

	renderBlog(a.out, *blog)
	return "", nil
}
