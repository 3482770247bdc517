package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/bloghub/internal/client/backend"
	"github.com/dmitrijs2005/bloghub/internal/client/models"
	"github.com/dmitrijs2005/bloghub/internal/logging"
	"github.com/google/uuid"
)

// ErrCoverUnsupported is returned when a cover image is given but no
// object storage is configured.
var ErrCoverUnsupported = errors.New("cover uploads are not configured")

// CoverUploader stores a local image and returns its public URL.
type CoverUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

type BlogService interface {
	Feed(ctx context.Context) ([]models.Blog, error)
	Search(ctx context.Context, query string) ([]models.Blog, error)
	Get(ctx context.Context, id string) (*models.Blog, error)
	Create(ctx context.Context, author *models.User, draft models.BlogDraft, coverPath string) (*models.Blog, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Blog, error)
}

type blogService struct {
	client backend.Client
	covers CoverUploader
	log    logging.Logger
}

// NewBlogService builds a BlogService. covers may be nil, which disables
// cover images.
func NewBlogService(client backend.Client, covers CoverUploader, log logging.Logger) BlogService {
	return &blogService{client: client, covers: covers, log: log}
}

// Feed returns every blog with its author, newest first.
func (s *blogService) Feed(ctx context.Context) ([]models.Blog, error) {
	q := backend.Query{}.Select(blogWithAuthor).Order("created_at", false)

	var blogs []models.Blog
	if err := s.client.Select(ctx, blogsTable, q, &blogs); err != nil {
		return nil, fmt.Errorf("fetch blogs: %w", err)
	}
	return blogs, nil
}

// Search returns the blogs whose title, content or tags contain query,
// ignoring case, newest first. A blank query returns nothing without a
// request.
func (s *blogService) Search(ctx context.Context, query string) ([]models.Blog, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Blog{}, nil
	}

	pattern := "*" + query + "*"
	conds := []string{
		backend.ILike("title", pattern),
		backend.ILike("content", pattern),
		backend.Contains("tags", query),
	}
	if lower := strings.ToLower(query); lower != query {
		conds = append(conds, backend.Contains("tags", lower))
	}

	q := backend.Query{}.
		Select(blogWithAuthor).
		Or(conds...).
		Order("created_at", false)

	var found []models.Blog
	if err := s.client.Select(ctx, blogsTable, q, &found); err != nil {
		return nil, fmt.Errorf("search blogs: %w", err)
	}

	blogs := matching(found, query)
	slices.SortStableFunc(blogs, func(a, b models.Blog) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return blogs, nil
}

func matching(blogs []models.Blog, query string) []models.Blog {
	needle := strings.ToLower(query)
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}

	out := make([]models.Blog, 0, len(blogs))
	for _, b := range blogs {
		if contains(b.Title) || contains(b.Content) || slices.ContainsFunc(b.Tags, contains) {
			out = append(out, b)
		}
	}
	return out
}

// Get fetches one blog with its author. Ids that are not UUIDs never reach
// the backend and are reported as not found.
func (s *blogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("blog %q: %w", id, backend.ErrNotFound)
	}

	q := backend.Query{}.Select(blogWithAuthor).Eq("id", id).Single()

	var b models.Blog
	if err := s.client.Select(ctx, blogsTable, q, &b); err != nil {
		return nil, fmt.Errorf("fetch blog %s: %w", id, err)
	}
	return &b, nil
}

// Create validates the draft, uploads the cover when one is given and
// inserts the post on behalf of author.
func (s *blogService) Create(ctx context.Context, author *models.User, draft models.BlogDraft, coverPath string) (*models.Blog, error) {
	if author == nil {
		return nil, ErrNotLoggedIn
	}

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Content = strings.TrimSpace(draft.Content)
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	draft.AuthorID = author.ID

	if coverPath = strings.TrimSpace(coverPath); coverPath != "" {
		if s.covers == nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, ErrCoverUnsupported)
		}
		url, err := s.covers.Upload(ctx, coverPath)
		if err != nil {
			return nil, fmt.Errorf("upload cover: %w", err)
		}
		draft.CoverImage = url
	}

	var created []models.Blog
	if err := s.client.Insert(ctx, blogsTable, []models.BlogDraft{draft}, &created); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	if len(created) == 0 {
		return nil, errors.New("create blog: backend returned no row")
	}

	s.log.Info(ctx, "blog created", "blog_id", created[0].ID, "tags", len(draft.Tags))
	return &created[0], nil
}

// ListByAuthor returns the author's blogs, newest first, without the join.
func (s *blogService) ListByAuthor(ctx context.Context, authorID string) ([]models.Blog, error) {
	q := backend.Query{}.Eq("author_id", authorID).Order("created_at", false)

	var blogs []models.Blog
	if err := s.client.Select(ctx, blogsTable, q, &blogs); err != nil {
		return nil, fmt.Errorf("fetch blogs of %s: %w", authorID, err)
	}
	return blogs, nil
}
