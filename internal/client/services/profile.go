package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bloghub/internal/client/backend"
	"github.com/dmitrijs2005/bloghub/internal/client/models"
)

// Overview is everything the profile page shows.
type Overview struct {
	Profile models.Profile
	Email   string
	Blogs   []models.Blog
}

type ProfileService interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	Overview(ctx context.Context, user *models.User) (*Overview, error)
	Rename(ctx context.Context, id, username string) (*models.Profile, error)
}

type profileService struct {
	client backend.Client
	blogs  BlogService
	now    func() time.Time
}

func NewProfileService(client backend.Client, blogs BlogService) ProfileService {
	return &profileService{client: client, blogs: blogs, now: time.Now}
}

func (s *profileService) Get(ctx context.Context, id string) (*models.Profile, error) {
	q := backend.Query{}.Eq("id", id).Single()

	var p models.Profile
	if err := s.client.Select(ctx, profilesTable, q, &p); err != nil {
		return nil, fmt.Errorf("fetch profile %s: %w", id, err)
	}
	return &p, nil
}

// Overview loads the user's profile and then their blogs.
func (s *profileService) Overview(ctx context.Context, user *models.User) (*Overview, error) {
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	p, err := s.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	blogs, err := s.blogs.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Overview{Profile: *p, Email: user.Email, Blogs: blogs}, nil
}

// Rename changes the username shown on the user's posts.
func (s *profileService) Rename(ctx context.Context, id, username string) (*models.Profile, error) {
	username = strings.TrimSpace(username)
	if err := requireFields("username", username); err != nil {
		return nil, err
	}

	patch := map[string]any{"username": username, "updated_at": s.now().UTC()}
	q := backend.Query{}.Eq("id", id).Single()

	var p models.Profile
	if err := s.client.Update(ctx, profilesTable, q, patch, &p); err != nil {
		return nil, fmt.Errorf("rename profile %s: %w", id, err)
	}
	return &p, nil
}
