package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
)

// Blog is a post as read from the blogs table. Author is filled only when
// the fetch joined profiles.
type Blog struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	Tags       []string  `json:"tags"`
	CoverImage string    `json:"cover_image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Author     *Profile  `json:"author,omitempty"`
}

// Paragraphs splits the content on line breaks, one paragraph per line.
func (b Blog) Paragraphs() []string {
	return strings.Split(b.Content, "\n")
}

// AuthorName returns the joined author's username, or "" without a join.
func (b Blog) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Username
}

// BlogDraft is the insert payload of the create flow.
type BlogDraft struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	AuthorID   string   `json:"author_id"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"cover_image,omitempty"`
}

// NewBlogDraft trims title and content and parses the comma separated tag list.
func NewBlogDraft(title, content, tags string) BlogDraft {
	return BlogDraft{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
		Tags:    ParseTags(tags),
	}
}

func (d BlogDraft) Validate() error {
	if d.Title == "" {
		return ErrTitleRequired
	}
	if d.Content == "" {
		return ErrContentRequired
	}
	return nil
}

// ParseTags splits raw on commas, trims every entry and drops the empty
// ones. Duplicates are kept. The result is never nil so it encodes as [].
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
