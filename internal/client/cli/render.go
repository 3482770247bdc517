package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/bloghub/internal/client/models"
)

const dateLayout = "Jan 2, 2006"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

func byline(b models.Blog) string {
	parts := make([]string, 0, 2)
	if name := b.AuthorName(); name != "" {
		parts = append(parts, "By "+name)
	}
	if d := formatDate(b.CreatedAt); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, " · ")
}

func tagLine(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "#" + strings.Join(tags, " #")
}

// renderList prints one card per blog.
func renderList(w io.Writer, blogs []models.Blog) {
	for _, b := range blogs {
		fmt.Fprintf(w, "\n%s\n", b.Title)
		if line := byline(b); line != "" {
			fmt.Fprintf(w, "  %s\n", line)
		}
		if line := tagLine(b.Tags); line != "" {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintf(w, "  view %s\n", b.ID)
	}
}

// renderBlog prints the full post, one paragraph per content line.
func renderBlog(w io.Writer, b models.Blog) {
	fmt.Fprintf(w, "\n%s\n", b.Title)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(b.Title))))
	if line := byline(b); line != "" {
		fmt.Fprintln(w, line)
	}
	if line := tagLine(b.Tags); line != "" {
		fmt.Fprintln(w, line)
	}
	if b.CoverImage != "" {
		fmt.Fprintf(w, "Cover: %s\n", b.CoverImage)
	}
	for _, p := range b.Paragraphs() {
		fmt.Fprintf(w, "\n%s\n", p)
	}
}
