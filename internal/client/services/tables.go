package services

const (
	blogsTable    = "blogs"
	profilesTable = "profiles"

	// blogWithAuthor embeds the author profile into every blog row.
	blogWithAuthor = "*,author:profiles(*)"
)
