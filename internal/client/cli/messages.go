package cli

// User-facing notices.
const (
	msgSignUpFailed       = "Error signing up: "
	msgSignedUp           = "Successfully signed up! Please log in."
	msgInvalidCredentials = "Invalid email or password. Please try again or sign up if you don't have an account."
	msgUnexpected         = "An unexpected error occurred. Please try again."
	msgLoggedIn           = "Successfully logged in!"
	msgLoggedOut          = "Signed out."
	msgSignOutFailed      = "Error signing out"
	msgLoginRequired      = "Please log in to create a blog post"
	msgBlogCreated        = "Blog post created successfully!"
	msgCreateFailed       = "Error creating blog post. Please try again."
	msgProfileFailed      = "Error loading profile"
	msgNoBlogsYet         = "You haven't created any blogs yet."
	msgNoSearchResults    = "No blogs found matching your search."
	msgEnterSearchTerm    = "Enter a search term to find blogs."
	msgEmptyFeed          = "No blogs yet."
)
