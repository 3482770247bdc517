// Package services contains the application services of the bloghub
// client: authentication against the hosted auth API, blog listing, search,
// viewing and publishing, and user profiles. Services talk to the backend
// through backend.Client and to the persisted session through a
// SessionStore; the CLI layer turns their errors into notices and redirects.
package services
