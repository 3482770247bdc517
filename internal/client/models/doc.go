// Package models holds the records the client exchanges with the backend:
// auth users, profiles and blogs. They are transient view state; only the
// session (see internal/client/session) is persisted locally.
package models
