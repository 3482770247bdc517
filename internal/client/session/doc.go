// Package session owns the persisted auth session.
//
// Store is the storage shim: every read and every write of the stored
// session pushes its expires_at to one hour after the moment of access,
// whatever expiry the auth API issued. The rule itself is the pure function
// Renew so it can be tested without storage.
//
// Manager is the session context handed to the components that need the
// session (the API client and the auth service). It is the only caller of
// Store.
package session
