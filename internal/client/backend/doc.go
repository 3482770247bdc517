// Package backend talks to the hosted backend-as-a-service.
//
// # Overview
//
// The package provides:
//  1. The Client contract the services depend on: the auth calls (SignUp,
//     SignIn, Refresh, SignOut, GetUser) and the table calls (Insert, Select,
//     Update) against the REST data API.
//  2. HTTPClient, the net/http implementation. Every request carries the
//     project's public key; table calls use the stored access token from a
//     TokenSource and, on a 401, refresh the session once and retry.
//  3. Query, a small builder for the filter grammar of the data API
//     (eq filters, or-groups with ilike / contains, ordering, single-row reads).
//
// # Error Handling
//
// Failures reported by the backend are *Error values carrying the HTTP
// status, the backend code and the raw message. They unwrap to the sentinel
// errors ErrUnauthorized, ErrNotFound, ErrInvalidCredentials and
// ErrUnavailable so callers can match with errors.Is; transport failures
// wrap ErrUnavailable.
package backend
