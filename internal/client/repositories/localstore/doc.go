// Package localstore is the client's durable key-value storage, the terminal
// counterpart of a browser's localStorage. Values are opaque byte strings;
// the session shim in internal/client/session decides what goes in them.
//
// A missing key is not an error: Get returns (nil, nil).
package localstore
