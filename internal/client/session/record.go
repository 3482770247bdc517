package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"time"
)

// Lifetime is the sliding expiry applied on every storage access.
const Lifetime = time.Hour

// ExpiresAtField holds the expiry instant in epoch seconds.
const ExpiresAtField = "expires_at"

// Record is a stored session as loose JSON. Fields the client does not know
// about survive a rewrite.
type Record map[string]any

// Renew returns a copy of r whose expires_at is now + Lifetime. A nil record
// stays nil.
func Renew(r Record, now time.Time) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r)+1)
	maps.Copy(out, r)
	out[ExpiresAtField] = now.Add(Lifetime).Unix()
	return out
}

// HasExpiry reports whether r carries a non-null expires_at.
func (r Record) HasExpiry() bool {
	v, ok := r[ExpiresAtField]
	return ok && v != nil
}

var errTrailingData = errors.New("unexpected data after session value")

func decodeRecord(raw []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var r Record
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return r, nil
}
