package session

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/bloghub/internal/client/models"
)

// Session is the credential bundle issued by the auth API.
type Session struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type,omitempty"`
	ExpiresIn    int64        `json:"expires_in,omitempty"`
	ExpiresAt    int64        `json:"expires_at,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *models.User `json:"user,omitempty"`
}

func (s *Session) toRecord() (Record, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return decodeRecord(b)
}

func fromRecord(r Record) (*Session, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// StorageKey derives the storage key from the backend URL the same way the
// hosted service's own clients do: sb-<first host label>-auth-token.
func StorageKey(baseURL string) string {
	ref := "local"
	if u, err := url.Parse(baseURL); err == nil && u.Hostname() != "" {
		ref = strings.Split(u.Hostname(), ".")[0]
	}
	return "sb-" + ref + "-auth-token"
}
