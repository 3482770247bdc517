package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable        = errors.New("backend unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid login credentials")
)

// noRowsCode is what the data API reports when a single-row read matched
// no rows.
const noRowsCode = "PGRST116"

// Error is a failure reported by the backend.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	switch {
	case e.Code == "invalid_credentials" || e.Message == "Invalid login credentials":
		return ErrInvalidCredentials
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound || e.Code == noRowsCode:
		return ErrNotFound
	case e.Status >= http.StatusInternalServerError:
		return ErrUnavailable
	default:
		return nil
	}
}

// Message returns the backend's own message when err carries one, and
// err.Error() otherwise.
func Message(err error) string {
	var be *Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return err.Error()
}

// errorBody covers the error shapes of both the auth API and the data API.
type errorBody struct {
	Code             json.RawMessage `json:"code"`
	ErrorCode        string          `json:"error_code"`
	Msg              string          `json:"msg"`
	Message          string          `json:"message"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

func (b errorBody) code() string {
	if b.ErrorCode != "" {
		return b.ErrorCode
	}
	var s string
	if err := json.Unmarshal(b.Code, &s); err == nil {
		return s
	}
	if b.Error != "" && b.ErrorDescription != "" {
		return b.Error
	}
	return ""
}

func (b errorBody) message() string {
	for _, m := range []string{b.Msg, b.Message, b.ErrorDescription, b.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}

func mapError(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := eb.message()
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed: %s", http.StatusText(status))
	}

	return &Error{Status: status, Code: eb.code(), Message: msg}
}
