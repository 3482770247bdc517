package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bloghub/internal/client/models"
	"github.com/dmitrijs2005/bloghub/internal/client/session"
	"github.com/dmitrijs2005/bloghub/internal/logging"
)

const (
	authPath = "/auth/v1"
	restPath = "/rest/v1"

	clientInfo = "bloghub-go/1.0"

	singleObjectMediaType = "application/vnd.pgrst.object+json"
)

type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
	now     func() time.Time
}

// NewHTTPClient builds a client for the backend at baseURL using the
// project's public apiKey. tokens may be nil, in which case table calls are
// made anonymously.
func NewHTTPClient(baseURL, apiKey string, httpClient *http.Client, tokens TokenSource, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url: unsupported scheme %q", u.Scheme)
	}
	if apiKey == "" {
		return nil, errors.New("backend api key is empty")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPClient{baseURL: u, apiKey: apiKey, http: httpClient, tokens: tokens, log: log, now: time.Now}, nil
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	accept string
	prefer string
	bearer string
	out    any
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// send performs one round trip.
func (c *HTTPClient) send(ctx context.Context, r request) error {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), body)
	if err != nil {
		return err
	}

	bearer := r.bearer
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("X-Client-Info", clientInfo)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	started := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "backend request", "method", r.method, "path", r.path, "status", resp.StatusCode, "elapsed", c.now().Sub(started))

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapError(resp.StatusCode, payload)
	}

	if r.out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, r.out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// sendAuthorized performs a table call with the stored access token. When
// the backend rejects the token and a refresh token is stored, the session
// is refreshed and the call is retried once.
func (c *HTTPClient) sendAuthorized(ctx context.Context, r request) error {
	if c.tokens == nil {
		return c.send(ctx, r)
	}

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	r.bearer = token

	err = c.send(ctx, r)
	if token == "" || !errors.Is(err, ErrUnauthorized) {
		return err
	}

	refreshToken, rerr := c.tokens.RefreshToken(ctx)
	if rerr != nil || refreshToken == "" {
		return err
	}

	s, rerr := c.Refresh(ctx, refreshToken)
	if rerr != nil {
		c.log.Warn(ctx, "session refresh failed", "error", rerr)
		return err
	}
	if rerr := c.tokens.Save(ctx, s); rerr != nil {
		return fmt.Errorf("save refreshed session: %w", rerr)
	}

	c.log.Info(ctx, "session refreshed")
	r.bearer = s.AccessToken
	return c.send(ctx, r)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpResponse struct {
	session.Session
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	var resp signUpResponse
	err := c.send(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/signup",
		body:   credentials{Email: email, Password: password},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	result := &SignUpResult{User: resp.User}
	if result.User == nil && resp.ID != "" {
		result.User = &models.User{ID: resp.ID, Email: resp.Email, CreatedAt: resp.CreatedAt}
	}
	if resp.AccessToken != "" {
		s := resp.Session
		c.stampExpiry(&s)
		result.Session = &s
	}
	return result, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	return c.grant(ctx, "password", credentials{Email: email, Password: password})
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*session.Session, error) {
	return c.grant(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

func (c *HTTPClient) grant(ctx context.Context, grantType string, body any) (*session.Session, error) {
	var s session.Session
	err := c.send(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/token",
		query:  url.Values{"grant_type": {grantType}},
		body:   body,
		out:    &s,
	})
	if err != nil {
		return nil, err
	}
	if s.AccessToken == "" {
		return nil, errors.New("auth response carried no access token")
	}
	c.stampExpiry(&s)
	return &s, nil
}

// stampExpiry fills expires_at from expires_in for servers that only send
// the latter.
func (c *HTTPClient) stampExpiry(s *session.Session) {
	if s.ExpiresAt == 0 && s.ExpiresIn > 0 {
		s.ExpiresAt = c.now().Unix() + s.ExpiresIn
	}
}

func (c *HTTPClient) SignOut(ctx context.Context, accessToken string) error {
	return c.send(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/logout",
		bearer: accessToken,
	})
}

func (c *HTTPClient) GetUser(ctx context.Context, accessToken string) (*models.User, error) {
	var u models.User
	err := c.send(ctx, request{
		method: http.MethodGet,
		path:   authPath + "/user",
		bearer: accessToken,
		out:    &u,
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Insert(ctx context.Context, table string, rows any, out any) error {
	prefer := "return=minimal"
	if out != nil {
		prefer = "return=representation"
	}
	return c.sendAuthorized(ctx, request{
		method: http.MethodPost,
		path:   restPath + "/" + table,
		body:   rows,
		prefer: prefer,
		out:    out,
	})
}

func (c *HTTPClient) Select(ctx context.Context, table string, q Query, out any) error {
	r := request{
		method: http.MethodGet,
		path:   restPath + "/" + table,
		query:  q.Values(),
		out:    out,
	}
	if q.IsSingle() {
		r.accept = singleObjectMediaType
	}
	return c.sendAuthorized(ctx, r)
}

func (c *HTTPClient) Update(ctx context.Context, table string, q Query, patch any, out any) error {
	prefer := "return=minimal"
	if out != nil {
		prefer = "return=representation"
	}
	r := request{
		method: http.MethodPatch,
		path:   restPath + "/" + table,
		query:  q.Values(),
		body:   patch,
		prefer: prefer,
		out:    out,
	}
	if q.IsSingle() && out != nil {
		r.accept = singleObjectMediaType
	}
	return c.sendAuthorized(ctx, r)
}
