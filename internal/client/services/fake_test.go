package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/bloghub/internal/client/backend"
	"github.com/dmitrijs2005/bloghub/internal/client/models"
	"github.com/dmitrijs2005/bloghub/internal/client/session"
)

type call struct {
	Table string
	Query backend.Query
	Body  any
}

// fakeBackend implements backend.Client for service tests. Inserted rows
// are kept per table as JSON; Select answers from selectRet when set and
// from the stored rows otherwise.
type fakeBackend struct {
	mu sync.Mutex

	signUpRet  *backend.SignUpResult
	signUpErr  error
	signInRet  *session.Session
	signInErr  error
	signOutErr error
	getUserRet *models.User
	getUserErr error

	insertErr error
	insertRet map[string]any
	selectRet map[string]any
	selectErr error
	updateRet any
	updateErr error

	rows map[string][]json.RawMessage

	signOutTokens []string
	inserts       []call
	selects       []call
	updates       []call
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{rows: map[string][]json.RawMessage{}, insertRet: map[string]any{}, selectRet: map[string]any{}}
}

func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) SignUp(ctx context.Context, email, password string) (*backend.SignUpResult, error) {
	return f.signUpRet, f.signUpErr
}

func (f *fakeBackend) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	return f.signInRet, f.signInErr
}

func (f *fakeBackend) Refresh(ctx context.Context, refreshToken string) (*session.Session, error) {
	return nil, backend.ErrUnauthorized
}

func (f *fakeBackend) SignOut(ctx context.Context, accessToken string) error {
	f.signOutTokens = append(f.signOutTokens, accessToken)
	return f.signOutErr
}

func (f *fakeBackend) GetUser(ctx context.Context, accessToken string) (*models.User, error) {
	return f.getUserRet, f.getUserErr
}

func (f *fakeBackend) Insert(ctx context.Context, table string, rows any, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts = append(f.inserts, call{Table: table, Body: rows})
	if f.insertErr != nil {
		return f.insertErr
	}

	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	var list []json.RawMessage
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	f.rows[table] = append(f.rows[table], list...)

	if out == nil {
		return nil
	}
	if ret, ok := f.insertRet[table]; ok {
		return remarshal(ret, out)
	}
	return json.Unmarshal(b, out)
}

func (f *fakeBackend) Select(ctx context.Context, table string, q backend.Query, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selects = append(f.selects, call{Table: table, Query: q})
	if f.selectErr != nil {
		return f.selectErr
	}
	if ret, ok := f.selectRet[table]; ok {
		return remarshal(ret, out)
	}

	rows := f.rows[table]
	if q.IsSingle() {
		id := q.Values().Get("id")
		for _, r := range rows {
			var probe struct {
				ID string `json:"id"`
			}
			_ = json.Unmarshal(r, &probe)
			if "eq."+probe.ID == id {
				return json.Unmarshal(r, out)
			}
		}
		return &backend.Error{Status: 406, Code: "PGRST116", Message: "JSON object requested, multiple (or no) rows returned"}
	}
	return remarshal(rows, out)
}

func (f *fakeBackend) Update(ctx context.Context, table string, q backend.Query, patch any, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, call{Table: table, Query: q, Body: patch})
	if f.updateErr != nil {
		return f.updateErr
	}
	if out != nil && f.updateRet != nil {
		return remarshal(f.updateRet, out)
	}
	return nil
}

func remarshal(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// fakeSessions is an in-memory SessionStore.
type fakeSessions struct {
	current *session.Session
	loadErr error
	saved   int
	cleared int
}

func (f *fakeSessions) Load(ctx context.Context) (*session.Session, error) {
	return f.current, f.loadErr
}

func (f *fakeSessions) Save(ctx context.Context, s *session.Session) error {
	f.saved++
	f.current = s
	return nil
}

func (f *fakeSessions) Clear(ctx context.Context) error {
	f.cleared++
	f.current = nil
	return nil
}

type fakeUploader struct {
	url   string
	err   error
	paths []string
}

func (f *fakeUploader) Upload(ctx context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	return f.url, f.err
}
