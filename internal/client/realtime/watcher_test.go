package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/dmitrijs2005/bloghub/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRealtime struct {
	t *testing.T

	rejectJoin bool
	closeAfter bool

	mu         sync.Mutex
	query      map[string][]string
	join       message
	heartbeats int
}

func (f *fakeRealtime) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.query = r.URL.Query()
	f.mu.Unlock()

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		f.t.Errorf("accept: %v", err)
		return
	}
	defer conn.CloseNow()
	ctx := r.Context()

	var join message
	if err := wsjson.Read(ctx, conn, &join); err != nil {
		return
	}
	f.mu.Lock()
	f.join = join
	f.mu.Unlock()

	status := `{"status":"ok","response":{}}`
	if f.rejectJoin {
		status = `{"status":"error","response":{"reason":"unauthorized"}}`
	}
	_ = wsjson.Write(ctx, conn, message{Topic: join.Topic, Event: eventReply, Payload: json.RawMessage(status), Ref: join.Ref})
	if f.rejectJoin {
		return
	}

	other := `{"data":{"type":"INSERT","record":{"id":"x","title":"elsewhere"}}}`
	_ = wsjson.Write(ctx, conn, message{Topic: "realtime:public:other", Event: eventChanges, Payload: json.RawMessage(other)})

	for _, title := range []string{"First", "Second"} {
		p := `{"data":{"type":"INSERT","schema":"public","table":"blogs","record":{"id":"b-` + title + `","title":"` + title + `","tags":["go"]}}}`
		_ = wsjson.Write(ctx, conn, message{Topic: join.Topic, Event: eventChanges, Payload: json.RawMessage(p)})
	}

	if f.closeAfter {
		_ = wsjson.Write(ctx, conn, message{Topic: join.Topic, Event: eventClose, Payload: json.RawMessage(`{}`), JoinRef: join.Ref})
	}

	for {
		var m message
		if err := wsjson.Read(ctx, conn, &m); err != nil {
			return
		}
		if m.Topic == phoenixTopic && m.Event == eventHeartbeat {
			f.mu.Lock()
			f.heartbeats++
			f.mu.Unlock()
			_ = wsjson.Write(ctx, conn, message{Topic: phoenixTopic, Event: eventReply, Payload: json.RawMessage(`{"status":"ok","response":{}}`), Ref: m.Ref})
		}
	}
}

func (f *fakeRealtime) snapshot() (map[string][]string, message, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query, f.join, f.heartbeats
}

func startFake(t *testing.T, f *fakeRealtime) string {
	t.Helper()
	f.t = t
	mux := http.NewServeMux()
	mux.Handle("/realtime/v1/websocket", f)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestNewWatcher_Endpoint(t *testing.T) {
	w, err := NewWatcher("https://abc.supabase.co/", "anon", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "wss://abc.supabase.co/realtime/v1/websocket?apikey=anon&vsn=1.0.0", w.endpoint)
	assert.Equal(t, DefaultHeartbeat, w.heartbeat)

	_, err = NewWatcher("ftp://abc", "anon", 0, nil)
	require.Error(t, err)
}

func TestWatch_DeliversInsertsAndBeats(t *testing.T) {
	f := &fakeRealtime{}
	base := startFake(t, f)

	w, err := NewWatcher(base, "anon", 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan models.Blog, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, "user-token", func(b models.Blog) { got <- b })
	}()

	for _, want := range []string{"First", "Second"} {
		select {
		case b := <-got:
			assert.Equal(t, want, b.Title)
			assert.Equal(t, []string{"go"}, b.Tags)
		case <-time.After(2 * time.Second):
			t.Fatalf("no insert %q delivered", want)
		}
	}

	require.Eventually(t, func() bool {
		_, _, beats := f.snapshot()
		return beats >= 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}

	query, join, _ := f.snapshot()
	assert.Equal(t, []string{"anon"}, query["apikey"])
	assert.Equal(t, []string{"1.0.0"}, query["vsn"])
	assert.Equal(t, eventJoin, join.Event)
	assert.True(t, strings.HasPrefix(join.Topic, "realtime:"))

	var p joinPayload
	require.NoError(t, json.Unmarshal(join.Payload, &p))
	assert.Equal(t, "user-token", p.AccessToken)
	assert.Equal(t, []changeFilter{{Event: "INSERT", Schema: "public", Table: "blogs"}}, p.Config.PostgresChanges)
	assert.Empty(t, got)
}

func TestWatch_JoinRejected(t *testing.T) {
	base := startFake(t, &fakeRealtime{rejectJoin: true})

	w, err := NewWatcher(base, "anon", time.Second, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = w.Watch(ctx, "", func(models.Blog) {})
	require.ErrorIs(t, err, ErrJoinRejected)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestWatch_ChannelClosedByServer(t *testing.T) {
	base := startFake(t, &fakeRealtime{closeAfter: true})

	w, err := NewWatcher(base, "anon", time.Second, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var n int
	err = w.Watch(ctx, "", func(models.Blog) { n++ })
	require.Error(t, err)
	assert.Contains(t, err.Error(), eventClose)
	assert.Equal(t, 2, n)
}

func TestWatch_ConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	w, err := NewWatcher(base, "anon", time.Second, nil)
	require.NoError(t, err)

	err = w.Watch(context.Background(), "", func(models.Blog) {})
	require.Error(t, err)
}
