package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/dmitrijs2005/bloghub/internal/client/models"
	"github.com/dmitrijs2005/bloghub/internal/logging"
)

const (
	DefaultHeartbeat = 30 * time.Second

	protocolVersion = "1.0.0"
	maxReadBytes    = 1 << 20
)

var ErrJoinRejected = errors.New("realtime join rejected")

type Watcher struct {
	endpoint  string
	heartbeat time.Duration
	log       logging.Logger
	ref       atomic.Uint64
}

// NewWatcher prepares a watcher for the backend at baseURL. A zero
// heartbeat uses DefaultHeartbeat.
func NewWatcher(baseURL, apiKey string, heartbeat time.Duration, log logging.Logger) (*Watcher, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("realtime url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return nil, fmt.Errorf("realtime url: unsupported scheme %q", u.Scheme)
	}
	u.Path += "/realtime/v1/websocket"
	u.RawQuery = url.Values{"apikey": {apiKey}, "vsn": {protocolVersion}}.Encode()

	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Watcher{endpoint: u.String(), heartbeat: heartbeat, log: log}, nil
}

func (w *Watcher) nextRef() string {
	return strconv.FormatUint(w.ref.Add(1), 10)
}

// Watch joins the blogs insert channel and calls onInsert for every new
// post until ctx is done. It returns nil when ctx ends the watch.
func (w *Watcher) Watch(ctx context.Context, accessToken string, onInsert func(models.Blog)) error {
	conn, resp, err := websocket.Dial(ctx, w.endpoint, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("realtime connect: %w", err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(maxReadBytes)

	topic := "realtime:public:blogs"
	joinRef, err := w.join(ctx, conn, topic, accessToken)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	w.log.Info(ctx, "realtime joined", "topic", topic)

	hbCtx, stop := context.WithCancel(ctx)
	defer stop()
	go w.beat(hbCtx, conn)

	err = w.listen(ctx, conn, topic, joinRef, onInsert)
	if ctx.Err() != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "")
		return nil
	}
	return err
}

func (w *Watcher) join(ctx context.Context, conn *websocket.Conn, topic, accessToken string) (string, error) {
	var cfg joinConfig
	cfg.PostgresChanges = []changeFilter{{Event: "INSERT", Schema: "public", Table: "blogs"}}

	payload, err := json.Marshal(joinPayload{Config: cfg, AccessToken: accessToken})
	if err != nil {
		return "", err
	}

	ref := w.nextRef()
	if err := wsjson.Write(ctx, conn, message{Topic: topic, Event: eventJoin, Payload: payload, Ref: &ref, JoinRef: &ref}); err != nil {
		return "", fmt.Errorf("realtime join: %w", err)
	}

	for {
		var m message
		if err := wsjson.Read(ctx, conn, &m); err != nil {
			return "", fmt.Errorf("realtime join: %w", err)
		}
		if m.Event != eventReply || m.Ref == nil || *m.Ref != ref {
			continue
		}

		var reply replyPayload
		if err := json.Unmarshal(m.Payload, &reply); err != nil {
			return "", fmt.Errorf("realtime join reply: %w", err)
		}
		if reply.Status != "ok" {
			return "", fmt.Errorf("%w: %s", ErrJoinRejected, string(reply.Response))
		}
		return ref, nil
	}
}

func (w *Watcher) beat(ctx context.Context, conn *websocket.Conn) {
	t := time.NewTicker(w.heartbeat)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			ref := w.nextRef()
			m := message{Topic: phoenixTopic, Event: eventHeartbeat, Payload: json.RawMessage(`{}`), Ref: &ref}
			if err := wsjson.Write(ctx, conn, m); err != nil {
				if ctx.Err() == nil {
					w.log.Warn(ctx, "realtime heartbeat failed", "error", err)
				}
				return
			}
		}
	}
}

func (w *Watcher) listen(ctx context.Context, conn *websocket.Conn, topic, joinRef string, onInsert func(models.Blog)) error {
	for {
		var m message
		if err := wsjson.Read(ctx, conn, &m); err != nil {
			return fmt.Errorf("realtime read: %w", err)
		}
		if m.Topic != topic {
			continue
		}

		switch m.Event {
		case eventChanges:
			var p changesPayload
			if err := json.Unmarshal(m.Payload, &p); err != nil {
				w.log.Warn(ctx, "realtime payload skipped", "error", err)
				continue
			}
			if p.Data.Type != "" && p.Data.Type != "INSERT" {
				continue
			}
			var b models.Blog
			if err := json.Unmarshal(p.Data.Record, &b); err != nil {
				w.log.Warn(ctx, "realtime record skipped", "error", err)
				continue
			}
			onInsert(b)
		case eventError, eventClose:
			if m.JoinRef == nil || *m.JoinRef == joinRef {
				return fmt.Errorf("realtime channel closed: %s", m.Event)
			}
		}
	}
}
