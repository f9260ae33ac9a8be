package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
)

// WebsocketFeed implements Feed over a websocket connection to the backend's
// change stream. Frames are JSON-encoded Change objects; frames that do not
// decode are dropped rather than delivered half-parsed.
type WebsocketFeed struct {
	conn    *websocket.Conn
	changes chan Change
	done    chan struct{}

	mu      sync.Mutex
	err     error
	closers sync.Once
}

// subscribeFrame is the first frame sent after connecting; it scopes the
// subscription to one operating day.
type subscribeFrame struct {
	Action string `json:"action"`
	Day    string `json:"day"`
}

// DialFeed connects to the backend change stream and subscribes to the given
// day. The returned feed delivers changes until the connection drops or Close
// is called.
func DialFeed(ctx context.Context, url string, day time.Time) (*WebsocketFeed, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing realtime feed: %w", err)
	}

	sub := subscribeFrame{Action: "subscribe", Day: day.Format("2006-01-02")}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribing to realtime feed: %w", err)
	}

	f := &WebsocketFeed{
		conn:    conn,
		changes: make(chan Change, 16),
		done:    make(chan struct{}),
	}
	go f.readLoop()
	go f.pingLoop()
	return f, nil
}

func (f *WebsocketFeed) Changes() <-chan Change {
	return f.changes
}

func (f *WebsocketFeed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *WebsocketFeed) Close() error {
	f.closers.Do(func() {
		close(f.done)
		f.conn.Close()
	})
	return nil
}

func (f *WebsocketFeed) readLoop() {
	defer close(f.changes)
	defer f.Close()

	f.conn.SetReadDeadline(time.Now().Add(pongWait))
	f.conn.SetPongHandler(func(string) error {
		return f.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := f.conn.ReadMessage()
		if err != nil {
			f.mu.Lock()
			if f.err == nil && !isClosing(f.done) {
				f.err = fmt.Errorf("reading realtime feed: %w", err)
			}
			f.mu.Unlock()
			return
		}
		var change Change
		if err := json.Unmarshal(data, &change); err != nil || !change.Valid() {
			continue
		}
		select {
		case f.changes <- change:
		case <-f.done:
			return
		}
	}
}

func (f *WebsocketFeed) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := f.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-f.done:
			return
		}
	}
}

func isClosing(done chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}
