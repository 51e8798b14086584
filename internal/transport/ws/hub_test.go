package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/procgen-arcade/internal/rollout"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)

	if hub.clients == nil || hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Fatal("NewHub() left channels or maps nil")
	}
	if hub.logger == nil {
		t.Error("NewHub(nil) should install a discard logger")
	}
}

func TestHubPublishDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)

	done := make(chan struct{})
	go func() {
		for i := range sendBuffer * 2 {
			hub.Publish(rollout.Frame{Step: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
	if len(hub.broadcast) != sendBuffer {
		t.Errorf("queued = %d, want %d", len(hub.broadcast), sendBuffer)
	}
}

func TestHubStreamsFrames(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialHub(t, hub)

	// Registration races the first publish, so keep publishing until
	// the spectator sees a frame.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				hub.Publish(rollout.Frame{RunID: "r1", Game: "miner", Step: 3, Done: true, End: "completed", Board: "A"})
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if msg.Event != "episode_end" {
		t.Errorf("event = %q, want episode_end", msg.Event)
	}
	if msg.Frame == nil || msg.Frame.RunID != "r1" || msg.Frame.Step != 3 || msg.Frame.Board != "A" {
		t.Errorf("frame = %+v", msg.Frame)
	}
}

func TestHubClosesClientsOnShutdown(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	conn := dialHub(t, hub)

	// Give the registration a moment, then stop the hub.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-hub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to close")
	}
}

func TestHubDeliversQueuedFramesOnShutdown(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialHub(t, hub)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	msgs := make(chan Message, sendBuffer)
	go func() {
		defer close(msgs)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg Message
			if json.Unmarshal(data, &msg) == nil {
				msgs <- msg
			}
		}
	}()

	// Publish until the spectator is registered and receiving.
	for registered := false; !registered; {
		hub.Publish(rollout.Frame{Step: 0})
		select {
		case <-msgs:
			registered = true
		case <-time.After(20 * time.Millisecond):
		}
	}

	hub.Publish(rollout.Frame{Step: 99, Done: true, End: "completed"})
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer waitCancel()
	if err := hub.Wait(waitCtx); err != nil {
		t.Fatalf("Wait() = %v", err)
	}

	var last Message
	for msg := range msgs {
		last = msg
	}
	if last.Event != "episode_end" || last.Frame == nil || last.Frame.Step != 99 {
		t.Errorf("last message = %+v, want the final episode_end frame", last)
	}
}

func TestHubWaitHonoursContext(t *testing.T) {
	hub := NewHub(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := hub.Wait(ctx); err == nil {
		t.Error("Wait() should give up when the hub never runs")
	}
}
