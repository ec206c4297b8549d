package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tunetrivia/tunetrivia/game/service"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.events == nil {
		t.Error("Hub events channel is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)

	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
}

func TestHubDeliverRoutesBySession(t *testing.T) {
	hub := NewHub()

	watcher := &Client{
		hub:       hub,
		sessionID: "game-1",
		send:      make(chan []byte, 256),
	}
	bystander := &Client{
		hub:       hub,
		sessionID: "game-2",
		send:      make(chan []byte, 256),
	}
	hub.registerClient(watcher)
	hub.registerClient(bystander)

	hub.deliver(service.GameEvent{
		Type:      "guess_submitted",
		SessionID: "game-1",
	})

	select {
	case data := <-watcher.send:
		var event service.GameEvent
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("invalid event JSON: %v", err)
		}
		if event.Type != "guess_submitted" {
			t.Errorf("unexpected event type %q", event.Type)
		}
	default:
		t.Error("watcher should have received the event")
	}

	select {
	case <-bystander.send:
		t.Error("bystander should not receive another session's event")
	default:
	}
}

func TestHubDeliverDropsSlowClient(t *testing.T) {
	hub := NewHub()

	slow := &Client{
		hub:       hub,
		sessionID: "game-1",
		send:      make(chan []byte), // unbuffered, nothing reading
	}
	hub.registerClient(slow)

	hub.deliver(service.GameEvent{Type: "guess_submitted", SessionID: "game-1"})

	if _, exists := hub.sessions["game-1"]; exists {
		t.Error("slow client should have been unregistered")
	}
}

func TestHubEndToEnd(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "?session=game-1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Give the hub a moment to register the client.
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(service.GameEvent{
		Type:      "game_complete",
		SessionID: "game-1",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var event service.GameEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("invalid event JSON: %v", err)
	}
	if event.Type != "game_complete" || event.SessionID != "game-1" {
		t.Errorf("unexpected event %+v", event)
	}
}
