package communication

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

func startTestServer(t *testing.T) string {
	t.Helper()

	opts := &server.Options{Host: "127.0.0.1", Port: -1}
	srv, err := server.NewServer(opts)
	if err != nil {
		t.Fatalf("Failed to create NATS server: %v", err)
	}
	go srv.Start()
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("NATS server did not become ready")
	}
	t.Cleanup(srv.Shutdown)

	return fmt.Sprintf("nats://%s", srv.Addr().String())
}

func TestPublishLifecycle(t *testing.T) {
	url := startTestServer(t)

	m, err := NewMessenger(url)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer m.Close()

	received := make(chan []byte, 1)
	_, err = m.SubscribeLifecycle(7, func(msg *nats.Msg) { received <- msg.Data })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := m.PublishLifecycle(7, "deployed", map[string]string{"name": "Luna AI"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case data := <-received:
		var event struct {
			Event   string            `json:"event"`
			Payload map[string]string `json:"payload"`
		}
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("Received message is not JSON: %v", err)
		}
		if event.Event != "deployed" || event.Payload["name"] != "Luna AI" {
			t.Errorf("Unexpected event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Lifecycle event was not delivered")
	}
}

func TestSubscribeAllLifecycles(t *testing.T) {
	url := startTestServer(t)

	m, err := NewMessenger(url)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer m.Close()

	received := make(chan string, 2)
	if _, err := m.SubscribeAllLifecycles(func(msg *nats.Msg) { received <- msg.Subject }); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	for _, id := range []int{1, 42} {
		if err := m.PublishLifecycle(id, "status_changed", nil); err != nil {
			t.Fatalf("Publish for agent %d failed: %v", id, err)
		}
	}

	subjects := make(map[string]bool)
	for i := 0; i < 2; i++ {
		select {
		case s := <-received:
			subjects[s] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("Only received %d of 2 events", i)
		}
	}
	if !subjects["agent.1.lifecycle"] || !subjects["agent.42.lifecycle"] {
		t.Errorf("Wildcard subscription missed subjects: %v", subjects)
	}
}
