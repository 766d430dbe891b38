package communication

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Messenger encapsulates a NATS connection used for lifecycle
// announcements.
type Messenger struct {
	NC *nats.Conn
}

// NewMessenger creates a new instance of Messenger.
func NewMessenger(url string) (*Messenger, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Messenger{NC: nc}, nil
}

// PublishLifecycle announces an agent lifecycle event on the agent's
// subject. The payload is marshalled to JSON.
func (m *Messenger) PublishLifecycle(agentID int, event string, payload interface{}) error {
	data, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		return fmt.Errorf("marshal lifecycle event: %w", err)
	}
	subject := fmt.Sprintf("agent.%d.lifecycle", agentID)
	return m.NC.Publish(subject, data)
}

// PublishGlobal publishes a message to a global subject (for public
// announcements such as mint completions).
func (m *Messenger) PublishGlobal(subject string, message []byte) error {
	return m.NC.Publish(subject, message)
}

// SubscribeLifecycle subscribes to one agent's lifecycle subject.
func (m *Messenger) SubscribeLifecycle(agentID int, handler nats.MsgHandler) (*nats.Subscription, error) {
	subject := fmt.Sprintf("agent.%d.lifecycle", agentID)
	return m.NC.Subscribe(subject, handler)
}

// SubscribeAllLifecycles subscribes to every agent's lifecycle subject.
func (m *Messenger) SubscribeAllLifecycles(handler nats.MsgHandler) (*nats.Subscription, error) {
	return m.NC.Subscribe("agent.*.lifecycle", handler)
}

// Close releases the underlying connection.
func (m *Messenger) Close() {
	if m.NC != nil {
		m.NC.Close()
	}
}
