package registry

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/runereum-labs/runereum/communication"
	"github.com/runereum-labs/runereum/core"
	"github.com/runereum-labs/runereum/storage"
)

var (
	// ErrAgentNotFound is returned when an operation references an
	// unknown agent id.
	ErrAgentNotFound = errors.New("agent not found")
	// ErrInvalidStatus is returned when a status string is not one of
	// active, paused, stopped.
	ErrInvalidStatus = errors.New("invalid agent status")
)

// ValidationError carries the per-field failures of a rejected deploy.
type ValidationError struct {
	Fields []core.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "invalid agent config: " + strings.Join(msgs, "; ")
}

// Broadcaster pushes an event to connected dashboard clients.
type Broadcaster func(eventType string, payload interface{})

// Manager mediates all mutations to the Store, keeping the audit log
// consistent and fanning events out to the websocket hub, NATS and
// persistence when those are attached. Note the deliberate asymmetry
// inherited from the original flow: status changes are audited, plain
// field updates are not.
type Manager struct {
	store     *Store
	repo      *storage.AgentRepository
	messenger *communication.Messenger
	broadcast Broadcaster
	now       func() time.Time
}

// NewManager wraps a store. Persistence, messaging and broadcasting are
// optional; attach them with the With* methods.
func NewManager(store *Store) *Manager {
	return &Manager{
		store: store,
		now:   time.Now,
	}
}

// WithRepository enables write-through persistence.
func (m *Manager) WithRepository(repo *storage.AgentRepository) *Manager {
	m.repo = repo
	return m
}

// WithMessenger enables NATS lifecycle announcements.
func (m *Manager) WithMessenger(msgr *communication.Messenger) *Manager {
	m.messenger = msgr
	return m
}

// WithBroadcaster enables websocket event fan-out.
func (m *Manager) WithBroadcaster(b Broadcaster) *Manager {
	m.broadcast = b
	return m
}

// WithClock overrides the timestamp source, used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Restore rehydrates the store from persistence. Falls back to the seed
// roster when nothing has been persisted yet.
func (m *Manager) Restore() error {
	if m.repo == nil {
		return nil
	}
	agents, err := m.repo.GetAllAgents()
	if err != nil {
		return fmt.Errorf("restore agents: %w", err)
	}
	if len(agents) == 0 {
		return nil
	}
	m.store.Load(agents)
	return nil
}

// Deploy validates the config and creates a new agent. The new record
// starts active with zeroed market metrics, base intelligence, and a
// single success log entry.
func (m *Manager) Deploy(cfg core.AgentConfig) (core.Agent, error) {
	if fieldErrs := core.ValidateConfig(cfg); fieldErrs != nil {
		return core.Agent{}, &ValidationError{Fields: fieldErrs}
	}

	profile := cfg.ProfileImage
	if profile == "" {
		profile = core.DefaultProfileImage
	}

	agent := core.Agent{
		Name:         cfg.Name,
		Ticker:       cfg.Ticker,
		MarketCap:    "$0",
		Change24h:    "+0.00%",
		Intelligence: core.BaseIntelligence,
		ProfileImage: profile,
		Description:  cfg.Behavior,
		Status:       core.StatusActive,
		Chain:        cfg.Chain,
		Capabilities: cfg.Capabilities,
		Behavior:     cfg.Behavior,
		Logs: []core.LogEntry{{
			Timestamp: m.now(),
			Message:   "Agent initialized successfully",
			Type:      core.LogSuccess,
		}},
	}
	if links := socialLinksFromConfig(cfg); links != nil {
		agent.SocialLinks = links
	}

	created := m.store.Add(agent)
	m.afterMutation(communication.EventAgentDeployed, "deployed", created)
	return created, nil
}

// SetStatus moves an agent to the target status and records the
// transition in the audit log. Any status may follow any other; the
// 3-state graph has no forbidden edges.
func (m *Manager) SetStatus(id int, status core.AgentStatus) (core.Agent, error) {
	if !status.Valid() {
		return core.Agent{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	updated, ok := m.store.Mutate(id, func(a *core.Agent) {
		a.Status = status
		a.Logs = append(a.Logs, core.LogEntry{
			Timestamp: m.now(),
			Message:   fmt.Sprintf("Status changed to %s", status),
			Type:      core.LogInfo,
		})
	})
	if !ok {
		return core.Agent{}, fmt.Errorf("%w: id %d", ErrAgentNotFound, id)
	}

	m.afterMutation(communication.EventAgentStatusChanged, "status_changed", updated)
	return updated, nil
}

// UpdateFields shallow-merges the provided fields into the record. This
// does not write an audit entry.
func (m *Manager) UpdateFields(id int, upd core.AgentUpdate) (core.Agent, error) {
	updated, ok := m.store.Mutate(id, func(a *core.Agent) {
		applyUpdate(a, upd)
	})
	if !ok {
		return core.Agent{}, fmt.Errorf("%w: id %d", ErrAgentNotFound, id)
	}

	m.afterMutation(communication.EventAgentUpdated, "updated", updated)
	return updated, nil
}

// UpdateSocialLinks merges the provided links into the agent's mapping,
// preserving platforms not present in the update.
func (m *Manager) UpdateSocialLinks(id int, links core.SocialLinks) (core.Agent, error) {
	updated, ok := m.store.Mutate(id, func(a *core.Agent) {
		if a.SocialLinks == nil {
			a.SocialLinks = &core.SocialLinks{}
		}
		mergeSocialLinks(a.SocialLinks, links)
	})
	if !ok {
		return core.Agent{}, fmt.Errorf("%w: id %d", ErrAgentNotFound, id)
	}

	m.afterMutation(communication.EventAgentUpdated, "updated", updated)
	return updated, nil
}

// Delete removes the agent and returns the removed record. Ownership of
// any "currently selected agent" reference is external: callers holding
// one must clear it when the returned id matches.
func (m *Manager) Delete(id int) (core.Agent, error) {
	removed, ok := m.store.Remove(id)
	if !ok {
		return core.Agent{}, fmt.Errorf("%w: id %d", ErrAgentNotFound, id)
	}

	if m.repo != nil {
		if err := m.repo.DeleteAgent(id); err != nil {
			log.Printf("Failed to delete persisted agent %d: %v", id, err)
		}
	}
	m.publish(communication.EventAgentDeleted, "deleted", removed)
	return removed, nil
}

// Get returns the agent with the given id.
func (m *Manager) Get(id int) (core.Agent, error) {
	agent, ok := m.store.Get(id)
	if !ok {
		return core.Agent{}, fmt.Errorf("%w: id %d", ErrAgentNotFound, id)
	}
	return agent, nil
}

// List returns all agents in insertion order.
func (m *Manager) List() []core.Agent {
	return m.store.List()
}

// Count returns the number of deployed agents.
func (m *Manager) Count() int {
	return m.store.Count()
}

// afterMutation persists the record and announces the event.
func (m *Manager) afterMutation(wsEvent, natsEvent string, agent core.Agent) {
	if m.repo != nil {
		if err := m.repo.SaveAgent(agent); err != nil {
			log.Printf("Failed to persist agent %d: %v", agent.ID, err)
		}
	}
	m.publish(wsEvent, natsEvent, agent)
}

func (m *Manager) publish(wsEvent, natsEvent string, agent core.Agent) {
	if m.broadcast != nil {
		m.broadcast(wsEvent, agent)
	}
	if m.messenger != nil {
		if err := m.messenger.PublishLifecycle(agent.ID, natsEvent, agent); err != nil {
			log.Printf("Failed to publish lifecycle event for agent %d: %v", agent.ID, err)
		}
	}
}

func applyUpdate(a *core.Agent, upd core.AgentUpdate) {
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Ticker != nil {
		a.Ticker = *upd.Ticker
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.ProfileImage != nil {
		a.ProfileImage = *upd.ProfileImage
	}
	if upd.Badge != nil {
		a.Badge = *upd.Badge
	}
	if upd.Performance != nil {
		a.Performance = *upd.Performance
	}
	if upd.Behavior != nil {
		a.Behavior = *upd.Behavior
	}
	if upd.Code != nil {
		a.Code = *upd.Code
	}
}

func mergeSocialLinks(dst *core.SocialLinks, src core.SocialLinks) {
	if src.Twitter != "" {
		dst.Twitter = src.Twitter
	}
	if src.Telegram != "" {
		dst.Telegram = src.Telegram
	}
	if src.YouTube != "" {
		dst.YouTube = src.YouTube
	}
	if src.Website != "" {
		dst.Website = src.Website
	}
}

func socialLinksFromConfig(cfg core.AgentConfig) *core.SocialLinks {
	if cfg.TwitterLink == "" && cfg.TelegramLink == "" && cfg.YouTubeLink == "" && cfg.Website == "" {
		return nil
	}
	return &core.SocialLinks{
		Twitter:  cfg.TwitterLink,
		Telegram: cfg.TelegramLink,
		YouTube:  cfg.YouTubeLink,
		Website:  cfg.Website,
	}
}
