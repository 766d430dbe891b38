package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/runereum-labs/runereum/core"
)

// AgentRepository persists agent records and chat transcripts.
type AgentRepository struct {
	db Store
}

func NewAgentRepository(db Store) *AgentRepository {
	return &AgentRepository{db: db}
}

func agentKey(id int) string {
	return fmt.Sprintf("agent:%08d", id)
}

func (r *AgentRepository) SaveAgent(agent core.Agent) error {
	return r.db.PutObject(agentKey(agent.ID), agent)
}

func (r *AgentRepository) GetAgent(id int) (core.Agent, error) {
	var agent core.Agent
	err := r.db.GetObject(agentKey(id), &agent)
	return agent, err
}

// GetAllAgents returns every persisted agent in id order.
func (r *AgentRepository) GetAllAgents() ([]core.Agent, error) {
	raw, err := r.db.GetByPrefix("agent:")
	if err != nil {
		return nil, err
	}

	agents := make([]core.Agent, 0, len(raw))
	for key, data := range raw {
		var agent core.Agent
		if err := json.Unmarshal(data, &agent); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		agents = append(agents, agent)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID })
	return agents, nil
}

func (r *AgentRepository) DeleteAgent(id int) error {
	return r.db.Delete(agentKey(id))
}

func (r *AgentRepository) SaveTranscript(sessionID string, msgs []core.ChatMessage) error {
	return r.db.PutObject("transcript:"+sessionID, msgs)
}

func (r *AgentRepository) GetTranscript(sessionID string) ([]core.ChatMessage, error) {
	var msgs []core.ChatMessage
	err := r.db.GetObject("transcript:"+sessionID, &msgs)
	return msgs, err
}
