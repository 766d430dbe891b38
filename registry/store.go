package registry

import (
	"sync"

	"github.com/runereum-labs/runereum/core"
)

// Store is the in-memory collection of agent records. It owns the data
// and nothing else; lifecycle rules (audit logging, events, persistence)
// live in Manager. All methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	agents []core.Agent
	index  map[int]int // id -> position in agents
	lastID int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[int]int)}
}

// NewSeededStore returns a store pre-populated with the dashboard roster.
func NewSeededStore() *Store {
	s := NewStore()
	s.Load(core.SeedAgents())
	return s
}

// Load replaces the store contents. Ids keep their values; the next
// assigned id continues above the highest loaded one.
func (s *Store) Load(agents []core.Agent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agents = make([]core.Agent, len(agents))
	copy(s.agents, agents)
	s.index = make(map[int]int, len(agents))
	s.lastID = 0
	for i, a := range s.agents {
		s.index[a.ID] = i
		if a.ID > s.lastID {
			s.lastID = a.ID
		}
	}
}

// Add assigns the next id to the agent and appends it. Ids are strictly
// increasing for the process lifetime, so a deleted agent's id is never
// reused.
func (s *Store) Add(agent core.Agent) core.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	agent.ID = s.lastID
	s.index[agent.ID] = len(s.agents)
	s.agents = append(s.agents, agent)
	return cloneAgent(agent)
}

// Get returns a copy of the agent with the given id.
func (s *Store) Get(id int) (core.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return core.Agent{}, false
	}
	return cloneAgent(s.agents[pos]), true
}

// List returns copies of all agents in insertion order.
func (s *Store) List() []core.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Agent, len(s.agents))
	for i, a := range s.agents {
		out[i] = cloneAgent(a)
	}
	return out
}

// Count returns the number of stored agents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}

// Mutate runs fn against the stored record under the write lock and
// returns a copy of the result. Returns false if the id is unknown.
func (s *Store) Mutate(id int, fn func(*core.Agent)) (core.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return core.Agent{}, false
	}
	fn(&s.agents[pos])
	return cloneAgent(s.agents[pos]), true
}

// Remove deletes the record and returns what was removed.
func (s *Store) Remove(id int) (core.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return core.Agent{}, false
	}
	removed := s.agents[pos]
	s.agents = append(s.agents[:pos], s.agents[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.agents); i++ {
		s.index[s.agents[i].ID] = i
	}
	return removed, true
}

// cloneAgent deep-copies the parts of an agent that callers could
// otherwise mutate through shared slices.
func cloneAgent(a core.Agent) core.Agent {
	out := a
	if a.Logs != nil {
		out.Logs = make([]core.LogEntry, len(a.Logs))
		copy(out.Logs, a.Logs)
	}
	if a.Capabilities != nil {
		out.Capabilities = make([]string, len(a.Capabilities))
		copy(out.Capabilities, a.Capabilities)
	}
	if a.SocialLinks != nil {
		links := *a.SocialLinks
		out.SocialLinks = &links
	}
	return out
}
