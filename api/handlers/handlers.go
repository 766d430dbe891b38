package handlers

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runereum-labs/runereum/chain"
	"github.com/runereum-labs/runereum/chat"
	"github.com/runereum-labs/runereum/core"
	"github.com/runereum-labs/runereum/mint"
	"github.com/runereum-labs/runereum/registry"
)

// Handlers carries the request handlers' collaborators. The selected
// agent reference lives here, outside the store, because selection is
// presentation state: the store never knows which agent a client is
// focused on.
type Handlers struct {
	Manager   *registry.Manager
	Simulator *chat.Simulator
	Pipeline  *mint.Pipeline
	Uploader  mint.Uploader
	Minter    chain.Minter

	mu       sync.Mutex
	selected int // 0 = no selection
	rng      *rand.Rand
}

// New wires the handler set.
func New(manager *registry.Manager, simulator *chat.Simulator, pipeline *mint.Pipeline, uploader mint.Uploader, minter chain.Minter) *Handlers {
	return &Handlers{
		Manager:   manager,
		Simulator: simulator,
		Pipeline:  pipeline,
		Uploader:  uploader,
		Minter:    minter,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// DeployAgent - deploys a new agent from a validated config
func (h *Handlers) DeployAgent(c *gin.Context) {
	var cfg core.AgentConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent data"})
		return
	}

	agent, err := h.Manager.Deploy(cfg)
	if err != nil {
		var verr *registry.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid agent config",
				"fields": verr.Fields,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deploy agent"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Agent deployed successfully",
		"agent":   agent,
	})
}

// ListAgents - returns all agents in insertion order
func (h *Handlers) ListAgents(c *gin.Context) {
	agents := h.Manager.List()
	c.JSON(http.StatusOK, gin.H{
		"agents": agents,
		"count":  len(agents),
	})
}

// GetAgent - fetch a single agent by id
func (h *Handlers) GetAgent(c *gin.Context) {
	id, ok := h.agentID(c)
	if !ok {
		return
	}

	agent, err := h.Manager.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": agent})
}

// SetAgentStatus - transitions an agent to a new lifecycle status
func (h *Handlers) SetAgentStatus(c *gin.Context) {
	id, ok := h.agentID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status data"})
		return
	}

	agent, err := h.Manager.SetStatus(id, core.AgentStatus(req.Status))
	switch {
	case errors.Is(err, registry.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be one of active, paused, stopped"})
		return
	case errors.Is(err, registry.ErrAgentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated successfully",
		"agent":   agent,
	})
}

// UpdateAgent - shallow-merges fields into an agent record
func (h *Handlers) UpdateAgent(c *gin.Context) {
	id, ok := h.agentID(c)
	if !ok {
		return
	}

	var upd core.AgentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update data"})
		return
	}

	agent, err := h.Manager.UpdateFields(id, upd)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": agent})
}

// UpdateSocialLinks - merges social links, preserving unspecified keys
func (h *Handlers) UpdateSocialLinks(c *gin.Context) {
	id, ok := h.agentID(c)
	if !ok {
		return
	}

	var links core.SocialLinks
	if err := c.ShouldBindJSON(&links); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid social link data"})
		return
	}

	agent, err := h.Manager.UpdateSocialLinks(id, links)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": agent})
}

// DeleteAgent - removes an agent; clears the selection if it pointed at
// the deleted agent
func (h *Handlers) DeleteAgent(c *gin.Context) {
	id, ok := h.agentID(c)
	if !ok {
		return
	}

	if _, err := h.Manager.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}

	h.mu.Lock()
	if h.selected == id {
		h.selected = 0
	}
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Agent deleted successfully"})
}

// SelectAgent - marks an agent as the client's focused agent
func (h *Handlers) SelectAgent(c *gin.Context) {
	id, ok := h.agentID(c)
	if !ok {
		return
	}

	if _, err := h.Manager.Get(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}

	h.mu.Lock()
	h.selected = id
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Agent selected", "agentId": id})
}

// SelectedAgent - returns the focused agent, if any
func (h *Handlers) SelectedAgent(c *gin.Context) {
	h.mu.Lock()
	id := h.selected
	h.mu.Unlock()

	if id == 0 {
		c.JSON(http.StatusOK, gin.H{"selected": nil})
		return
	}

	agent, err := h.Manager.Get(id)
	if err != nil {
		// Selected agent vanished; clear the stale reference.
		h.mu.Lock()
		if h.selected == id {
			h.selected = 0
		}
		h.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"selected": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": agent})
}

// Capabilities - lists the capabilities the deploy flow accepts
func (h *Handlers) Capabilities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"capabilities": core.SupportedCapabilities})
}

// Chains - lists the supported networks
func (h *Handlers) Chains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chains": core.SupportedChains})
}

// AgentConnect - acknowledges an agent toolkit connection request
func (h *Handlers) AgentConnect(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Agent initialization started",
		"agentId": "agent_" + h.randomBase36(9),
	})
}

func (h *Handlers) agentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent id"})
		return 0, false
	}
	return id, true
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func (h *Handlers) randomBase36(n int) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = base36[h.rng.Intn(len(base36))]
	}
	return string(buf)
}
