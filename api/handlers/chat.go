package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/runereum-labs/runereum/ai"
	"github.com/runereum-labs/runereum/chat"
	"github.com/runereum-labs/runereum/communication"
)

// Chat - routes a user message through the conversation simulator.
// The agent context is optional; without it the default persona answers.
func (h *Handlers) Chat(c *gin.Context) {
	var req struct {
		Message      string           `json:"message"`
		SessionID    string           `json:"sessionId"`
		AgentContext *ai.AgentContext `json:"agentContext"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat request"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	var agent ai.AgentContext
	if req.AgentContext != nil {
		agent = *req.AgentContext
	}

	reply, err := h.Simulator.Send(c.Request.Context(), sessionID, agent, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Message is required",
			})
			return
		}
		log.Printf("Chat response failed for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get AI response",
		})
		return
	}

	communication.BroadcastEvent(communication.EventChatMessage, gin.H{
		"sessionId": sessionID,
		"message":   reply,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": sessionID,
		"message":   reply,
	})
}

// Transcript - returns the full message history for a chat session
func (h *Handlers) Transcript(c *gin.Context) {
	sessionID := c.Param("sessionId")
	messages := h.Simulator.Transcript(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"messages":  messages,
		"count":     len(messages),
	})
}
