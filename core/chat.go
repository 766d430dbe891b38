package core

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleAgent ChatRole = "agent"
)

// ChatMessage is one entry in an agent session's transcript.
type ChatMessage struct {
	ID               string    `json:"id"`
	Role             ChatRole  `json:"role"`
	Content          string    `json:"content"`
	Timestamp        time.Time `json:"timestamp"`
	Pending          bool      `json:"pending,omitempty"`
	TransactionHash  string    `json:"transactionHash,omitempty"`
	BlockExplorerURL string    `json:"blockExplorerUrl,omitempty"`
}
