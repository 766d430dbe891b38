package core

import "time"

// AgentStatus is the lifecycle state of a deployed agent.
type AgentStatus string

const (
	StatusActive  AgentStatus = "active"
	StatusPaused  AgentStatus = "paused"
	StatusStopped AgentStatus = "stopped"
)

// Valid reports whether s is one of the three enumerated statuses.
func (s AgentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusStopped:
		return true
	}
	return false
}

// LogType classifies an audit log entry.
type LogType string

const (
	LogInfo    LogType = "info"
	LogError   LogType = "error"
	LogSuccess LogType = "success"
)

// LogEntry is a single audit log record. Logs are append-only and are
// never reordered or truncated.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Type      LogType   `json:"type"`
}

// SocialLinks holds an agent's optional social platform URLs.
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	YouTube  string `json:"youtube,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Agent represents a simulated AI trading entity.
type Agent struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Ticker       string       `json:"ticker"`
	MarketCap    string       `json:"marketCap"`
	Change24h    string       `json:"change24h"`
	Intelligence int          `json:"intelligence"`
	ProfileImage string       `json:"profileImage"`
	Description  string       `json:"description"`
	Badge        string       `json:"badge,omitempty"`
	Performance  string       `json:"performance,omitempty"`
	Status       AgentStatus  `json:"status"`
	Chain        string       `json:"chain,omitempty"`
	Capabilities []string     `json:"capabilities,omitempty"`
	Behavior     string       `json:"behavior,omitempty"`
	Logs         []LogEntry   `json:"logs"`
	Code         string       `json:"code,omitempty"`
	SocialLinks  *SocialLinks `json:"socialLinks,omitempty"`
}

// AgentConfig is the input for deploying a new agent.
type AgentConfig struct {
	Name         string   `json:"name" validate:"required,min=3"`
	Ticker       string   `json:"ticker" validate:"required"`
	Chain        string   `json:"chain" validate:"omitempty,oneof=base-sepolia optimism arbitrum"`
	Capabilities []string `json:"capabilities" validate:"omitempty,dive,oneof=trade analyze automate interact"`
	Behavior     string   `json:"behavior" validate:"required,min=10"`
	ProfileImage string   `json:"profileImage"`
	TwitterLink  string   `json:"twitterLink,omitempty"`
	TelegramLink string   `json:"telegramLink,omitempty"`
	YouTubeLink  string   `json:"youtubeLink,omitempty"`
	Website      string   `json:"website,omitempty"`
}

// AgentUpdate carries a partial field mutation. Nil pointers leave the
// corresponding field untouched.
type AgentUpdate struct {
	Name         *string `json:"name,omitempty"`
	Ticker       *string `json:"ticker,omitempty"`
	Description  *string `json:"description,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Badge        *string `json:"badge,omitempty"`
	Performance  *string `json:"performance,omitempty"`
	Behavior     *string `json:"behavior,omitempty"`
	Code         *string `json:"code,omitempty"`
}

// BaseIntelligence is the intelligence score assigned to every freshly
// deployed agent.
const BaseIntelligence = 3000

// DefaultProfileImage is used when a deploy config carries no image.
const DefaultProfileImage = "/profiles/default.png"
