// Package chat maintains per-session transcripts between a user and a
// selected agent. Replies come from the ai.Responder; everything else
// about the conversation (pending placeholders, the cosmetic tx hash on
// each reply) is simulation.
package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/runereum-labs/runereum/ai"
	"github.com/runereum-labs/runereum/core"
)

// ErrEmptyMessage is returned for whitespace-only input. No network
// call is made and the transcript is untouched.
var ErrEmptyMessage = errors.New("empty chat message")

const hexDigits = "0123456789abcdef"

// Simulator owns the transcripts. Transcripts are append-only; the only
// removal ever performed is the pending placeholder of a failed request.
type Simulator struct {
	responder   ai.Responder
	explorerURL string

	mu          sync.Mutex
	transcripts map[string][]core.ChatMessage
	rng         *rand.Rand
	now         func() time.Time
}

// NewSimulator wires a responder and the explorer used for reply links.
func NewSimulator(responder ai.Responder, explorerURL string) *Simulator {
	return &Simulator{
		responder:   responder,
		explorerURL: explorerURL,
		transcripts: make(map[string][]core.ChatMessage),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
}

// WithRand replaces the randomness source, used by tests.
func (s *Simulator) WithRand(r *rand.Rand) *Simulator {
	s.rng = r
	return s
}

// WithClock overrides the timestamp source, used by tests.
func (s *Simulator) WithClock(now func() time.Time) *Simulator {
	s.now = now
	return s
}

// Send appends the user's message and a pending placeholder, forwards
// the message to the responder, and resolves the placeholder: replaced
// by the reply on success, removed on failure. The user's own message
// survives either way.
func (s *Simulator) Send(ctx context.Context, sessionID string, agent ai.AgentContext, text string) (core.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return core.ChatMessage{}, ErrEmptyMessage
	}

	userMsg := core.ChatMessage{
		ID:        uuid.NewString(),
		Role:      core.RoleUser,
		Content:   text,
		Timestamp: s.now(),
	}
	pending := core.ChatMessage{
		ID:        uuid.NewString(),
		Role:      core.RoleAgent,
		Content:   "...",
		Timestamp: s.now(),
		Pending:   true,
	}

	s.mu.Lock()
	s.transcripts[sessionID] = append(s.transcripts[sessionID], userMsg, pending)
	s.mu.Unlock()

	systemPrompt := ai.BuildSystemPrompt(agent, s.explorerURL)
	reply, err := s.responder.Respond(ctx, systemPrompt, text)
	if err != nil {
		s.removeMessage(sessionID, pending.ID)
		return core.ChatMessage{}, fmt.Errorf("chat request failed: %w", err)
	}

	txHash := s.mockTxHash()
	agentMsg := core.ChatMessage{
		ID:               uuid.NewString(),
		Role:             core.RoleAgent,
		Content:          reply,
		Timestamp:        s.now(),
		TransactionHash:  txHash,
		BlockExplorerURL: fmt.Sprintf("%s/tx/%s", s.explorerURL, txHash),
	}
	s.replaceMessage(sessionID, pending.ID, agentMsg)
	return agentMsg, nil
}

// Transcript returns a copy of the session's messages.
func (s *Simulator) Transcript(sessionID string) []core.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.transcripts[sessionID]
	out := make([]core.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

// DropSession discards a session's transcript. There is no user-facing
// clear operation; this exists for session expiry.
func (s *Simulator) DropSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transcripts, sessionID)
}

func (s *Simulator) removeMessage(sessionID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.transcripts[sessionID]
	for i, m := range msgs {
		if m.ID == id {
			s.transcripts[sessionID] = append(msgs[:i], msgs[i+1:]...)
			return
		}
	}
}

func (s *Simulator) replaceMessage(sessionID, id string, replacement core.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.transcripts[sessionID]
	for i, m := range msgs {
		if m.ID == id {
			msgs[i] = replacement
			return
		}
	}
	// Placeholder already gone (session dropped mid-flight); append so
	// the reply is not lost.
	s.transcripts[sessionID] = append(msgs, replacement)
}

// mockTxHash synthesizes a 64-digit hex hash. It is cosmetic and not
// linked to any real on-chain event.
func (s *Simulator) mockTxHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("0x")
	for i := 0; i < 64; i++ {
		b.WriteByte(hexDigits[s.rng.Intn(len(hexDigits))])
	}
	return b.String()
}
