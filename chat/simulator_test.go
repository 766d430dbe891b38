package chat

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/runereum-labs/runereum/ai"
	"github.com/runereum-labs/runereum/core"
)

type scriptedResponder struct {
	reply string
	err   error
	calls int
}

func (r *scriptedResponder) Respond(ctx context.Context, systemPrompt, message string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.reply, nil
}

const explorer = "https://sepolia.basescan.org"

func TestSendSuccess(t *testing.T) {
	responder := &scriptedResponder{reply: "LUNA is mooning today."}
	s := NewSimulator(responder, explorer).WithRand(rand.New(rand.NewSource(1)))

	reply, err := s.Send(context.Background(), "s1", ai.AgentContext{Name: "Luna AI"}, "How is LUNA doing?")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if reply.Content != "LUNA is mooning today." {
		t.Errorf("Unexpected reply: %q", reply.Content)
	}
	if reply.Role != core.RoleAgent {
		t.Errorf("Expected agent role, got %s", reply.Role)
	}
	if reply.Pending {
		t.Error("Resolved reply must not be pending")
	}

	matched, _ := regexp.MatchString(`^0x[0-9a-f]{64}$`, reply.TransactionHash)
	if !matched {
		t.Errorf("Expected 64-digit hex tx hash, got %q", reply.TransactionHash)
	}
	if reply.BlockExplorerURL != explorer+"/tx/"+reply.TransactionHash {
		t.Errorf("Unexpected explorer URL: %q", reply.BlockExplorerURL)
	}

	msgs := s.Transcript("s1")
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 transcript messages, got %d", len(msgs))
	}
	if msgs[0].Role != core.RoleUser || msgs[0].Content != "How is LUNA doing?" {
		t.Errorf("Unexpected user message: %+v", msgs[0])
	}
	if msgs[1].Pending {
		t.Error("Placeholder was not replaced by the reply")
	}
}

func TestSendEmptyMessage(t *testing.T) {
	responder := &scriptedResponder{reply: "unused"}
	s := NewSimulator(responder, explorer)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := s.Send(context.Background(), "s1", ai.AgentContext{}, input)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Input %q: expected ErrEmptyMessage, got %v", input, err)
		}
	}

	if responder.calls != 0 {
		t.Errorf("Empty input must not reach the responder, got %d calls", responder.calls)
	}
	if len(s.Transcript("s1")) != 0 {
		t.Error("Empty input must not touch the transcript")
	}
}

func TestSendFailureRemovesOnlyPlaceholder(t *testing.T) {
	responder := &scriptedResponder{err: errors.New("rate limited")}
	s := NewSimulator(responder, explorer)

	_, err := s.Send(context.Background(), "s1", ai.AgentContext{}, "hello")
	if err == nil {
		t.Fatal("Expected error from failing responder")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("Expected wrapped responder error, got %v", err)
	}

	msgs := s.Transcript("s1")
	if len(msgs) != 1 {
		t.Fatalf("Expected only the user message to survive, got %d messages", len(msgs))
	}
	if msgs[0].Role != core.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("User message was lost: %+v", msgs[0])
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	responder := &scriptedResponder{reply: "ok"}
	s := NewSimulator(responder, explorer)

	if _, err := s.Send(context.Background(), "a", ai.AgentContext{}, "first"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := s.Send(context.Background(), "b", ai.AgentContext{}, "second"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(s.Transcript("a")) != 2 || len(s.Transcript("b")) != 2 {
		t.Errorf("Sessions bled into each other: a=%d b=%d", len(s.Transcript("a")), len(s.Transcript("b")))
	}

	s.DropSession("a")
	if len(s.Transcript("a")) != 0 {
		t.Error("Dropped session still has messages")
	}
	if len(s.Transcript("b")) != 2 {
		t.Error("Dropping one session affected another")
	}
}

func TestTranscriptReturnsCopy(t *testing.T) {
	responder := &scriptedResponder{reply: "ok"}
	s := NewSimulator(responder, explorer)

	if _, err := s.Send(context.Background(), "s1", ai.AgentContext{}, "hi"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	msgs := s.Transcript("s1")
	msgs[0].Content = "tampered"

	if s.Transcript("s1")[0].Content != "hi" {
		t.Error("Transcript exposed internal state")
	}
}
