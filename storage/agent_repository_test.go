package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/runereum-labs/runereum/core"
)

func testRepository(t *testing.T) *AgentRepository {
	t.Helper()
	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory storage: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAgentRepository(db)
}

func TestSaveAndGetAgent(t *testing.T) {
	repo := testRepository(t)

	agent := core.Agent{
		ID:           3,
		Name:         "Luna AI",
		Ticker:       "$LUNA",
		Intelligence: 4193,
		Status:       core.StatusActive,
		Logs: []core.LogEntry{{
			Timestamp: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
			Message:   "Agent initialized successfully",
			Type:      core.LogSuccess,
		}},
	}

	if err := repo.SaveAgent(agent); err != nil {
		t.Fatalf("SaveAgent failed: %v", err)
	}

	loaded, err := repo.GetAgent(3)
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	if loaded.Name != "Luna AI" || loaded.Intelligence != 4193 {
		t.Errorf("Round trip lost data: %+v", loaded)
	}
	if len(loaded.Logs) != 1 || loaded.Logs[0].Type != core.LogSuccess {
		t.Errorf("Logs not preserved: %+v", loaded.Logs)
	}
}

func TestGetAgentMissing(t *testing.T) {
	repo := testRepository(t)

	_, err := repo.GetAgent(99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetAllAgentsOrdered(t *testing.T) {
	repo := testRepository(t)

	// Insert out of order; ids above 9 exercise the key padding.
	for _, id := range []int{12, 3, 7, 1} {
		if err := repo.SaveAgent(core.Agent{ID: id, Name: "A", Ticker: "T"}); err != nil {
			t.Fatalf("SaveAgent %d failed: %v", id, err)
		}
	}

	agents, err := repo.GetAllAgents()
	if err != nil {
		t.Fatalf("GetAllAgents failed: %v", err)
	}
	if len(agents) != 4 {
		t.Fatalf("Expected 4 agents, got %d", len(agents))
	}
	for i, want := range []int{1, 3, 7, 12} {
		if agents[i].ID != want {
			t.Errorf("Position %d: expected id %d, got %d", i, want, agents[i].ID)
		}
	}
}

func TestDeleteAgent(t *testing.T) {
	repo := testRepository(t)

	if err := repo.SaveAgent(core.Agent{ID: 1, Name: "A", Ticker: "T"}); err != nil {
		t.Fatalf("SaveAgent failed: %v", err)
	}
	if err := repo.DeleteAgent(1); err != nil {
		t.Fatalf("DeleteAgent failed: %v", err)
	}
	if _, err := repo.GetAgent(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestTranscriptRoundTrip(t *testing.T) {
	repo := testRepository(t)

	msgs := []core.ChatMessage{
		{ID: "m1", Role: core.RoleUser, Content: "hello"},
		{ID: "m2", Role: core.RoleAgent, Content: "hi", TransactionHash: "0xabc"},
	}
	if err := repo.SaveTranscript("s1", msgs); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	loaded, err := repo.GetTranscript("s1")
	if err != nil {
		t.Fatalf("GetTranscript failed: %v", err)
	}
	if len(loaded) != 2 || loaded[1].TransactionHash != "0xabc" {
		t.Errorf("Transcript round trip lost data: %+v", loaded)
	}
}

func TestMetricsCountOperations(t *testing.T) {
	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory storage: %v", err)
	}
	defer db.Close()

	if err := db.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := db.Get("k"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if err := db.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	m := db.Metrics()
	if m.PutCount != 1 || m.GetCount != 1 || m.DeleteCount != 1 {
		t.Errorf("Unexpected metrics: %+v", m)
	}
}
