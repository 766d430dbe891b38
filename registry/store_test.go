package registry

import (
	"testing"

	"github.com/runereum-labs/runereum/core"
)

func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"first", "second", "third"} {
		s.Add(core.Agent{Name: name})
	}

	agents := s.List()
	if len(agents) != 3 {
		t.Fatalf("Expected 3 agents, got %d", len(agents))
	}
	for i, want := range []string{"first", "second", "third"} {
		if agents[i].Name != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, agents[i].Name)
		}
	}
}

func TestStoreRemoveKeepsOrder(t *testing.T) {
	s := NewStore()
	a := s.Add(core.Agent{Name: "a"})
	b := s.Add(core.Agent{Name: "b"})
	c := s.Add(core.Agent{Name: "c"})

	if _, ok := s.Remove(b.ID); !ok {
		t.Fatal("Remove failed")
	}

	agents := s.List()
	if len(agents) != 2 || agents[0].ID != a.ID || agents[1].ID != c.ID {
		t.Errorf("Unexpected order after remove: %+v", agents)
	}

	// The survivors are still reachable by id.
	if _, ok := s.Get(c.ID); !ok {
		t.Error("Agent c unreachable after reindex")
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	created := s.Add(core.Agent{
		Name: "a",
		Logs: []core.LogEntry{{Message: "init"}},
	})

	created.Logs[0].Message = "tampered"
	created.Name = "tampered"

	stored, _ := s.Get(created.ID)
	if stored.Name != "a" || stored.Logs[0].Message != "init" {
		t.Error("Store exposed internal state through returned copies")
	}
}

func TestStoreLoadContinuesIDs(t *testing.T) {
	s := NewStore()
	s.Load([]core.Agent{{ID: 4, Name: "x"}, {ID: 9, Name: "y"}})

	added := s.Add(core.Agent{Name: "z"})
	if added.ID != 10 {
		t.Errorf("Expected id 10 after loading up to 9, got %d", added.ID)
	}
}
