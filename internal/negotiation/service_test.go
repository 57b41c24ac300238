package negotiation

import (
	"testing"
	"time"
)

func newTestService() *Service {
	deal, negotiations := SeedSession()
	s := NewService(deal, negotiations)
	// Deterministic timestamps
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	i := 0
	s.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Second)
	}
	return s
}

func TestAcceptSetsResolution(t *testing.T) {
	s := newTestService()

	if err := s.Propose("neg-001", "compromise at 4.9x", "splits the gap", "resolution-engine"); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if err := s.Accept("neg-001", "deal-team"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	n, err := s.Negotiation("neg-001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if n.Status != StatusResolved {
		t.Errorf("status = %s, want resolved", n.Status)
	}
	if n.SelectedResolution != "compromise at 4.9x" {
		t.Errorf("selected resolution = %q", n.SelectedResolution)
	}
	if n.ResolutionRationale != "splits the gap" {
		t.Errorf("resolution rationale = %q", n.ResolutionRationale)
	}
}

func TestAcceptWithoutProposal(t *testing.T) {
	s := newTestService()
	if err := s.Accept("neg-001", "deal-team"); err != ErrNoProposal {
		t.Errorf("expected ErrNoProposal, got %v", err)
	}
}

func TestAcceptIsIdempotent(t *testing.T) {
	s := newTestService()
	s.Propose("neg-001", "compromise", "rationale", "resolution-engine")
	s.Accept("neg-001", "deal-team")

	before := len(s.Activities())
	if err := s.Accept("neg-001", "deal-team"); err != nil {
		t.Fatalf("repeat accept: %v", err)
	}
	if got := len(s.Activities()); got != before {
		t.Errorf("repeat accept appended an activity: %d -> %d", before, got)
	}
}

func TestModifyKeepsAcceptedResolution(t *testing.T) {
	s := newTestService()
	s.Propose("neg-001", "compromise at 4.9x", "splits the gap", "resolution-engine")
	s.Accept("neg-001", "deal-team")

	if err := s.Modify("neg-001", 4.75, "deal-team"); err != nil {
		t.Fatalf("modify: %v", err)
	}

	n, _ := s.Negotiation("neg-001")
	if n.Status != StatusDiscussing {
		t.Errorf("status = %s, want discussing", n.Status)
	}
	// Only the status moves; the accepted text survives.
	if n.SelectedResolution != "compromise at 4.9x" {
		t.Errorf("selected resolution = %q, want previous accepted text", n.SelectedResolution)
	}
	// The staged proposal is gone until a fresh orchestration run.
	if n.ProposedResolution != "" {
		t.Errorf("proposed resolution = %q, want empty", n.ProposedResolution)
	}
}

func TestModifyFromPending(t *testing.T) {
	s := newTestService()
	if err := s.Modify("neg-002", 1.75, "deal-team"); err != nil {
		t.Fatalf("modify: %v", err)
	}
	n, _ := s.Negotiation("neg-002")
	if n.Status != StatusDiscussing {
		t.Errorf("status = %s, want discussing", n.Status)
	}
	if n.SelectedResolution != "" {
		t.Errorf("selected resolution = %q, want empty", n.SelectedResolution)
	}
}

func TestUnknownNegotiation(t *testing.T) {
	s := newTestService()
	if err := s.Accept("neg-999", "deal-team"); err != ErrNotFound {
		t.Errorf("accept: expected ErrNotFound, got %v", err)
	}
	if err := s.Modify("neg-999", 5.0, "deal-team"); err != ErrNotFound {
		t.Errorf("modify: expected ErrNotFound, got %v", err)
	}
	if err := s.Propose("neg-999", "text", "why", "resolution-engine"); err != ErrNotFound {
		t.Errorf("propose: expected ErrNotFound, got %v", err)
	}
}

func TestCirculateRequiresAllResolved(t *testing.T) {
	s := newTestService()
	s.Propose("neg-001", "compromise", "rationale", "resolution-engine")
	s.Accept("neg-001", "deal-team")

	if err := s.Circulate("deal-team"); err != ErrUnresolved {
		t.Fatalf("expected ErrUnresolved with an open negotiation, got %v", err)
	}

	s.Propose("neg-002", "cap at 2.0x", "rationale", "resolution-engine")
	s.Accept("neg-002", "deal-team")

	if err := s.Circulate("deal-team"); err != nil {
		t.Fatalf("circulate: %v", err)
	}
	for _, n := range s.Negotiations() {
		if n.Status != StatusApproved {
			t.Errorf("%s status = %s, want approved", n.ID, n.Status)
		}
	}
	if !s.Deal().Circulated {
		t.Error("deal not marked circulated")
	}

	// Approved is terminal for the session
	if err := s.Modify("neg-001", 4.5, "deal-team"); err != ErrAlreadyApproved {
		t.Errorf("modify after circulate: expected ErrAlreadyApproved, got %v", err)
	}
	// Re-circulating is a no-op
	before := len(s.Activities())
	if err := s.Circulate("deal-team"); err != nil {
		t.Fatalf("repeat circulate: %v", err)
	}
	if got := len(s.Activities()); got != before {
		t.Errorf("repeat circulate appended an activity: %d -> %d", before, got)
	}
}

func TestActivitiesAppendOrdered(t *testing.T) {
	s := newTestService()
	s.Propose("neg-001", "compromise", "rationale", "resolution-engine")
	s.Accept("neg-001", "deal-team")
	s.Modify("neg-001", 4.75, "deal-team")

	activities := s.Activities()
	if len(activities) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(activities))
	}
	wantVerbs := []string{"proposed", "accepted", "modified"}
	for i, a := range activities {
		if a.Verb != wantVerbs[i] {
			t.Errorf("activity %d verb = %s, want %s", i, a.Verb, wantVerbs[i])
		}
		if a.ID == "" {
			t.Errorf("activity %d has no ID", i)
		}
	}
	for i := 1; i < len(activities); i++ {
		if activities[i].Timestamp.Before(activities[i-1].Timestamp) {
			t.Errorf("activity %d out of order", i)
		}
	}
}

func TestReadsAreSnapshots(t *testing.T) {
	s := newTestService()
	n, _ := s.Negotiation("neg-001")
	n.Status = StatusApproved
	n.Positions[0].Statement = "tampered"

	fresh, _ := s.Negotiation("neg-001")
	if fresh.Status != StatusPending {
		t.Errorf("mutating a snapshot leaked into the store: status = %s", fresh.Status)
	}
	if fresh.Positions[0].Statement == "tampered" {
		t.Error("mutating a snapshot's positions leaked into the store")
	}
}
