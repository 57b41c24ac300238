package negotiation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("negotiation not found")
	ErrNoProposal      = errors.New("no finalized proposal awaiting review")
	ErrAlreadyApproved = errors.New("negotiation already approved")
	ErrUnresolved      = errors.New("deal has unresolved negotiations")
)

// Service owns the canonical negotiation and activity collections for
// the active session. All lifecycle mutations go through its named
// operations; every read returns a fresh snapshot.
type Service struct {
	mu           sync.Mutex
	deal         *Deal
	negotiations map[string]*Negotiation
	order        []string
	activities   []Activity

	now func() time.Time
}

func NewService(deal *Deal, negotiations []*Negotiation) *Service {
	s := &Service{
		deal:         deal,
		negotiations: make(map[string]*Negotiation, len(negotiations)),
		now:          time.Now,
	}
	for _, n := range negotiations {
		s.negotiations[n.ID] = n
		s.order = append(s.order, n.ID)
	}
	return s
}

// NewServiceFromSnapshot rebuilds a service from persisted session
// state, including the audit log.
func NewServiceFromSnapshot(deal Deal, negotiations []Negotiation, activities []Activity) *Service {
	ptrs := make([]*Negotiation, len(negotiations))
	for i := range negotiations {
		n := negotiations[i]
		ptrs[i] = &n
	}
	s := NewService(&deal, ptrs)
	s.activities = append([]Activity(nil), activities...)
	return s
}

// Export returns a copy of the full session state for snapshotting.
func (s *Service) Export() (Deal, []Negotiation, []Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := *s.deal
	d.Parties = append([]Party(nil), s.deal.Parties...)
	negs := make([]Negotiation, 0, len(s.order))
	for _, id := range s.order {
		negs = append(negs, copyNegotiation(s.negotiations[id]))
	}
	return d, negs, append([]Activity(nil), s.activities...)
}

// Deal returns a snapshot of the deal.
func (s *Service) Deal() Deal {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := *s.deal
	d.Parties = append([]Party(nil), s.deal.Parties...)
	return d
}

// Party looks up a deal party by ID.
func (s *Service) Party(id string) (Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.deal.Parties {
		if p.ID == id {
			return p, nil
		}
	}
	return Party{}, fmt.Errorf("party %s not found", id)
}

// Negotiations returns snapshots of all negotiations in creation order.
func (s *Service) Negotiations() []Negotiation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Negotiation, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyNegotiation(s.negotiations[id]))
	}
	return out
}

// Negotiation returns a snapshot of one negotiation.
func (s *Service) Negotiation(id string) (Negotiation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.negotiations[id]
	if !ok {
		return Negotiation{}, ErrNotFound
	}
	return copyNegotiation(n), nil
}

// Propose stores the orchestrator's finalized proposal on the
// negotiation, putting it in front of human review.
func (s *Service) Propose(id, text, rationale, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.negotiations[id]
	if !ok {
		return ErrNotFound
	}
	if n.Status == StatusApproved {
		return ErrAlreadyApproved
	}
	n.ProposedResolution = text
	n.ProposedRationale = rationale
	s.appendActivity(actor, "proposed", n.ID, fmt.Sprintf("Proposed resolution for %s", n.Clause))
	return nil
}

// Accept commits the proposal under review: status becomes resolved and
// the selected resolution is set in the same operation. Accepting an
// already-resolved negotiation is a no-op.
func (s *Service) Accept(id, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.negotiations[id]
	if !ok {
		return ErrNotFound
	}
	if n.Status == StatusResolved || n.Status == StatusApproved {
		return nil
	}
	if n.ProposedResolution == "" {
		return ErrNoProposal
	}
	n.Status = StatusResolved
	n.SelectedResolution = n.ProposedResolution
	n.ResolutionRationale = n.ProposedRationale
	s.appendActivity(actor, "accepted", n.ID, fmt.Sprintf("Accepted resolution for %s", n.Clause))
	return nil
}

// Modify sends the negotiation back into discussion with a counter
// value. A previously accepted SelectedResolution is retained; only the
// status moves. The staged proposal is cleared pending a fresh
// orchestration run.
func (s *Service) Modify(id string, newValue float64, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.negotiations[id]
	if !ok {
		return ErrNotFound
	}
	if n.Status == StatusApproved {
		return ErrAlreadyApproved
	}
	n.Status = StatusDiscussing
	n.ProposedResolution = ""
	n.ProposedRationale = ""
	s.appendActivity(actor, "modified", n.ID, fmt.Sprintf("Requested modification of %s to %.2fx", n.Clause, newValue))
	return nil
}

// Circulate approves the resolved terms deal-wide. Every negotiation
// must already be resolved; the transition is not reversible within the
// session. Circulating twice is a no-op.
func (s *Service) Circulate(actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deal.Circulated {
		return nil
	}
	for _, id := range s.order {
		n := s.negotiations[id]
		if n.Status != StatusResolved && n.Status != StatusApproved {
			return ErrUnresolved
		}
	}
	for _, id := range s.order {
		s.negotiations[id].Status = StatusApproved
	}
	s.deal.Circulated = true
	s.appendActivity(actor, "circulated", s.deal.ID, fmt.Sprintf("Circulated resolved terms for %s", s.deal.Name))
	return nil
}

// Activities returns the audit log in append order.
func (s *Service) Activities() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Activity(nil), s.activities...)
}

// appendActivity must be called with the mutex held.
func (s *Service) appendActivity(actor, verb, target, description string) {
	s.activities = append(s.activities, Activity{
		ID:          uuid.NewString(),
		Timestamp:   s.now(),
		Actor:       actor,
		Verb:        verb,
		Target:      target,
		Description: description,
	})
}

func copyNegotiation(n *Negotiation) Negotiation {
	out := *n
	out.PartyIDs = append([]string(nil), n.PartyIDs...)
	out.Positions = append([]Position(nil), n.Positions...)
	out.Resolutions = append([]AIResolution(nil), n.Resolutions...)
	if n.Market != nil {
		m := *n.Market
		out.Market = &m
	}
	return out
}
