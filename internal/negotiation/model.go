package negotiation

import "time"

// Status is the lifecycle state of a negotiation.
// pending -> discussing -> resolved -> approved (terminal for the session).
type Status string

const (
	StatusPending    Status = "pending"
	StatusDiscussing Status = "discussing"
	StatusResolved   Status = "resolved"
	StatusApproved   Status = "approved"
)

// Party is one organization on the deal. Created at deal setup and
// read-only during a negotiation session.
type Party struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ShortName    string  `json:"short_name"`
	Role         string  `json:"role"`
	CommitmentMM float64 `json:"commitment_mm"`
	Contact      string  `json:"contact"`

	// Preference thresholds stated at setup.
	MaxLeverage         float64 `json:"max_leverage"`
	MinInterestCoverage float64 `json:"min_interest_coverage"`
	RequiresESG         bool    `json:"requires_esg"`
}

// Position is a party's stated stance on one negotiation. Fixed input to
// classification; the engine never mutates it.
type Position struct {
	PartyID   string `json:"party_id"`
	Statement string `json:"statement"`
	Rationale string `json:"rationale"`
}

// AIResolution is one proposed compromise, either pre-authored (the
// canned fallback) or produced by the external service.
type AIResolution struct {
	ResolutionText        string   `json:"resolution_text"`
	AcceptanceProbability float64  `json:"acceptance_probability"`
	Rationale             string   `json:"rationale"`
	Pros                  []string `json:"pros"`
	Cons                  []string `json:"cons"`
	AffectedClauses       []string `json:"affected_clauses"`
}

// MarketContext is the benchmark snapshot attached to a negotiation for
// display alongside the parties' positions.
type MarketContext struct {
	SampleSize      int     `json:"sample_size"`
	MedianLeverage  float64 `json:"median_leverage"`
	MedianMarginBps float64 `json:"median_margin_bps"`
}

// Negotiation is the mutable unit of work.
type Negotiation struct {
	ID          string         `json:"id"`
	DealID      string         `json:"deal_id"`
	Clause      string         `json:"clause"`
	Description string         `json:"description"`
	PartyIDs    []string       `json:"party_ids"`
	Positions   []Position     `json:"positions"`
	Market      *MarketContext `json:"market,omitempty"`
	Resolutions []AIResolution `json:"resolutions"`

	// Classification parameters for this clause.
	TargetValue float64 `json:"target_value"`
	Tolerance   float64 `json:"tolerance"`

	// ProposedResolution is the orchestrator's finalized proposal awaiting
	// human review. Cleared again when the negotiation re-enters discussion.
	ProposedResolution string `json:"proposed_resolution,omitempty"`
	ProposedRationale  string `json:"proposed_rationale,omitempty"`

	// SelectedResolution is set on accept and survives a later modify.
	SelectedResolution  string `json:"selected_resolution,omitempty"`
	ResolutionRationale string `json:"resolution_rationale,omitempty"`

	Status Status `json:"status"`
}

// Deal groups the parties and negotiations of the active session.
type Deal struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Borrower   string  `json:"borrower"`
	FacilityMM float64 `json:"facility_mm"`
	Parties    []Party `json:"parties"`
	Circulated bool    `json:"circulated"`
}

// Activity is an append-only audit log entry. Never mutated after
// creation.
type Activity struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Actor       string    `json:"actor"`
	Verb        string    `json:"verb"`
	Target      string    `json:"target"`
	Description string    `json:"description"`
}
