package negotiation

// SeedSession builds the demo deal and its open negotiations. Market
// context values mirror the comparable-deal dataset medians.
func SeedSession() (*Deal, []*Negotiation) {
	deal := &Deal{
		ID:         "deal-001",
		Name:       "Project Meridian Term Loan B",
		Borrower:   "Meridian Packaging",
		FacilityMM: 1200,
		Parties: []Party{
			{
				ID: "party-apex", Name: "Apex Capital Partners", ShortName: "Apex",
				Role: "Lead Arranger", CommitmentMM: 400, Contact: "syndications@apexcap.example",
				MaxLeverage: 5.0, MinInterestCoverage: 2.5, RequiresESG: false,
			},
			{
				ID: "party-northgate", Name: "Northgate Credit Fund", ShortName: "Northgate",
				Role: "Lender", CommitmentMM: 350, Contact: "credit@northgate.example",
				MaxLeverage: 4.5, MinInterestCoverage: 3.0, RequiresESG: true,
			},
			{
				ID: "party-sterling", Name: "Sterling Mezzanine LLC", ShortName: "Sterling",
				Role: "Lender", CommitmentMM: 250, Contact: "deals@sterlingmezz.example",
				MaxLeverage: 5.5, MinInterestCoverage: 2.0, RequiresESG: false,
			},
		},
	}

	negotiations := []*Negotiation{
		{
			ID:          "neg-001",
			DealID:      deal.ID,
			Clause:      "Section 7.1 — Maximum Leverage Ratio",
			Description: "Parties disagree on the opening net leverage covenant level.",
			PartyIDs:    []string{"party-apex", "party-northgate", "party-sterling"},
			TargetValue: 5.0,
			Tolerance:   0.1,
			Market: &MarketContext{
				SampleSize:      10,
				MedianLeverage:  4.95,
				MedianMarginBps: 420,
			},
			Positions: []Position{
				{
					PartyID:   "party-apex",
					Statement: "5.0x leverage ratio with equity cure rights",
					Rationale: "Consistent with sponsor-friendly market terms for this rating band.",
				},
				{
					PartyID:   "party-northgate",
					Statement: "4.5x leverage ratio, no step-downs",
					Rationale: "Fund mandate caps portfolio exposure at 4.5x opening leverage.",
				},
				{
					PartyID:   "party-sterling",
					Statement: "5.0x acceptable if margin ratchet tied to deleveraging",
					Rationale: "Comfortable at market median with pricing protection.",
				},
			},
			Resolutions: []AIResolution{
				{
					ResolutionText:        "Set opening maximum leverage at 4.9x, stepping down to 4.5x after eight quarters, with two equity cure rights over the life of the facility and a 25bps margin step-down on reaching 4.5x.",
					AcceptanceProbability: 0.78,
					Rationale:             "Splits the gap near the market median of 4.95x while giving the conservative lender a contractual path to its 4.5x cap.",
					Pros:                  []string{"Within one tick of the comparable-deal median", "Step-down addresses Northgate's mandate cap", "Cure rights preserve sponsor flexibility"},
					Cons:                  []string{"Sterling's ratchet applies only after the step-down", "Eight-quarter horizon may outlast the fund's review cycle"},
					AffectedClauses:       []string{"Section 7.1", "Section 7.4 — Equity Cure", "Section 2.8 — Applicable Margin"},
				},
			},
			Status: StatusPending,
		},
		{
			ID:          "neg-002",
			DealID:      deal.ID,
			Clause:      "Section 7.4 — Equity Cure Cap",
			Description: "Dispute over how much EBITDA shortfall an equity cure may cover.",
			PartyIDs:    []string{"party-apex", "party-northgate"},
			TargetValue: 2.0,
			Tolerance:   0.1,
			Positions: []Position{
				{
					PartyID:   "party-apex",
					Statement: "Cure contributions capped at 2.0x of the covenant shortfall",
					Rationale: "Standard cap in recent sponsor precedents.",
				},
				{
					PartyID:   "party-northgate",
					Statement: "Cap cures at 1.5x shortfall and limit to three uses",
					Rationale: "Overcuring masks sustained underperformance.",
				},
			},
			Resolutions: []AIResolution{
				{
					ResolutionText:        "Cap equity cure contributions at 2.0x of the shortfall, limited to four uses over the facility life and no more than two in consecutive quarters.",
					AcceptanceProbability: 0.71,
					Rationale:             "Keeps the sponsor's headline cap while adopting the lender's frequency limits.",
					Pros:                  []string{"Headline cap matches sponsor precedent", "Frequency limit addresses overcuring concern"},
					Cons:                  []string{"Lower cap not achieved for Northgate"},
					AffectedClauses:       []string{"Section 7.4"},
				},
			},
			Status: StatusPending,
		},
	}

	return deal, negotiations
}
