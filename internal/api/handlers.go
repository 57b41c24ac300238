package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lsta-labs/dealdesk/internal/market"
	"github.com/lsta-labs/dealdesk/internal/negotiation"
	"github.com/lsta-labs/dealdesk/internal/resolve"
	"github.com/lsta-labs/dealdesk/internal/snapshot"
)

const defaultActor = "deal-team"

func (a *API) handleMarketStats(w http.ResponseWriter, r *http.Request) {
	stats, err := market.ComputeStats(market.Comparables())
	if err != nil {
		http.Error(w, "failed to compute market stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

func (a *API) handleComparables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, market.Comparables())
}

func (a *API) handleComparablesExport(w http.ResponseWriter, r *http.Request) {
	data, err := market.ExportCSV(market.Comparables())
	if err != nil {
		http.Error(w, "failed to export comparables", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="comparable_deals.csv"`)
	w.Write(data)
}

func (a *API) handleDeal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.negotiations.Deal())
}

func (a *API) handleListNegotiations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.negotiations.Negotiations())
}

func (a *API) handleGetNegotiation(w http.ResponseWriter, r *http.Request) {
	n, err := a.negotiations.Negotiation(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "negotiation not found", http.StatusNotFound)
		return
	}
	writeJSON(w, n)
}

type positionClassification struct {
	Party     string                `json:"party"`
	Statement string                `json:"statement"`
	Extracted float64               `json:"extracted"`
	Alignment negotiation.Alignment `json:"alignment"`
}

func (a *API) handleClassification(w http.ResponseWriter, r *http.Request) {
	n, err := a.negotiations.Negotiation(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "negotiation not found", http.StatusNotFound)
		return
	}

	classifier := negotiation.NewClassifier(n.TargetValue, n.Tolerance)
	results := make([]positionClassification, 0, len(n.Positions))
	conflicts := 0
	for _, pos := range n.Positions {
		alignment, extracted := classifier.Classify(pos.Statement)
		if alignment == negotiation.AlignmentConflict {
			conflicts++
		}
		results = append(results, positionClassification{
			Party:     a.partyShortName(pos.PartyID),
			Statement: pos.Statement,
			Extracted: extracted,
			Alignment: alignment,
		})
	}

	writeJSON(w, map[string]any{
		"negotiation_id": n.ID,
		"target":         n.TargetValue,
		"tolerance":      n.Tolerance,
		"conflicts":      conflicts,
		"positions":      results,
	})
}

func (a *API) handleResolve(w http.ResponseWriter, r *http.Request) {
	n, err := a.negotiations.Negotiation(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "negotiation not found", http.StatusNotFound)
		return
	}
	if len(n.Resolutions) == 0 {
		http.Error(w, "negotiation has no canned resolution to fall back on", http.StatusConflict)
		return
	}

	positions := make(map[string]string, len(n.Positions))
	for _, pos := range n.Positions {
		positions[a.partyShortName(pos.PartyID)] = pos.Statement
	}

	medianLeverage := 0.0
	if stats, err := market.ComputeStats(market.Comparables()); err == nil {
		medianLeverage = stats.LeverageMedian
	}

	var stages []string
	result, err := a.orchestrator.Run(r.Context(), resolve.Input{
		Positions:         positions,
		MedianLeverage:    medianLeverage,
		Fallback:          n.Resolutions[0].ResolutionText,
		FallbackRationale: n.Resolutions[0].Rationale,
	}, func(name string) {
		stages = append(stages, name)
	})
	if err != nil {
		// Only context cancellation reaches here; the client is gone.
		log.Printf("resolution run aborted: %v", err)
		return
	}

	if err := a.negotiations.Propose(n.ID, result.Text, result.Rationale, "resolution-engine"); err != nil {
		writeServiceError(w, err)
		return
	}
	a.saveSnapshot()

	writeJSON(w, map[string]any{
		"negotiation_id": n.ID,
		"proposal":       result.Text,
		"rationale":      result.Rationale,
		"source":         result.Source,
		"stages":         stages,
	})
}

func (a *API) handleAccept(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := a.negotiations.Accept(id, actorFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	a.saveSnapshot()

	n, _ := a.negotiations.Negotiation(id)
	writeJSON(w, map[string]any{
		"message":     "resolution accepted",
		"negotiation": n,
	})
}

func (a *API) handleModify(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Value float64 `json:"value"`
		Actor string  `json:"actor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	actor := req.Actor
	if actor == "" {
		actor = defaultActor
	}

	if err := a.negotiations.Modify(id, req.Value, actor); err != nil {
		writeServiceError(w, err)
		return
	}
	a.saveSnapshot()

	n, _ := a.negotiations.Negotiation(id)
	writeJSON(w, map[string]any{
		"message":     fmt.Sprintf("modification to %.2fx recorded", req.Value),
		"negotiation": n,
	})
}

func (a *API) handleCirculate(w http.ResponseWriter, r *http.Request) {
	if err := a.negotiations.Circulate(actorFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	a.saveSnapshot()

	writeJSON(w, map[string]any{
		"message": "resolved terms circulated",
		"deal":    a.negotiations.Deal(),
	})
}

func (a *API) handleActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.negotiations.Activities())
}

// partyShortName resolves a party ID for display, falling back to the
// raw ID for parties no longer on the deal.
func (a *API) partyShortName(partyID string) string {
	p, err := a.negotiations.Party(partyID)
	if err != nil {
		return partyID
	}
	return p.ShortName
}

// saveSnapshot persists the session after a successful mutation.
// Persistence failures are logged, never surfaced to the client.
func (a *API) saveSnapshot() {
	if a.persister == nil {
		return
	}
	deal, negotiations, activities := a.negotiations.Export()
	sess := &snapshot.Session{Deal: deal, Negotiations: negotiations, Activities: activities}
	if err := a.persister.Save(context.Background(), sess); err != nil {
		log.Printf("failed to save session snapshot: %v", err)
	}
}

func actorFrom(r *http.Request) string {
	var req struct {
		Actor string `json:"actor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Actor == "" {
		return defaultActor
	}
	return req.Actor
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, negotiation.ErrNotFound):
		http.Error(w, "negotiation not found", http.StatusNotFound)
	case errors.Is(err, negotiation.ErrNoProposal):
		http.Error(w, "no finalized proposal awaiting review", http.StatusConflict)
	case errors.Is(err, negotiation.ErrAlreadyApproved):
		http.Error(w, "negotiation already approved", http.StatusConflict)
	case errors.Is(err, negotiation.ErrUnresolved):
		http.Error(w, "all negotiations must be resolved before circulation", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
