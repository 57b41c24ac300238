package resolve

import (
	"context"
	"log"
	"time"
)

// Proposer is the external proposal-generation service. Any non-empty
// response is usable verbatim; any failure triggers the canned fallback.
type Proposer interface {
	Propose(ctx context.Context, positions map[string]string, medianLeverage float64) (string, error)
}

// Stage is one step of the fixed local sequence. Stages always run in
// order and each dwells for at least MinDwell, regardless of how fast or
// slow the external call is.
type Stage struct {
	Name     string
	MinDwell time.Duration
}

// Stages returns the fixed three-stage sequence.
func Stages() []Stage {
	return []Stage{
		{Name: "analyzing positions", MinDwell: 1200 * time.Millisecond},
		{Name: "cross-referencing precedents", MinDwell: 1400 * time.Millisecond},
		{Name: "synthesizing compromise", MinDwell: 1600 * time.Millisecond},
	}
}

// Source identifies where the finalized proposal text came from.
type Source string

const (
	SourceLive   Source = "live"
	SourceCanned Source = "canned"
)

// Input carries everything one orchestration run needs.
type Input struct {
	Positions         map[string]string // short party name -> position statement
	MedianLeverage    float64
	Fallback          string // first canned resolution text
	FallbackRationale string
}

// Result is the finalized proposal handed to the review surface.
type Result struct {
	Text      string `json:"text"`
	Rationale string `json:"rationale"`
	Source    Source `json:"source"`
}

// Orchestrator produces one finalized proposal per run. The external
// call races the stage sequence but never blocks it; the user always
// gets a proposal.
type Orchestrator struct {
	proposer Proposer // nil when no credential is configured
	live     bool
	grace    time.Duration

	// sleep is swapped out by tests for a deterministic clock.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewOrchestrator(proposer Proposer, live bool) *Orchestrator {
	return &Orchestrator{
		proposer: proposer,
		live:     live,
		grace:    2 * time.Second,
		sleep:    sleepCtx,
	}
}

// WithClock replaces the dwell timer. Tests use it to run the stage
// sequence against a deterministic clock.
func (o *Orchestrator) WithClock(sleep func(ctx context.Context, d time.Duration) error) *Orchestrator {
	o.sleep = sleep
	return o
}

// Run walks the three stages, calling onStage as each begins, and
// returns the finalized proposal. In live mode the external call starts
// concurrently with the first stage; its result is read only once the
// final stage has dwelled, with one bounded grace wait. Errors from the
// external call are logged and absorbed into the fallback path. The only
// error Run itself returns is context cancellation.
func (o *Orchestrator) Run(ctx context.Context, in Input, onStage func(name string)) (Result, error) {
	resultCh := make(chan string, 1) // buffered: a late result is discarded, never leaked into stale state

	if o.live && o.proposer != nil {
		go func() {
			text, err := o.proposer.Propose(ctx, in.Positions, in.MedianLeverage)
			if err != nil {
				log.Printf("proposal service unavailable, will use canned resolution: %v", err)
				return
			}
			if text != "" {
				resultCh <- text
			}
		}()
	}

	for _, stage := range Stages() {
		if onStage != nil {
			onStage(stage.Name)
		}
		if err := o.sleep(ctx, stage.MinDwell); err != nil {
			return Result{}, err
		}
	}

	if text, ok := o.collect(ctx, resultCh); ok {
		return Result{Text: text, Rationale: in.FallbackRationale, Source: SourceLive}, nil
	}
	return Result{Text: in.Fallback, Rationale: in.FallbackRationale, Source: SourceCanned}, nil
}

// collect reads the live result if it has arrived, waiting up to the
// grace period when a call is outstanding.
func (o *Orchestrator) collect(ctx context.Context, resultCh <-chan string) (string, bool) {
	if !o.live || o.proposer == nil {
		return "", false
	}
	select {
	case text := <-resultCh:
		return text, true
	default:
	}
	timer := time.NewTimer(o.grace)
	defer timer.Stop()
	select {
	case text := <-resultCh:
		return text, true
	case <-timer.C:
		return "", false
	case <-ctx.Done():
		return "", false
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
