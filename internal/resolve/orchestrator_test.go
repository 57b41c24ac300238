package resolve

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubProposer struct {
	text  string
	err   error
	delay time.Duration
}

func (p *stubProposer) Propose(ctx context.Context, positions map[string]string, medianLeverage float64) (string, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return p.text, p.err
}

// fakeClock records dwell requests instead of sleeping.
type fakeClock struct {
	dwells []time.Duration
}

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) error {
	c.dwells = append(c.dwells, d)
	return ctx.Err()
}

func testInput() Input {
	return Input{
		Positions:         map[string]string{"Apex": "5.0x with cures", "Northgate": "4.5x, no step-downs"},
		MedianLeverage:    4.95,
		Fallback:          "canned compromise at 4.9x",
		FallbackRationale: "splits the gap",
	}
}

func TestRunFallbackWhenLiveDisabled(t *testing.T) {
	o := NewOrchestrator(&stubProposer{text: "live text"}, false)
	clock := &fakeClock{}
	o.sleep = clock.sleep

	result, err := o.Run(context.Background(), testInput(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Text != "canned compromise at 4.9x" {
		t.Errorf("text = %q, want the canned resolution verbatim", result.Text)
	}
	if result.Source != SourceCanned {
		t.Errorf("source = %s, want canned", result.Source)
	}
}

func TestRunStagesOrderedWithMinimumDwell(t *testing.T) {
	o := NewOrchestrator(nil, false)
	clock := &fakeClock{}
	o.sleep = clock.sleep

	var seen []string
	_, err := o.Run(context.Background(), testInput(), func(name string) {
		seen = append(seen, name)
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	stages := Stages()
	if len(seen) != len(stages) {
		t.Fatalf("got %d stages, want %d", len(seen), len(stages))
	}
	for i, stage := range stages {
		if seen[i] != stage.Name {
			t.Errorf("stage %d = %q, want %q", i, seen[i], stage.Name)
		}
		if clock.dwells[i] < stage.MinDwell {
			t.Errorf("stage %d dwelled %v, want at least %v", i, clock.dwells[i], stage.MinDwell)
		}
	}
}

func TestRunUsesLiveResult(t *testing.T) {
	o := NewOrchestrator(&stubProposer{text: "live compromise"}, true)
	clock := &fakeClock{}
	o.sleep = clock.sleep
	o.grace = 500 * time.Millisecond

	result, err := o.Run(context.Background(), testInput(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Text != "live compromise" {
		t.Errorf("text = %q, want live result", result.Text)
	}
	if result.Source != SourceLive {
		t.Errorf("source = %s, want live", result.Source)
	}
}

func TestRunFallbackOnServiceError(t *testing.T) {
	o := NewOrchestrator(&stubProposer{err: errors.New("upstream 503")}, true)
	clock := &fakeClock{}
	o.sleep = clock.sleep
	o.grace = 10 * time.Millisecond

	result, err := o.Run(context.Background(), testInput(), nil)
	if err != nil {
		t.Fatalf("run must absorb service errors, got %v", err)
	}
	if result.Text != "canned compromise at 4.9x" {
		t.Errorf("text = %q, want the canned fallback", result.Text)
	}
	if result.Source != SourceCanned {
		t.Errorf("source = %s, want canned", result.Source)
	}
}

func TestRunFallbackWhenCallOutlivesGrace(t *testing.T) {
	o := NewOrchestrator(&stubProposer{text: "too late", delay: time.Second}, true)
	clock := &fakeClock{}
	o.sleep = clock.sleep
	o.grace = 5 * time.Millisecond

	result, err := o.Run(context.Background(), testInput(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Text != "canned compromise at 4.9x" {
		t.Errorf("text = %q, want the canned fallback", result.Text)
	}
}

func TestRunStopsOnCancellation(t *testing.T) {
	o := NewOrchestrator(nil, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.Run(ctx, testInput(), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
