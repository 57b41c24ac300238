package negotiation

import (
	"regexp"
	"strconv"
)

// Alignment is the triage category of a stated position relative to the
// negotiation target. Display logic only; it gates no mutation.
type Alignment string

const (
	AlignmentAgreed   Alignment = "agreed"
	AlignmentConflict Alignment = "conflict"
	AlignmentPending  Alignment = "pending"
)

// conflictBand is the distance beyond which a position is an outright
// conflict rather than grey-zone pending.
const conflictBand = 0.2

// ValueExtractor pulls the numeric stance out of a free-text position
// statement. Behind an interface so the extraction rule can be
// tightened without touching the threshold logic.
type ValueExtractor interface {
	Extract(text string) float64
}

// multipleExtractor matches the first decimal multiple in the text,
// e.g. "4.5x". Later mentions are ignored; a statement with no match
// extracts 0. Known simplification, kept deliberately.
type multipleExtractor struct {
	re *regexp.Regexp
}

func newMultipleExtractor() *multipleExtractor {
	return &multipleExtractor{re: regexp.MustCompile(`\d+\.\d+x`)}
}

func (e *multipleExtractor) Extract(text string) float64 {
	m := e.re.FindString(text)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m[:len(m)-1], 64)
	if err != nil {
		return 0
	}
	return v
}

// Classifier maps a position statement to an alignment against a target
// value and symmetric tolerance band.
type Classifier struct {
	Target    float64
	Tolerance float64
	extractor ValueExtractor
}

func NewClassifier(target, tolerance float64) *Classifier {
	return &Classifier{
		Target:    target,
		Tolerance: tolerance,
		extractor: newMultipleExtractor(),
	}
}

// Classify returns the alignment and the extracted numeric value.
// Within tolerance of the target -> agreed; beyond the conflict band on
// either side -> conflict; between the two -> pending.
func (c *Classifier) Classify(statement string) (Alignment, float64) {
	v := c.extractor.Extract(statement)
	diff := v - c.Target
	if diff < 0 {
		diff = -diff
	}
	if diff < c.Tolerance {
		return AlignmentAgreed, v
	}
	if v > c.Target+conflictBand || v < c.Target-conflictBand {
		return AlignmentConflict, v
	}
	return AlignmentPending, v
}
