package sample

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrLengthMismatch is returned when the x, y and label columns differ in length.
	ErrLengthMismatch = errors.New("sample columns differ in length")
	// ErrNonNumeric is returned for NaN or infinite coordinates.
	ErrNonNumeric = errors.New("sample coordinate is not a finite number")
)

// Sample is one observed event: position X (usually a sequence index), mapped
// value Y and a human readable label such as the raw character.
type Sample struct {
	X     float64
	Y     float64
	Label string
}

// FromColumns zips the three parallel sequences returned by a sample source.
// It fails on mismatched lengths instead of truncating to the shortest one.
func FromColumns(xs, ys []float64, labels []string) ([]Sample, error) {
	if len(xs) != len(ys) || len(xs) != len(labels) {
		return nil, fmt.Errorf("%w: x=%d y=%d labels=%d", ErrLengthMismatch, len(xs), len(ys), len(labels))
	}
	samples := make([]Sample, len(xs))
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			return nil, fmt.Errorf("%w: sample %d is (%v, %v)", ErrNonNumeric, i, xs[i], ys[i])
		}
		samples[i] = Sample{X: xs[i], Y: ys[i], Label: labels[i]}
	}
	return samples, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Result is the outcome of a sample source query. A query either found
// samples for the selector or reports why nothing could be charted.
type Result struct {
	Selector string
	Reason   string

	samples []Sample
	found   bool
}

// Found wraps the samples matched by selector.
func Found(selector string, samples []Sample) Result {
	return Result{Selector: selector, samples: samples, found: true}
}

// NotFound reports that selector matched nothing usable.
func NotFound(selector, reason string) Result {
	return Result{Selector: selector, Reason: reason}
}

// Found reports whether the query produced samples.
func (r Result) Found() bool {
	return r.found
}

// Samples returns the matched samples, nil for a NotFound result.
func (r Result) Samples() []Sample {
	return r.samples
}
