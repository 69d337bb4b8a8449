package sample

import (
	"cmp"
	"slices"
)

// Point is one vertex of a step path. Synthetic points are the inserted
// hold vertices; they never carry a label and are never annotated.
type Point struct {
	Sample
	Synthetic bool
}

// Series is a discretized step path ready for line rendering.
type Series struct {
	Points []Point
	MaxY   float64
}

// Len returns the number of vertices in the path.
func (s Series) Len() int {
	return len(s.Points)
}

// LastX returns the x of the final vertex, or 0 for an empty series.
func (s Series) LastX() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].X
}

// Columns splits the path into parallel x, y and label sequences.
func (s Series) Columns() (xs, ys []float64, labels []string) {
	xs = make([]float64, len(s.Points))
	ys = make([]float64, len(s.Points))
	labels = make([]string, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.X
		ys[i] = p.Y
		labels[i] = p.Label
	}
	return xs, ys, labels
}

// Compare orders samples by x, then y, then label.
func Compare(a, b Sample) int {
	return cmp.Or(
		cmp.Compare(a.X, b.X),
		cmp.Compare(a.Y, b.Y),
		cmp.Compare(a.Label, b.Label),
	)
}

// Discretize turns sparse samples into a rectangular step path. Each sample
// after the first is preceded by a hold vertex at (x-1, previous y), so the
// value stays constant until one unit before the next observed change.
//
// The hold vertex is placed literally at x-1 even when that lands on or
// before the previous sample's x. Discretize reports false for empty input.
func Discretize(samples []Sample) (Series, bool) {
	if len(samples) == 0 {
		return Series{}, false
	}
	sorted := slices.Clone(samples)
	slices.SortFunc(sorted, Compare)

	points := make([]Point, 0, 2*len(sorted)-1)
	prev := sorted[0]
	points = append(points, Point{Sample: prev})
	maxY := prev.Y
	for _, s := range sorted[1:] {
		points = append(points,
			Point{Sample: Sample{X: s.X - 1, Y: prev.Y}, Synthetic: true},
			Point{Sample: s},
		)
		maxY = max(maxY, s.Y)
		prev = s
	}
	return Series{Points: points, MaxY: maxY}, true
}
