package samplelog

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/sample"
)

// ErrUnmappedValue is returned when a symbolic value has no entry in the
// active value mapping.
var ErrUnmappedValue = errors.New("value has no mapping")

// ValueMapping maps raw logged values (as written, e.g. 'U') to chart values.
type ValueMapping map[string]float64

// Selector picks one signal of one node. Alias, when set, is matched as an
// alternative name.
type Selector struct {
	Node   int
	Domain string
	Name   string
	Alias  string
}

func (s Selector) String() string {
	return fmt.Sprintf("%s[%s]@%d", s.Domain, s.Name, s.Node)
}

// Matches reports whether r belongs to the selected signal.
func (s Selector) Matches(r *Record) bool {
	if r.Node != s.Node || r.Domain != s.Domain {
		return false
	}
	return r.Name == s.Name || (s.Alias != "" && r.Name == s.Alias)
}

// Filter extracts chartable samples from parsed records. Selected samples
// are mapped once with the mapping active at selection time and kept until
// removed.
type Filter struct {
	records  []*Record
	mapping  ValueMapping
	selected map[Selector][]sample.Sample
}

// NewFilter wraps records with an initial value mapping.
func NewFilter(records []*Record, mapping ValueMapping) *Filter {
	return &Filter{
		records:  records,
		mapping:  mapping,
		selected: make(map[Selector][]sample.Sample),
	}
}

// Open parses the log at path and returns a filter over its records.
func Open(path string, mapping ValueMapping) (*Filter, error) {
	parser, err := NewParser()
	if err != nil {
		return nil, err
	}
	log, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewFilter(log.Records, mapping), nil
}

// Read parses a log from r and returns a filter over its records.
func Read(r io.Reader, mapping ValueMapping) (*Filter, error) {
	parser, err := NewParser()
	if err != nil {
		return nil, err
	}
	log, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewFilter(log.Records, mapping), nil
}

// Records returns the underlying records.
func (f *Filter) Records() []*Record {
	return f.records
}

// SetValueMapping replaces the mapping used by later selections.
func (f *Filter) SetValueMapping(m ValueMapping) {
	f.mapping = m
}

// Select maps the records matched by sel and keeps them for Query. An
// existing selection is kept as is; call Remove first to remap it.
func (f *Filter) Select(sel Selector) (int, error) {
	if samples, ok := f.selected[sel]; ok {
		return len(samples), nil
	}

	var (
		xs     []float64
		ys     []float64
		labels []string
	)
	for _, r := range f.records {
		if !sel.Matches(r) {
			continue
		}
		y, err := f.valueOf(r.Value)
		if err != nil {
			return 0, fmt.Errorf("%s at %s: %w", sel, r.Pos, err)
		}
		xs = append(xs, float64(r.Index))
		ys = append(ys, y)
		labels = append(labels, r.Value.Raw())
	}
	samples, err := sample.FromColumns(xs, ys, labels)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", sel, err)
	}
	f.selected[sel] = samples
	return len(samples), nil
}

// Query returns the samples of sel, selecting them first if needed. A
// selector matching no records yields a NotFound result, not an error.
func (f *Filter) Query(sel Selector) (sample.Result, error) {
	if _, err := f.Select(sel); err != nil {
		return sample.Result{}, err
	}
	samples := f.selected[sel]
	if len(samples) == 0 {
		return sample.NotFound(sel.String(), "no matching samples"), nil
	}
	return sample.Found(sel.String(), samples), nil
}

// Remove drops the selection kept for sel and returns how many samples it held.
func (f *Filter) Remove(sel Selector) int {
	n := len(f.selected[sel])
	delete(f.selected, sel)
	return n
}

func (f *Filter) valueOf(v *Value) (float64, error) {
	raw := v.Raw()
	if y, ok := f.mapping[raw]; ok {
		return y, nil
	}
	if y, ok := v.Numeric(); ok {
		return y, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnmappedValue, raw)
}

// WriteValues prints every distinct value per signal together with the
// chart value the active mapping assigns to it.
func (f *Filter) WriteValues(w io.Writer) error {
	type key struct {
		node         int
		domain, name string
	}
	values := make(map[key][]*Value)
	var keys []key
	for _, r := range f.records {
		k := key{r.Node, r.Domain, r.Name}
		seen, ok := values[k]
		if !ok {
			keys = append(keys, k)
		}
		if !slices.ContainsFunc(seen, func(v *Value) bool { return v.Raw() == r.Value.Raw() }) {
			values[k] = append(seen, r.Value)
		}
	}
	slices.SortFunc(keys, func(a, b key) int {
		return cmp.Or(cmp.Compare(a.domain, b.domain), cmp.Compare(a.name, b.name), cmp.Compare(a.node, b.node))
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SIGNAL\tVALUE\tMAPPED")
	for _, k := range keys {
		signal := Selector{Node: k.node, Domain: k.domain, Name: k.name}.String()
		for _, v := range values[k] {
			mapped := "unmapped"
			if y, err := f.valueOf(v); err == nil {
				mapped = fmt.Sprintf("%g", y)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", signal, v.Raw(), mapped)
		}
	}
	return tw.Flush()
}

// Signal summarizes the records of one signal.
type Signal struct {
	Node   int
	Domain string
	Name   string
	Count  int
	First  int
	Last   int
}

// Summarize groups records by signal, sorted by domain, name and node.
func Summarize(records []*Record) []Signal {
	index := make(map[Selector]int)
	var out []Signal
	for _, r := range records {
		k := Selector{Node: r.Node, Domain: r.Domain, Name: r.Name}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Signal{Node: r.Node, Domain: r.Domain, Name: r.Name, First: r.Index, Last: r.Index})
		}
		s := &out[i]
		s.Count++
		s.First = min(s.First, r.Index)
		s.Last = max(s.Last, r.Index)
	}
	slices.SortFunc(out, func(a, b Signal) int {
		return cmp.Or(cmp.Compare(a.Domain, b.Domain), cmp.Compare(a.Name, b.Name), cmp.Compare(a.Node, b.Node))
	})
	return out
}
