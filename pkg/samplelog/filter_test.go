package samplelog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/sample"
)

const testLog = `; particle state log
10 0 SRAM char-out 'U'
12 0 SRAM char-out 'S'
15 0 SRAM char-out '1'
11 1 WIRE tx-south 1
14 1 WIRE tx-south 0
13 0 INT #7-post 1
16 0 INT #7-post 0   ; unposted
17 0 SRAM int16-out -42
18 0 SRAM status idle
`

func parseTestLog(t *testing.T) *Log {
	t.Helper()
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	log, err := parser.ParseString(testLog)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	return log
}

func TestParseRecords(t *testing.T) {
	log := parseTestLog(t)

	if len(log.Records) != 9 {
		t.Fatalf("Expected 9 records, got %d", len(log.Records))
	}

	r := log.Records[0]
	if r.Index != 10 || r.Node != 0 || r.Domain != "SRAM" || r.Name != "char-out" {
		t.Errorf("Unexpected first record %+v", r)
	}
	if r.Value.Raw() != "'U'" {
		t.Errorf("Expected raw value 'U' with quotes, got %q", r.Value.Raw())
	}
	if _, ok := r.Value.Numeric(); ok {
		t.Error("Character value must not be numeric")
	}

	if v, ok := log.Records[7].Value.Numeric(); !ok || v != -42 {
		t.Errorf("Expected numeric -42, got %v (%v)", v, ok)
	}
	if log.Records[5].Name != "#7-post" {
		t.Errorf("Expected interrupt name #7-post, got %q", log.Records[5].Name)
	}
	if log.Records[8].Value.Symbol == nil || *log.Records[8].Value.Symbol != "idle" {
		t.Errorf("Expected symbol value idle, got %+v", log.Records[8].Value)
	}
	if log.Records[1].Pos.Line != 3 {
		t.Errorf("Expected second record on line 3, got %d", log.Records[1].Pos.Line)
	}
}

func TestParseEmptyAndInvalid(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	log, err := parser.ParseString("; nothing logged\n\n")
	if err != nil {
		t.Fatalf("Failed to parse empty log: %v", err)
	}
	if len(log.Records) != 0 {
		t.Errorf("Expected no records, got %d", len(log.Records))
	}

	if _, err := parser.ParseString("10 0 SRAM\n"); err == nil {
		t.Error("Expected error for truncated record")
	}
}

func TestQueryMapsValues(t *testing.T) {
	f := NewFilter(parseTestLog(t).Records, ValueMapping{"'U'": 0, "'S'": 0.2, "'1'": 1.4})

	res, err := f.Query(Selector{Node: 0, Domain: "SRAM", Name: "char-out"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !res.Found() {
		t.Fatalf("Expected samples, got NotFound: %s", res.Reason)
	}
	expected := []sample.Sample{{X: 10, Y: 0, Label: "'U'"}, {X: 12, Y: 0.2, Label: "'S'"}, {X: 15, Y: 1.4, Label: "'1'"}}
	if !slices.Equal(res.Samples(), expected) {
		t.Errorf("Expected %v, got %v", expected, res.Samples())
	}
	if res.Selector != "SRAM[char-out]@0" {
		t.Errorf("Unexpected selector %q", res.Selector)
	}
}

func TestQueryNumericFallback(t *testing.T) {
	f := NewFilter(parseTestLog(t).Records, nil)

	res, err := f.Query(Selector{Node: 1, Domain: "WIRE", Name: "tx-south"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	expected := []sample.Sample{{X: 11, Y: 1, Label: "1"}, {X: 14, Y: 0, Label: "0"}}
	if !slices.Equal(res.Samples(), expected) {
		t.Errorf("Expected %v, got %v", expected, res.Samples())
	}
}

func TestQueryAlias(t *testing.T) {
	f := NewFilter(parseTestLog(t).Records, nil)

	res, err := f.Query(Selector{Node: 0, Domain: "INT", Name: "#7-invoke", Alias: "#7-post"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(res.Samples()) != 2 {
		t.Errorf("Expected alias to match 2 records, got %d", len(res.Samples()))
	}
}

func TestQueryNotFound(t *testing.T) {
	f := NewFilter(parseTestLog(t).Records, nil)

	for _, sel := range []Selector{
		{Node: 3, Domain: "SRAM", Name: "char-out"},
		{Node: 0, Domain: "INT", Name: "#20-invoke"},
	} {
		res, err := f.Query(sel)
		if err != nil {
			t.Fatalf("Query %s failed: %v", sel, err)
		}
		if res.Found() {
			t.Errorf("Expected NotFound for %s", sel)
		}
		if res.Selector != sel.String() || res.Reason == "" {
			t.Errorf("Unexpected NotFound result %+v", res)
		}
	}
}

func TestQueryUnmappedValue(t *testing.T) {
	f := NewFilter(parseTestLog(t).Records, ValueMapping{"'U'": 0})

	_, err := f.Query(Selector{Node: 0, Domain: "SRAM", Name: "char-out"})
	if !errors.Is(err, ErrUnmappedValue) {
		t.Fatalf("Expected ErrUnmappedValue, got %v", err)
	}
	if !strings.Contains(err.Error(), "'S'") {
		t.Errorf("Expected error to name the value, got %v", err)
	}

	_, err = f.Query(Selector{Node: 0, Domain: "SRAM", Name: "status"})
	if !errors.Is(err, ErrUnmappedValue) {
		t.Errorf("Expected ErrUnmappedValue for bare symbol, got %v", err)
	}
}

func TestRemoveRemapsSelection(t *testing.T) {
	f := NewFilter(parseTestLog(t).Records, ValueMapping{"'U'": 0, "'S'": 0.2, "'1'": 1.4})
	sel := Selector{Node: 0, Domain: "SRAM", Name: "char-out"}

	if n, err := f.Select(sel); err != nil || n != 3 {
		t.Fatalf("Select returned %d, %v", n, err)
	}

	f.SetValueMapping(ValueMapping{"'U'": 0, "'S'": 0, "'1'": 1})
	res, _ := f.Query(sel)
	if res.Samples()[2].Y != 1.4 {
		t.Errorf("Kept selection must use the mapping active when selected, got %v", res.Samples()[2].Y)
	}

	if n := f.Remove(sel); n != 3 {
		t.Errorf("Expected 3 removed samples, got %d", n)
	}
	res, _ = f.Query(sel)
	if res.Samples()[1].Y != 0 || res.Samples()[2].Y != 1 {
		t.Errorf("Expected remapped samples, got %v", res.Samples())
	}
	if n := f.Remove(Selector{Domain: "NONE"}); n != 0 {
		t.Errorf("Removing an unknown selection must report 0, got %d", n)
	}
}

func TestWriteValues(t *testing.T) {
	f := NewFilter(parseTestLog(t).Records, ValueMapping{"'U'": 0, "'S'": 0.2})

	var buf bytes.Buffer
	if err := f.WriteValues(&buf); err != nil {
		t.Fatalf("WriteValues failed: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 10 {
		t.Fatalf("Expected header and 9 values, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "SIGNAL") {
		t.Errorf("Expected header first, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "INT[#7-post]@0") {
		t.Errorf("Expected INT signals first, got %q", lines[1])
	}
	for _, want := range []string{"'S'", "0.2", "'1'", "unmapped", "-42"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestSummarize(t *testing.T) {
	signals := Summarize(parseTestLog(t).Records)

	if len(signals) != 5 {
		t.Fatalf("Expected 5 signals, got %d", len(signals))
	}
	first := signals[0]
	if first.Domain != "INT" || first.Count != 2 || first.First != 13 || first.Last != 16 {
		t.Errorf("Unexpected first signal %+v", first)
	}
	if signals[4].Domain != "WIRE" || signals[4].Node != 1 {
		t.Errorf("Unexpected last signal %+v", signals[4])
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "particle-state.log")
	if err := os.WriteFile(path, []byte(testLog), 0o644); err != nil {
		t.Fatalf("Failed to write log: %v", err)
	}

	f, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(f.Records()) != 9 {
		t.Errorf("Expected 9 records, got %d", len(f.Records()))
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.log"), nil); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRead(t *testing.T) {
	f, err := Read(strings.NewReader(testLog), ValueMapping{"'U'": 0})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(f.Records()) != 9 {
		t.Errorf("Expected 9 records, got %d", len(f.Records()))
	}
	if _, err := Read(strings.NewReader("10 0 SRAM\n"), nil); err == nil {
		t.Error("Expected error for a truncated record")
	}
}
