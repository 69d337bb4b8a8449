// Package config reads value mapping tables and chart presets written as
// s-expressions:
//
//	(table reception-states (char U 0.0) (char S 0.2) (value 1 1.0))
//	(vector TX_RX_TIMER_TOP 7)
//	(plot (domain SRAM) (name char-out) (title "SRAM[char-out] - States") (mapping reception-states))
//	(plot (interrupt NORTH_RECEPTION) (facet post) (title "un-/posting") (mapping interrupt))
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chewxy/sexp"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/samplelog"
)

// ErrSyntax is returned for malformed configuration entries.
var ErrSyntax = errors.New("config syntax error")

// Config holds the mapping tables, interrupt vectors and chart presets.
type Config struct {
	Tables  map[string]samplelog.ValueMapping
	Vectors map[string]string
	Plots   []Plot
}

// Plot is one preset chart. Interrupt charts set Interrupt and Facet and
// leave Domain and Name empty.
type Plot struct {
	Domain    string
	Name      string
	Alias     string
	Node      int
	Title     string
	YLabel    string
	Mapping   string
	Interrupt string
	Facet     string
	// Reselect drops a previous selection of the same signal so it is
	// mapped again with this plot's table.
	Reselect bool
}

// IsInterrupt reports whether p charts an interrupt facet.
func (p Plot) IsInterrupt() bool {
	return p.Interrupt != ""
}

// New returns an empty configuration.
func New() *Config {
	return &Config{
		Tables:  make(map[string]samplelog.ValueMapping),
		Vectors: make(map[string]string),
	}
}

// Table returns the named mapping table. The empty name selects no mapping.
func (c *Config) Table(name string) (samplelog.ValueMapping, error) {
	if name == "" {
		return nil, nil
	}
	t, ok := c.Tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown mapping table %q", name)
	}
	return t, nil
}

// Merge adds the tables and vectors of other, replacing entries with the
// same name. Plots of other replace the preset when other has any.
func (c *Config) Merge(other *Config) {
	for name, t := range other.Tables {
		c.Tables[name] = t
	}
	for name, v := range other.Vectors {
		c.Vectors[name] = v
	}
	if len(other.Plots) > 0 {
		c.Plots = append([]Plot(nil), other.Plots...)
	}
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// ParseString parses a configuration from a string.
func ParseString(input string) (*Config, error) {
	return Parse(strings.NewReader(input))
}

// Parse reads a configuration from r.
func Parse(r io.Reader) (*Config, error) {
	sexps, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	cfg := New()
	for _, s := range sexps {
		if isBlank(s) {
			continue
		}
		if s.IsLeaf() {
			return nil, fmt.Errorf("%w: unexpected atom %v at top level", ErrSyntax, s)
		}
		name, err := nodeName(s)
		if err != nil {
			return nil, err
		}
		switch name {
		case "table":
			if err := cfg.parseTable(s); err != nil {
				return nil, fmt.Errorf("failed to parse table: %w", err)
			}
		case "vector":
			if err := cfg.parseVector(s); err != nil {
				return nil, fmt.Errorf("failed to parse vector: %w", err)
			}
		case "plot":
			p, err := parsePlot(s)
			if err != nil {
				return nil, fmt.Errorf("failed to parse plot: %w", err)
			}
			cfg.Plots = append(cfg.Plots, p)
		default:
			return nil, fmt.Errorf("%w: unknown entry %q", ErrSyntax, name)
		}
	}
	return cfg, nil
}

func (c *Config) parseTable(s sexp.Sexp) error {
	items := listItems(s)
	if len(items) < 2 {
		return fmt.Errorf("%w: table without name", ErrSyntax)
	}
	name, err := atom(items[1])
	if err != nil {
		return err
	}

	table := make(samplelog.ValueMapping)
	for _, entry := range items[2:] {
		kind, err := nodeName(entry)
		if err != nil {
			return err
		}
		fields, err := args(entry)
		if err != nil {
			return err
		}
		if len(fields) != 2 {
			return fmt.Errorf("%w: (%s ...) in table %s needs a value and a number", ErrSyntax, kind, name)
		}
		y, err := parseFloat(fields[1])
		if err != nil {
			return err
		}
		switch kind {
		case "char":
			table["'"+fields[0]+"'"] = y
		case "value":
			table[fields[0]] = y
		default:
			return fmt.Errorf("%w: unknown table entry %q", ErrSyntax, kind)
		}
	}
	c.Tables[name] = table
	return nil
}

func (c *Config) parseVector(s sexp.Sexp) error {
	fields, err := args(s)
	if err != nil {
		return err
	}
	if len(fields) != 2 {
		return fmt.Errorf("%w: (vector NAME NUMBER) expected", ErrSyntax)
	}
	n, err := parseInt(fields[1])
	if err != nil {
		return err
	}
	c.Vectors[fields[0]] = fmt.Sprintf("#%d", n)
	return nil
}

func parsePlot(s sexp.Sexp) (Plot, error) {
	var p Plot
	for _, field := range listItems(s)[1:] {
		if field.IsLeaf() {
			key, err := atom(field)
			if err != nil {
				return p, err
			}
			if key != "reselect" {
				return p, fmt.Errorf("%w: (%s) needs a value", ErrSyntax, key)
			}
			p.Reselect = true
			continue
		}

		key, err := nodeName(field)
		if err != nil {
			return p, err
		}
		switch key {
		case "title", "ylabel", "alias":
			v, err := text(field)
			if err != nil {
				return p, fmt.Errorf("(%s ...): %w", key, err)
			}
			switch key {
			case "title":
				p.Title = v
			case "ylabel":
				p.YLabel = v
			default:
				p.Alias = v
			}
			continue
		}

		values, err := args(field)
		if err != nil {
			return p, err
		}
		if len(values) != 1 {
			return p, fmt.Errorf("%w: (%s ...) takes exactly one value", ErrSyntax, key)
		}
		v := values[0]
		switch key {
		case "domain":
			p.Domain = v
		case "name":
			p.Name = v
		case "node":
			if p.Node, err = parseInt(v); err != nil {
				return p, err
			}
		case "mapping":
			p.Mapping = v
		case "interrupt":
			p.Interrupt = v
		case "facet":
			p.Facet = v
		default:
			return p, fmt.Errorf("%w: unknown plot field %q", ErrSyntax, key)
		}
	}

	switch {
	case p.IsInterrupt() && p.Facet == "":
		return p, fmt.Errorf("%w: interrupt plot %s without facet", ErrSyntax, p.Interrupt)
	case !p.IsInterrupt() && (p.Domain == "" || p.Name == ""):
		return p, fmt.Errorf("%w: plot needs domain and name, or interrupt", ErrSyntax)
	}
	if p.Title == "" {
		p.Title = fmt.Sprintf("%s[%s]", p.Domain, p.Name)
		if p.IsInterrupt() {
			p.Title = p.Facet
		}
	}
	return p, nil
}
