package samplelog

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Log is a parsed particle state log.
type Log struct {
	Records []*Record `( @@ | EOL )*`
}

// Record is one logged sample.
// Example: 1042 0 SRAM char-out 'U'
type Record struct {
	Pos lexer.Position

	Index  int    `@Int`
	Node   int    `@Int`
	Domain string `@Ident`
	Name   string `@Ident`
	Value  *Value `@@`
}

// Value is the logged value in its source form.
type Value struct {
	Char   *string `  @Char`
	Number *string `| @( Float | Int )`
	Symbol *string `| @Ident`
}

// Raw returns the value exactly as written, quotes included for characters.
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.Char != nil:
		return *v.Char
	case v.Number != nil:
		return *v.Number
	case v.Symbol != nil:
		return *v.Symbol
	}
	return ""
}

// Numeric returns the value as a number if it was logged as one.
func (v *Value) Numeric() (float64, bool) {
	if v == nil || v.Number == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(*v.Number, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
