package samplelog

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// LogLexer tokenizes particle state logs. Each line holds one record:
//
//	<index> <node> <domain> <name> <value>
//
// where value is a character literal, a number or a bare symbol.
var LogLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run to the end of the line
	{Name: "Comment", Pattern: `;[^\n]*`},

	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},

	// Character literals keep their quotes, e.g. 'U' or '\n'
	{Name: "Char", Pattern: `'(?:[^'\\]|\\.)*'`},

	{Name: "Float", Pattern: `[-+]?[0-9]+\.[0-9]+([eE][-+]?[0-9]+)?`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},

	// Domains and signal names such as SRAM, char-out, #7-post or UDR[0]
	{Name: "Ident", Pattern: `[A-Za-z_#][A-Za-z0-9_#.\-\[\]]*`},
})
