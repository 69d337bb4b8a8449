package samplelog

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads particle state logs.
type Parser struct {
	parser *participle.Parser[Log]
}

// NewParser creates a new log parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Log](
		participle.Lexer(LogLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a log from a reader
func (p *Parser) Parse(r io.Reader) (*Log, error) {
	log, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return log, nil
}

// ParseString parses a log from a string
func (p *Parser) ParseString(input string) (*Log, error) {
	log, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return log, nil
}

// ParseFile parses a log from a file path
func (p *Parser) ParseFile(filename string) (*Log, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}
