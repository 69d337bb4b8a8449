package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/sexp"
)

// S-expression navigation helpers.
//
// The parser splits on whitespace only: a quoted string with spaces arrives
// as several symbols, and a list holding a single symbol such as (reselect)
// collapses to that symbol.

// listItems returns the elements of a list, or nil for an atom.
func listItems(s sexp.Sexp) []sexp.Sexp {
	if l, ok := s.(sexp.List); ok {
		return l
	}
	return nil
}

// symbol returns the raw text of a leaf.
func symbol(s sexp.Sexp) (string, error) {
	if s == nil || !s.IsLeaf() {
		return "", fmt.Errorf("%w: expected atom, got %v", ErrSyntax, s)
	}
	return fmt.Sprint(s), nil
}

// isBlank reports whether s is the empty symbol produced by leading
// whitespace.
func isBlank(s sexp.Sexp) bool {
	if s == nil {
		return true
	}
	if !s.IsLeaf() {
		return false
	}
	return strings.TrimSpace(fmt.Sprint(s)) == ""
}

// unquote removes string quotes from text.
func unquote(text string) string {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		if unquoted, err := strconv.Unquote(text); err == nil {
			return unquoted
		}
		return text[1 : len(text)-1]
	}
	return text
}

// atom returns the text of a leaf, with string quotes removed.
func atom(s sexp.Sexp) (string, error) {
	text, err := symbol(s)
	if err != nil {
		return "", err
	}
	return unquote(text), nil
}

// nodeName returns the leading symbol of a list such as (plot ...).
func nodeName(s sexp.Sexp) (string, error) {
	items := listItems(s)
	if len(items) == 0 {
		return "", fmt.Errorf("%w: expected non-empty list", ErrSyntax)
	}
	return atom(items[0])
}

// args returns the atoms following the key of a list.
func args(s sexp.Sexp) ([]string, error) {
	items := listItems(s)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: expected non-empty list", ErrSyntax)
	}
	out := make([]string, 0, len(items)-1)
	for _, item := range items[1:] {
		text, err := atom(item)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

// text returns the value of a list such as (title "a - b"), joining the
// pieces of a quoted string with single spaces.
func text(s sexp.Sexp) (string, error) {
	items := listItems(s)
	if len(items) < 2 {
		return "", fmt.Errorf("%w: expected a value", ErrSyntax)
	}
	parts := make([]string, 0, len(items)-1)
	for _, item := range items[1:] {
		part, err := symbol(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	joined := strings.Join(parts, " ")
	if len(parts) > 1 && !(strings.HasPrefix(joined, `"`) && strings.HasSuffix(joined, `"`)) {
		return "", fmt.Errorf("%w: %q needs quotes", ErrSyntax, joined)
	}
	return unquote(joined), nil
}

func parseFloat(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse float %q", ErrSyntax, text)
	}
	return v, nil
}

func parseInt(text string) (int, error) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse int %q", ErrSyntax, text)
	}
	return v, nil
}
