// Package formatter re-indents Structured Text source by tracking
// structural-keyword nesting depth, the way cmd/gmx's fmt.go re-indents
// a .gmx file's sections by tracking open/close tag nesting: it works
// line-by-line on the original text, never builds a syntax tree, and
// tolerates input that wouldn't even lex cleanly, since an ILLEGAL
// token is still a token with a line number.
package formatter

import (
	"strings"

	"github.com/hyperdrive-technology/core-sub001/internal/lexer"
	"github.com/hyperdrive-technology/core-sub001/internal/token"
)

const indentUnit = "  "

var openKeywords = map[token.Kind]bool{
	token.PROGRAM:        true,
	token.FUNCTION:       true,
	token.FUNCTION_BLOCK: true,
	token.VAR:            true,
	token.VAR_INPUT:      true,
	token.VAR_OUTPUT:     true,
	token.VAR_IN_OUT:     true,
	token.TYPE:           true,
	token.STRUCT:         true,
	token.IF:             true,
	token.WHILE:          true,
	token.REPEAT:         true,
	token.FOR:            true,
	token.CASE:           true,
}

var closeKeywords = map[token.Kind]bool{
	token.END_PROGRAM:        true,
	token.END_FUNCTION:       true,
	token.END_FUNCTION_BLOCK: true,
	token.END_VAR:            true,
	token.END_TYPE:           true,
	token.END_STRUCT:         true,
	token.END_IF:             true,
	token.END_WHILE:          true,
	token.END_REPEAT:         true,
	token.END_FOR:            true,
	token.END_CASE:           true,
	token.END:                true,
}

// branchKeywords dedent only the line they appear on (ELSE/ELSIF re-open
// the block they just closed; UNTIL is REPEAT's trailing condition, not
// its close — END_REPEAT is) without changing the running depth other
// lines are indented at.
var branchKeywords = map[token.Kind]bool{
	token.ELSIF: true,
	token.ELSE:  true,
	token.UNTIL: true,
}

// Format re-indents src and returns the result. It is idempotent:
// indentation is recomputed from scratch on every call rather than
// adjusted incrementally, so formatting already-formatted output
// reproduces it unchanged.
func Format(src string) string {
	lineKeywords := scanLineKeywords(src)
	lines := strings.Split(src, "\n")

	var out strings.Builder
	depth := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out.WriteString("\n")
			continue
		}

		delta := lineKeywords[i]
		opens, closes, dedentThisLine := delta.opens, delta.closes, delta.branch

		printDepth := depth
		if closes > 0 || dedentThisLine {
			printDepth = depth - 1
			if printDepth < 0 {
				printDepth = 0
			}
		}

		out.WriteString(strings.Repeat(indentUnit, printDepth))
		out.WriteString(trimmed)
		if !delta.structuralFirst && !strings.HasSuffix(trimmed, ";") {
			out.WriteString(";")
		}
		if i < len(lines)-1 {
			out.WriteString("\n")
		}

		depth += opens - closes
		if depth < 0 {
			depth = 0
		}
	}
	return out.String()
}

type lineDelta struct {
	opens, closes   int
	branch          bool
	structuralFirst bool // line's first token is a structural keyword: never gets a trailing ';' appended
	seenFirst       bool
}

// scanLineKeywords tokenizes src once and buckets each structural
// keyword token by its source line, ignoring any lexical diagnostics:
// a formatter must still produce output for text that fails to lex.
func scanLineKeywords(src string) map[int]lineDelta {
	deltas := map[int]lineDelta{}
	lex := lexer.New(src)
	for {
		tok := lex.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		d := deltas[tok.Range.Start.Line]
		if !d.seenFirst {
			d.seenFirst = true
			d.structuralFirst = openKeywords[tok.Kind] || closeKeywords[tok.Kind] || branchKeywords[tok.Kind] || tok.Kind == token.BEGIN
		}
		switch {
		case branchKeywords[tok.Kind]:
			d.branch = true
		case openKeywords[tok.Kind]:
			d.opens++
		case closeKeywords[tok.Kind]:
			d.closes++
		}
		deltas[tok.Range.Start.Line] = d
	}
	return deltas
}
