// Package narsese parses the Narsese surface grammar into nal sentences.
//
//	sentence    ::= statement punctuation WS tense WS tv?
//	statement   ::= '<' expr '>'
//	punctuation ::= '.' | '?' | '!'
//	tense       ::= (':|:' | ':\:' | ':/:')?
//	tv          ::= '{' float WS float '}'
//
// Every combinator has the shape
//
//	func(input string) (rest string, out T, err error)
//
// and reports grammar mismatches as *ParseError values instead of panicking.
//
// The statement is delimited by the earliest ">.", ">?" or ">!" in the
// input, so an expression containing one of those pairs before its real
// terminator is split early.
package narsese

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
)

// ParseError is a grammar mismatch. Remaining is the unconsumed input at
// the point of failure.
type ParseError struct {
	Remaining string
	Expected  string
}

func (e *ParseError) Error() string {
	if e.Remaining == "" {
		return fmt.Sprintf("expected %s at end of input", e.Expected)
	}
	return fmt.Sprintf("expected %s at %q", e.Expected, e.Remaining)
}

func (e *ParseError) Unwrap() error { return internalerr.ErrParse }

func mismatch(remaining, expected string) *ParseError {
	return &ParseError{Remaining: remaining, Expected: expected}
}

var terminators = []string{">.", ">?", ">!"}

// Statement recognises '<' expr followed by a terminator and returns the
// expression and the two-character terminator (e.g. ">.").
//
// When no valid terminator exists but the statement is closed by '>'
// followed by some other character, that pair is returned as the
// terminator so sentence assembly can reject it as invalid punctuation.
func Statement(input string) (rest, expr, punct string, err error) {
	if !strings.HasPrefix(input, "<") {
		return input, "", "", mismatch(input, "'<'")
	}
	body := input[1:]

	// The expression must be non-empty, so the search starts at body[1].
	best := -1
	for _, tag := range terminators {
		if len(body) < 2 {
			break
		}
		idx := strings.Index(body[1:], tag)
		if idx < 0 {
			continue
		}
		if idx++; best < 0 || idx < best {
			best = idx
		}
	}
	if best >= 0 {
		return body[best+2:], body[:best], body[best : best+2], nil
	}

	idx := strings.LastIndexByte(body, '>')
	if idx >= 1 && idx+1 < len(body) && !isCopulaTip(body, idx) && !isSpace(body[idx+1]) {
		return body[idx+2:], body[:idx], body[idx : idx+2], nil
	}
	return input, "", "", mismatch(input, "statement terminated by '>.', '>?' or '>!'")
}

func isCopulaTip(s string, i int) bool {
	return i > 0 && (s[i-1] == '-' || s[i-1] == '=')
}

// TenseTag recognises optional whitespace and an optional tense token.
// A ':' that does not start a known token is a mismatch.
func TenseTag(input string) (string, nal.Tense, error) {
	rest := skipSpace(input)
	for _, tok := range []string{":|:", `:\:`, ":/:"} {
		if strings.HasPrefix(rest, tok) {
			t, err := nal.ParseTense(tok)
			return rest[len(tok):], t, err
		}
	}
	if strings.HasPrefix(rest, ":") {
		return rest, nal.Eternal, mismatch(rest, `tense ':|:', ':\:' or ':/:'`)
	}
	return rest, nal.Eternal, nil
}

// TruthSuffix recognises optional whitespace and an optional
// "{strength confidence}" pair. The returned strings have their digit
// separators removed. A nil pair means no suffix was present.
func TruthSuffix(input string) (string, *[2]string, error) {
	rest := skipSpace(input)
	if !strings.HasPrefix(rest, "{") {
		return rest, nil, nil
	}

	r, strength, err := Float(rest[1:])
	if err != nil {
		return rest, nil, err
	}
	if r == "" || !isSpace(r[0]) {
		return rest, nil, mismatch(r, "whitespace between strength and confidence")
	}
	r, confidence, err := Float(skipSpace(r))
	if err != nil {
		return rest, nil, err
	}
	if !strings.HasPrefix(r, "}") {
		return rest, nil, mismatch(r, "'}'")
	}

	return r[1:], &[2]string{stripSeparators(strength), stripSeparators(confidence)}, nil
}

// Parse recognises one sentence at the start of input and returns the
// unconsumed remainder.
func Parse(input string) (string, nal.Sentence, error) {
	rest, expr, punct, err := Statement(input)
	if err != nil {
		return input, nil, err
	}
	rest, tense, err := TenseTag(rest)
	if err != nil {
		return input, nil, err
	}
	rest, tv, err := TruthSuffix(rest)
	if err != nil {
		return input, nil, err
	}
	s, err := nal.NewSentence(expr, punct, tense, tv)
	if err != nil {
		return input, nil, err
	}
	return rest, s, nil
}

// ParseSentence parses input as exactly one sentence; only trailing
// whitespace may follow it.
func ParseSentence(input string) (nal.Sentence, error) {
	rest, s, err := Parse(strings.TrimSpace(input))
	if err != nil {
		return nil, err
	}
	if rest = strings.TrimSpace(rest); rest != "" {
		return nil, mismatch(rest, "end of sentence")
	}
	return s, nil
}

// IsComment reports whether a line carries no sentence.
func IsComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "'")
}

// ParseAll reads one sentence per line. Blank lines and comment lines
// starting with "//" or "'" are skipped.
func ParseAll(r io.Reader) ([]nal.Sentence, error) {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	var out []nal.Sentence
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if IsComment(line) {
			continue
		}

		s, err := ParseSentence(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		out = append(out, s)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrIO, err)
	}
	return out, nil
}

func skipSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
