package nal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
)

// InheritanceCopula separates subject and predicate of an inheritance statement.
const InheritanceCopula = " --> "

// Term is a named entity. Derived inheritance statements carry the truth
// value they were concluded with.
type Term struct {
	ID   uint32      `json:"id"`
	Expr string      `json:"expr"`
	TV   *TruthValue `json:"tv,omitempty"`
}

// NewTerm builds a term with the placeholder id 0.
func NewTerm(expr string) Term {
	return Term{Expr: expr}
}

func (t Term) Name() string { return t.Expr }

// WithTruth returns a copy of t carrying tv.
func (t Term) WithTruth(tv TruthValue) Term {
	t.TV = &tv
	return t
}

// Inheritance renders "<subject --> predicate>".
func Inheritance(subject, predicate string) string {
	return "<" + subject + InheritanceCopula + predicate + ">"
}

// SplitInheritance extracts subject and predicate from "<S --> P>" or the
// bracketless "S --> P" form produced by the parser. Only a top-level
// copula splits the statement, so compound subjects such as
// "<<a --> b> --> c>" are kept intact.
func SplitInheritance(expr string) (subject, predicate string, err error) {
	body := StripBrackets(strings.TrimSpace(expr))

	idx := topLevelIndex(body, InheritanceCopula)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: %q", internalerr.ErrNotInheritance, expr)
	}

	subject = strings.TrimSpace(body[:idx])
	predicate = strings.TrimSpace(body[idx+len(InheritanceCopula):])
	if subject == "" || predicate == "" {
		return "", "", fmt.Errorf("%w: %q", internalerr.ErrNotInheritance, expr)
	}
	return subject, predicate, nil
}

// StripBrackets removes one pair of statement brackets when they enclose
// the whole expression.
func StripBrackets(expr string) string {
	if Enclosed(expr) {
		return expr[1 : len(expr)-1]
	}
	return expr
}

// Enclosed reports whether expr is a single "<...>" statement.
func Enclosed(expr string) bool {
	if len(expr) < 2 || expr[0] != '<' || expr[len(expr)-1] != '>' {
		return false
	}
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch {
		case isOpen(expr, i):
			depth++
		case isClose(expr, i):
			depth--
			if depth == 0 && i != len(expr)-1 {
				return false
			}
		}
	}
	return depth == 0
}

func topLevelIndex(body, sep string) int {
	depth := 0
	for i := 0; i < len(body); i++ {
		if depth == 0 && strings.HasPrefix(body[i:], sep) {
			return i
		}
		switch {
		case isOpen(body, i):
			depth++
		case isClose(body, i):
			depth--
		}
	}
	return -1
}

// Angle brackets that belong to copulas ("-->", "<->", "==>", "<=>") do
// not open or close statements.
func isOpen(s string, i int) bool {
	if s[i] != '<' {
		return false
	}
	return i+1 >= len(s) || (s[i+1] != '-' && s[i+1] != '=')
}

func isClose(s string, i int) bool {
	if s[i] != '>' {
		return false
	}
	return i == 0 || (s[i-1] != '-' && s[i-1] != '=')
}

// Tense is a flat temporal tag; no ordering is defined over it.
type Tense int

const (
	Eternal Tense = iota
	Present
	Past
	Future
)

var tenseNames = [...]string{"Eternal", "Present", "Past", "Future"}

var tenseTokens = map[string]Tense{
	"":    Eternal,
	":|:": Present,
	`:\:`: Past,
	":/:": Future,
}

// ParseTense maps a surface token to a Tense. The empty token is Eternal.
func ParseTense(token string) (Tense, error) {
	t, ok := tenseTokens[token]
	if !ok {
		return Eternal, fmt.Errorf("%w: invalid tense %q", internalerr.ErrParse, token)
	}
	return t, nil
}

// Token returns the surface form of the tense; Eternal has none.
func (t Tense) Token() string {
	switch t {
	case Present:
		return ":|:"
	case Past:
		return `:\:`
	case Future:
		return ":/:"
	default:
		return ""
	}
}

func (t Tense) String() string {
	if t < 0 || int(t) >= len(tenseNames) {
		return fmt.Sprintf("Tense(%d)", int(t))
	}
	return tenseNames[t]
}

func (t Tense) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tense) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range tenseNames {
		if n == name {
			*t = Tense(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown tense %q", internalerr.ErrInvalidInput, name)
}
