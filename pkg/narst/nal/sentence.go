package nal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
)

// Punctuation marks.
const (
	JudgementMark = '.'
	QuestionMark  = '?'
	GoalMark      = '!'
)

// PunctuationError reports a sentence terminator that is none of ". ? !".
type PunctuationError struct {
	Token string
}

func (e *PunctuationError) Error() string {
	return fmt.Sprintf("invalid punctuation: %s", e.Token)
}

func (e *PunctuationError) Unwrap() error { return internalerr.ErrInvalidPunctuation }

// Sentence is one of Judgement, Question or Goal.
type Sentence interface {
	Term() Term
	Tense() Tense
	Punctuation() byte
	String() string

	sentence()
}

// Judgement asserts a statement with a truth value.
type Judgement struct {
	Statement Term       `json:"term"`
	Truth     TruthValue `json:"tv"`
	When      Tense      `json:"tense"`
}

// Question asks about a statement.
type Question struct {
	Statement Term       `json:"term"`
	Truth     TruthValue `json:"tv"`
	When      Tense      `json:"tense"`
}

// Goal asks the system to realise a statement.
type Goal struct {
	Statement Term        `json:"term"`
	Desire    DesireValue `json:"d"`
	When      Tense       `json:"tense"`
}

func (j Judgement) Term() Term        { return j.Statement }
func (j Judgement) Tense() Tense      { return j.When }
func (j Judgement) Punctuation() byte { return JudgementMark }
func (j Judgement) String() string    { return render(j.Statement, JudgementMark, j.When, j.Truth.String()) }
func (Judgement) sentence()           {}

func (q Question) Term() Term        { return q.Statement }
func (q Question) Tense() Tense      { return q.When }
func (q Question) Punctuation() byte { return QuestionMark }
func (q Question) String() string    { return render(q.Statement, QuestionMark, q.When, q.Truth.String()) }
func (Question) sentence()           {}

func (g Goal) Term() Term        { return g.Statement }
func (g Goal) Tense() Tense      { return g.When }
func (g Goal) Punctuation() byte { return GoalMark }
func (g Goal) String() string    { return render(g.Statement, GoalMark, g.When, g.Desire.String()) }
func (Goal) sentence()           {}

// Belief returns the term of a judgement with its truth value attached.
func (j Judgement) Belief() Term {
	return j.Statement.WithTruth(j.Truth)
}

func render(t Term, mark byte, tense Tense, value string) string {
	var b strings.Builder
	expr := t.Expr
	if !Enclosed(expr) {
		expr = "<" + expr + ">"
	}
	b.WriteString(expr)
	b.WriteByte(mark)
	if tok := tense.Token(); tok != "" {
		b.WriteByte(' ')
		b.WriteString(tok)
	}
	b.WriteByte(' ')
	b.WriteString(value)
	return b.String()
}

// NewSentence assembles a sentence from the pieces recognised by the
// parser. tv holds the raw strength and confidence strings, or nil when the
// sentence has no truth suffix, in which case Prior is used. The variant is
// chosen by the last character of punct.
func NewSentence(expr, punct string, tense Tense, tv *[2]string) (Sentence, error) {
	truth := Prior
	if tv != nil {
		s, err := parseComponent(tv[0])
		if err != nil {
			return nil, fmt.Errorf("%w: strength %q: %v", internalerr.ErrParse, tv[0], err)
		}
		c, err := parseComponent(tv[1])
		if err != nil {
			return nil, fmt.Errorf("%w: confidence %q: %v", internalerr.ErrParse, tv[1], err)
		}
		truth, err = NewTruthValue(s, c)
		if err != nil {
			return nil, err
		}
	}

	term := NewTerm(expr)
	if punct == "" {
		return nil, &PunctuationError{Token: punct}
	}
	switch punct[len(punct)-1] {
	case JudgementMark:
		return Judgement{Statement: term, Truth: truth, When: tense}, nil
	case QuestionMark:
		return Question{Statement: term, Truth: truth, When: tense}, nil
	case GoalMark:
		return Goal{Statement: term, Desire: DesireFromTruth(truth), When: tense}, nil
	default:
		return nil, &PunctuationError{Token: punct}
	}
}

// parseComponent keeps overflowing values (±Inf) so that range checking,
// not parsing, rejects them.
func parseComponent(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if errors.Is(err, strconv.ErrRange) {
		return v, nil
	}
	return v, err
}
