// Package rules implements NAL-1 syllogistic rewrite rules over
// inheritance statements. Each rule checks that its premises share the
// linking term, composes the conclusion statement and combines the
// premise truth values with the matching truth function.
package rules

import (
	"fmt"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
)

// MiddleTermError reports premises that do not share the linking term the
// rule requires.
type MiddleTermError struct {
	Rule   string
	First  string
	Second string
}

func (e *MiddleTermError) Error() string {
	return fmt.Sprintf("%s: %q and %q share no linking term", e.Rule, e.First, e.Second)
}

func (e *MiddleTermError) Unwrap() error { return internalerr.ErrNonMatchingMiddleTerm }

// Rewrite derives a conclusion from two premise terms that carry truth values.
type Rewrite func(first, second nal.Term) (nal.Term, nal.TruthValue, error)

// Rule describes one syllogistic rule.
type Rule struct {
	Name    string
	Pattern string
	Apply   Rewrite
}

// Rules is the NAL-1 inheritance rule table.
var Rules = []Rule{
	{Name: "deduction", Pattern: "<a --> b>, <b --> c> |- <a --> c>", Apply: RewriteDeduction},
	{Name: "exemplification", Pattern: "<a --> b>, <b --> c> |- <c --> a>", Apply: RewriteExemplification},
	{Name: "induction", Pattern: "<a --> b>, <a --> c> |- <c --> b>", Apply: RewriteInduction},
	{Name: "abduction", Pattern: "<a --> c>, <b --> c> |- <b --> a>", Apply: RewriteAbduction},
}

// Lookup returns the rule with the given name.
func Lookup(name string) (Rule, bool) {
	for _, r := range Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

type premise struct {
	subject   string
	predicate string
	tv        nal.TruthValue
}

func split(t nal.Term) (premise, error) {
	if t.TV == nil {
		return premise{}, fmt.Errorf("%w: %q", internalerr.ErrMissingTruth, t.Expr)
	}
	s, p, err := nal.SplitInheritance(t.Expr)
	if err != nil {
		return premise{}, err
	}
	return premise{subject: s, predicate: p, tv: *t.TV}, nil
}

func splitPair(first, second nal.Term) (premise, premise, error) {
	p1, err := split(first)
	if err != nil {
		return premise{}, premise{}, err
	}
	p2, err := split(second)
	if err != nil {
		return premise{}, premise{}, err
	}
	return p1, p2, nil
}

func conclude(subject, predicate string, fn nal.Function, t1, t2 nal.TruthValue) (nal.Term, nal.TruthValue, error) {
	tv, err := fn(t1, t2)
	if err != nil {
		return nal.Term{}, nal.TruthValue{}, err
	}
	return nal.NewTerm(nal.Inheritance(subject, predicate)).WithTruth(tv), tv, nil
}

// RewriteDeduction: <a --> b>, <b --> c> |- <a --> c>.
func RewriteDeduction(ab, bc nal.Term) (nal.Term, nal.TruthValue, error) {
	p1, p2, err := splitPair(ab, bc)
	if err != nil {
		return nal.Term{}, nal.TruthValue{}, err
	}
	if p1.predicate != p2.subject {
		return nal.Term{}, nal.TruthValue{}, &MiddleTermError{Rule: "deduction", First: ab.Expr, Second: bc.Expr}
	}
	return conclude(p1.subject, p2.predicate, nal.Deduction, p1.tv, p2.tv)
}

// RewriteExemplification: <a --> b>, <b --> c> |- <c --> a>.
func RewriteExemplification(ab, bc nal.Term) (nal.Term, nal.TruthValue, error) {
	p1, p2, err := splitPair(ab, bc)
	if err != nil {
		return nal.Term{}, nal.TruthValue{}, err
	}
	if p1.predicate != p2.subject {
		return nal.Term{}, nal.TruthValue{}, &MiddleTermError{Rule: "exemplification", First: ab.Expr, Second: bc.Expr}
	}
	return conclude(p2.predicate, p1.subject, nal.Exemplification, p1.tv, p2.tv)
}

// RewriteInduction: <a --> b>, <a --> c> |- <c --> b>.
func RewriteInduction(ab, ac nal.Term) (nal.Term, nal.TruthValue, error) {
	p1, p2, err := splitPair(ab, ac)
	if err != nil {
		return nal.Term{}, nal.TruthValue{}, err
	}
	if p1.subject != p2.subject || p1.predicate == p2.predicate {
		return nal.Term{}, nal.TruthValue{}, &MiddleTermError{Rule: "induction", First: ab.Expr, Second: ac.Expr}
	}
	return conclude(p2.predicate, p1.predicate, nal.Induction, p1.tv, p2.tv)
}

// RewriteAbduction: <a --> c>, <b --> c> |- <b --> a>.
func RewriteAbduction(ac, bc nal.Term) (nal.Term, nal.TruthValue, error) {
	p1, p2, err := splitPair(ac, bc)
	if err != nil {
		return nal.Term{}, nal.TruthValue{}, err
	}
	if p1.predicate != p2.predicate || p1.subject == p2.subject {
		return nal.Term{}, nal.TruthValue{}, &MiddleTermError{Rule: "abduction", First: ac.Expr, Second: bc.Expr}
	}
	return conclude(p2.subject, p1.subject, nal.Abduction, p1.tv, p2.tv)
}
