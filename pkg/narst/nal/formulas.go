package nal

import (
	"fmt"
	"sort"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
)

// Reliance is the truth value of the implicit premise used by the
// structural rules.
var Reliance = TruthValue{ev: EvidentialValue{s: 1.0, c: 0.9}}

// Prior is the truth value assumed when a sentence carries none.
var Prior = TruthValue{ev: EvidentialValue{s: 1.0, c: 0.5}}

// Function combines two premise truth values into a conclusion truth value.
type Function func(t1, t2 TruthValue) (TruthValue, error)

// Functions maps rule names to the binary truth functions.
var Functions = map[string]Function{
	"deduction":       Deduction,
	"abduction":       Abduction,
	"induction":       Induction,
	"exemplification": Exemplification,
	"intersection":    Intersection,
	"comparison":      Comparison,
	"analogy":         Analogy,
	"resemblance":     Resemblance,
	"union":           Union,
	"difference":      Difference,
	"decompose_pnn":   DecomposePNN,
	"decompose_npp":   DecomposeNPP,
	"decompose_pnp":   DecomposePNP,
	"decompose_ppp":   DecomposePPP,
	"decompose_nnn":   DecomposeNNN,
}

// LookupFunction returns the named binary truth function.
func LookupFunction(name string) (Function, error) {
	fn, ok := Functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownFunction, name)
	}
	return fn, nil
}

// FunctionNames lists the registered binary truth functions in sorted order.
func FunctionNames() []string {
	names := make([]string, 0, len(Functions))
	for name := range Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// W2C converts an amount of evidence into confidence.
func W2C(w float64) float64 {
	return w / (w + 1)
}

// Or is the probabilistic disjunction of a and b.
func Or(a, b float64) float64 {
	return 1 - (1-a)*(1-b)
}

func unpack(t1, t2 TruthValue) (f1, c1, f2, c2 float64) {
	return t1.ev.s, t1.ev.c, t2.ev.s, t2.ev.c
}

// Deduction: {M --> P, S --> M} |- S --> P.
func Deduction(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	f := f1 * f2
	return NewTruthValue(f, f*c1*c2)
}

// Abduction: {P --> M, S --> M} |- S --> P.
func Abduction(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	return NewTruthValue(f2, W2C(f1*c1*c2))
}

// Induction is abduction with the premises swapped.
func Induction(t1, t2 TruthValue) (TruthValue, error) {
	return Abduction(t2, t1)
}

// Exemplification: {P --> M, M --> S} |- S --> P.
func Exemplification(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	return NewTruthValue(1.0, W2C(f1*f2*c1*c2))
}

// StructuralDeduction is deduction against Reliance.
func StructuralDeduction(t TruthValue) (TruthValue, error) {
	return Deduction(t, Reliance)
}

// Negation complements the strength and keeps the confidence.
func Negation(t TruthValue) (TruthValue, error) {
	return NewTruthValue(1-t.ev.s, t.ev.c)
}

// StructuralDeductionNegated negates the structural deduction of t.
func StructuralDeductionNegated(t TruthValue) (TruthValue, error) {
	sd, err := StructuralDeduction(t)
	if err != nil {
		return TruthValue{}, err
	}
	return Negation(sd)
}

// Intersection multiplies both strengths and both confidences.
func Intersection(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	return NewTruthValue(f1*f2, c1*c2)
}

// StructuralIntersection is intersection with Reliance.
func StructuralIntersection(t TruthValue) (TruthValue, error) {
	return Intersection(t, Reliance)
}

// Comparison: {M --> P, M --> S} |- S <-> P.
func Comparison(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	f0 := Or(f1, f2)
	if f0 == 0 {
		return NewTruthValue(0, W2C(f1*f2*c1*c2))
	}
	return NewTruthValue(f1*f2/f0, W2C(f0*c1*c2))
}

// Analogy: {M --> P, S <-> M} |- S --> P.
func Analogy(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	return NewTruthValue(f1*f2, c1*c2*f2)
}

// Resemblance: {M <-> P, S <-> M} |- S <-> P.
func Resemblance(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	return NewTruthValue(f1*f2, c1*c2*Or(f1, f2))
}

// Union takes the disjunction of the strengths.
func Union(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	return NewTruthValue(Or(f1, f2), c1*c2)
}

// Difference keeps what the first premise has and the second lacks.
func Difference(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	return NewTruthValue(f1*(1-f2), c1*c2)
}

// The decompose family: P/N in the name marks whether each premise (and
// finally the conclusion) is taken positively or negated.

// DecomposePNN: first premise positive, second and conclusion negated.
func DecomposePNN(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	fn := f1 * (1 - f2)
	return NewTruthValue(1-fn, fn*c1*c2)
}

// DecomposeNPP: first premise negated, second and conclusion positive.
func DecomposeNPP(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	f := (1 - f1) * f2
	return NewTruthValue(f, f*c1*c2)
}

// DecomposePNP: first premise positive, second negated, conclusion positive.
func DecomposePNP(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	f := f1 * (1 - f2)
	return NewTruthValue(f, f*c1*c2)
}

// DecomposePPP is DecomposeNPP applied to the negation of the first premise.
func DecomposePPP(t1, t2 TruthValue) (TruthValue, error) {
	n1, err := Negation(t1)
	if err != nil {
		return TruthValue{}, err
	}
	return DecomposeNPP(n1, t2)
}

// DecomposeNNN: both premises and the conclusion negated.
func DecomposeNNN(t1, t2 TruthValue) (TruthValue, error) {
	f1, c1, f2, c2 := unpack(t1, t2)
	fn := (1 - f1) * (1 - f2)
	return NewTruthValue(1-fn, fn*c1*c2)
}
