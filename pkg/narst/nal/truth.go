// Package nal implements the value types and truth calculus of
// Non-Axiomatic Logic: evidential values, terms, tenses and sentences.
package nal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
)

// RangeError reports a strength or confidence outside its legal interval.
type RangeError struct {
	Field string // "strength" or "confidence"
	Value float64
}

func (e *RangeError) Error() string {
	interval := "[0.0; 1.0]"
	if e.Field == "confidence" {
		interval = "[0.0; 1.0)"
	}
	return fmt.Sprintf("%s %v must lie in the interval %s", e.Field, e.Value, interval)
}

// Unwrap lets errors.Is match internalerr.ErrOutOfRange.
func (e *RangeError) Unwrap() error { return internalerr.ErrOutOfRange }

// EvidentialValue is a validated (strength, confidence) pair.
// Strength lies in [0, 1], confidence in [0, 1).
type EvidentialValue struct {
	s float64
	c float64
}

// NewEvidentialValue validates and builds an evidential value.
func NewEvidentialValue(strength, confidence float64) (EvidentialValue, error) {
	// Negated comparisons so that NaN is rejected as well.
	if !(strength >= 0 && strength <= 1) {
		return EvidentialValue{}, &RangeError{Field: "strength", Value: strength}
	}
	if !(confidence >= 0 && confidence < 1) {
		return EvidentialValue{}, &RangeError{Field: "confidence", Value: confidence}
	}
	return EvidentialValue{s: strength, c: confidence}, nil
}

// Strength returns the frequency component, in [0, 1].
func (ev EvidentialValue) Strength() float64 { return ev.s }

// Confidence returns the confidence component, in [0, 1).
func (ev EvidentialValue) Confidence() float64 { return ev.c }

// TruthValue measures how well-supported a statement is.
type TruthValue struct {
	ev EvidentialValue
}

// NewTruthValue builds a truth value, failing with a *RangeError when out of range.
func NewTruthValue(strength, confidence float64) (TruthValue, error) {
	ev, err := NewEvidentialValue(strength, confidence)
	if err != nil {
		return TruthValue{}, err
	}
	return TruthValue{ev: ev}, nil
}

// MustTruthValue is like NewTruthValue but panics on invalid input.
// Intended for constants and tests.
func MustTruthValue(strength, confidence float64) TruthValue {
	tv, err := NewTruthValue(strength, confidence)
	if err != nil {
		panic(err)
	}
	return tv
}

// Strength returns the frequency of positive evidence.
func (tv TruthValue) Strength() float64 { return tv.ev.s }

// Confidence returns how stable the strength is against new evidence.
func (tv TruthValue) Confidence() float64 { return tv.ev.c }

// Evidence returns the underlying evidential pair.
func (tv TruthValue) Evidence() EvidentialValue { return tv.ev }

// String renders the Narsese truth suffix, e.g. "{0.9 0.81}".
func (tv TruthValue) String() string { return formatPair(tv.ev) }

// Equal reports whether both components agree within tolerance.
func (tv TruthValue) Equal(other TruthValue, tolerance float64) bool {
	return math.Abs(tv.ev.s-other.ev.s) <= tolerance && math.Abs(tv.ev.c-other.ev.c) <= tolerance
}

// DesireValue measures how much a statement serves the system's goals.
type DesireValue struct {
	ev EvidentialValue
}

// NewDesireValue builds a desire value with the same range contract as a truth value.
func NewDesireValue(strength, confidence float64) (DesireValue, error) {
	ev, err := NewEvidentialValue(strength, confidence)
	if err != nil {
		return DesireValue{}, err
	}
	return DesireValue{ev: ev}, nil
}

// DesireFromTruth relabels a truth value as a desire value.
func DesireFromTruth(tv TruthValue) DesireValue {
	return DesireValue{ev: tv.ev}
}

// Strength returns how strongly the statement is desired.
func (d DesireValue) Strength() float64 { return d.ev.s }

// Confidence returns the confidence of the desire.
func (d DesireValue) Confidence() float64 { return d.ev.c }

// String renders the desire in truth-suffix form, e.g. "{0.8 0.9}".
func (d DesireValue) String() string { return formatPair(d.ev) }

type evidenceJSON struct {
	Strength   float64 `json:"strength"`
	Confidence float64 `json:"confidence"`
}

func (tv TruthValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(evidenceJSON{Strength: tv.ev.s, Confidence: tv.ev.c})
}

func (tv *TruthValue) UnmarshalJSON(data []byte) error {
	ev, err := unmarshalEvidence(data)
	if err != nil {
		return err
	}
	tv.ev = ev
	return nil
}

func (d DesireValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(evidenceJSON{Strength: d.ev.s, Confidence: d.ev.c})
}

func (d *DesireValue) UnmarshalJSON(data []byte) error {
	ev, err := unmarshalEvidence(data)
	if err != nil {
		return err
	}
	d.ev = ev
	return nil
}

func unmarshalEvidence(data []byte) (EvidentialValue, error) {
	var raw evidenceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return EvidentialValue{}, err
	}
	return NewEvidentialValue(raw.Strength, raw.Confidence)
}

func formatPair(ev EvidentialValue) string {
	return "{" + formatFloat(ev.s) + " " + formatFloat(ev.c) + "}"
}

// formatFloat renders at most four decimals and always emits a decimal
// point so the output re-parses as a Narsese float.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
