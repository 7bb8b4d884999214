package narsese

import "strings"

// Decimal recognises digit+ ('_' digit+)*.
func Decimal(input string) (rest, out string, err error) {
	i := digits(input, 0)
	if i == 0 {
		return input, "", mismatch(input, "decimal digits")
	}
	for i < len(input) && input[i] == '_' {
		j := digits(input, i+1)
		if j == i+1 {
			break
		}
		i = j
	}
	return input[i:], input[:i], nil
}

// Float recognises the three float shapes, tried in order:
//
//	'.' decimal exponent?            ".42", ".42e-3"
//	decimal ('.' decimal)? exponent  "42e42", "42.42e42"
//	decimal '.' decimal?             "42.", "42.42"
//
// The returned text still contains any digit separators.
func Float(input string) (rest, out string, err error) {
	for _, alt := range []func(string) (int, bool){leadingDot, withExponent, plainFraction} {
		if n, ok := alt(input); ok {
			return input[n:], input[:n], nil
		}
	}
	return input, "", mismatch(input, "float")
}

func leadingDot(s string) (int, bool) {
	if !strings.HasPrefix(s, ".") {
		return 0, false
	}
	n, ok := decimalLen(s[1:])
	if !ok {
		return 0, false
	}
	n++
	if e, ok := exponentLen(s[n:]); ok {
		n += e
	}
	return n, true
}

func withExponent(s string) (int, bool) {
	n, ok := decimalLen(s)
	if !ok {
		return 0, false
	}
	if strings.HasPrefix(s[n:], ".") {
		if m, ok := decimalLen(s[n+1:]); ok {
			n += 1 + m
		}
	}
	e, ok := exponentLen(s[n:])
	if !ok {
		return 0, false
	}
	return n + e, true
}

func plainFraction(s string) (int, bool) {
	n, ok := decimalLen(s)
	if !ok || !strings.HasPrefix(s[n:], ".") {
		return 0, false
	}
	n++
	if m, ok := decimalLen(s[n:]); ok {
		n += m
	}
	return n, true
}

// exponentLen matches [eE] [+-]? decimal.
func exponentLen(s string) (int, bool) {
	if s == "" || (s[0] != 'e' && s[0] != 'E') {
		return 0, false
	}
	n := 1
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	m, ok := decimalLen(s[n:])
	if !ok {
		return 0, false
	}
	return n + m, true
}

func decimalLen(s string) (int, bool) {
	rest, _, err := Decimal(s)
	if err != nil {
		return 0, false
	}
	return len(s) - len(rest), true
}

func digits(s string, from int) int {
	i := from
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func stripSeparators(s string) string {
	return strings.ReplaceAll(s, "_", "")
}
