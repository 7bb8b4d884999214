package narsese

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal(t *testing.T) {
	tests := []struct {
		input, out, rest string
	}{
		{"42", "42", ""},
		{"1_000 rest", "1_000", " rest"},
		{"1_000_", "1_000", "_"},
		{"7.5", "7", ".5"},
	}
	for _, tt := range tests {
		rest, out, err := Decimal(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.out, out, tt.input)
		assert.Equal(t, tt.rest, rest, tt.input)
	}

	_, _, err := Decimal("_1")
	assert.Error(t, err)
}

func TestFloat(t *testing.T) {
	tests := []struct {
		input, out, rest string
	}{
		{".42", ".42", ""},
		{".42e-3 x", ".42e-3", " x"},
		{"42e42", "42e42", ""},
		{"42.42E+2}", "42.42E+2", "}"},
		{"42.", "42.", ""},
		{"42.42 0.9", "42.42", " 0.9"},
		{"0.000_5}", "0.000_5", "}"},
		{"1.5e", "1.5", "e"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rest, out, err := Float(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.out, out)
			assert.Equal(t, tt.rest, rest)
		})
	}

	for _, bad := range []string{"", "42", ".", "e5", "x1.0"} {
		_, _, err := Float(bad)
		assert.Error(t, err, bad)
	}
}

func TestStripSeparators(t *testing.T) {
	assert.Equal(t, "1000.05", stripSeparators("1_000.0_5"))
}
