package nal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
)

func TestSplitInheritance(t *testing.T) {
	tests := []struct {
		expr      string
		subject   string
		predicate string
	}{
		{"<robin --> bird>", "robin", "bird"},
		{"robin --> bird", "robin", "bird"},
		{"  <robin --> bird>  ", "robin", "bird"},
		{"<<a --> b> --> c>", "<a --> b>", "c"},
		{"<a --> <b --> c>>", "a", "<b --> c>"},
	}
	for _, tt := range tests {
		s, p, err := SplitInheritance(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.subject, s, tt.expr)
		assert.Equal(t, tt.predicate, p, tt.expr)
	}

	for _, bad := range []string{"robin", "<robin>", "--> bird", "<robin --> >"} {
		_, _, err := SplitInheritance(bad)
		assert.ErrorIs(t, err, internalerr.ErrNotInheritance, bad)
	}
}

func TestEnclosed(t *testing.T) {
	assert.True(t, Enclosed("<a --> b>"))
	assert.True(t, Enclosed("<<a --> b> --> c>"))
	assert.False(t, Enclosed("a --> b"))
	assert.False(t, Enclosed("<a --> b> --> <c --> d>"))
	assert.False(t, Enclosed("<"))

	assert.Equal(t, "a --> b", StripBrackets("<a --> b>"))
	assert.Equal(t, "a --> b", StripBrackets("a --> b"))
}

func TestInheritanceRoundTrip(t *testing.T) {
	expr := Inheritance("robin", "bird")
	assert.Equal(t, "<robin --> bird>", expr)

	s, p, err := SplitInheritance(expr)
	require.NoError(t, err)
	assert.Equal(t, "robin", s)
	assert.Equal(t, "bird", p)
}

func TestTermWithTruth(t *testing.T) {
	base := NewTerm("robin")
	assert.Equal(t, uint32(0), base.ID)
	assert.Equal(t, "robin", base.Name())
	assert.Nil(t, base.TV)

	withTV := base.WithTruth(MustTruthValue(0.9, 0.9))
	require.NotNil(t, withTV.TV)
	assert.Nil(t, base.TV)

	data, err := json.Marshal(base)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":0,"expr":"robin"}`, string(data))
}

func TestParseTense(t *testing.T) {
	tests := map[string]Tense{
		"":    Eternal,
		":|:": Present,
		`:\:`: Past,
		":/:": Future,
	}
	for token, want := range tests {
		got, err := ParseTense(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got)
		assert.Equal(t, token, got.Token())
	}

	_, err := ParseTense(":x:")
	assert.ErrorIs(t, err, internalerr.ErrParse)
}

func TestTenseJSON(t *testing.T) {
	data, err := json.Marshal(Past)
	require.NoError(t, err)
	assert.Equal(t, `"Past"`, string(data))

	var got Tense
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, Past, got)

	assert.Error(t, json.Unmarshal([]byte(`"Someday"`), &got))
	assert.Equal(t, "Tense(9)", Tense(9).String())
}
