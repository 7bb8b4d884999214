package nal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
)

func TestNewSentenceVariants(t *testing.T) {
	s, err := NewSentence("robin --> bird", ".", Eternal, &[2]string{"0.9", "0.8"})
	require.NoError(t, err)
	j, ok := s.(Judgement)
	require.True(t, ok)
	assert.Equal(t, "robin --> bird", j.Term().Name())
	assert.Equal(t, Eternal, j.Tense())
	assert.Equal(t, byte(JudgementMark), j.Punctuation())
	assert.True(t, j.Truth.Equal(MustTruthValue(0.9, 0.8), 0))

	s, err = NewSentence("robin --> bird", "?", Present, nil)
	require.NoError(t, err)
	q, ok := s.(Question)
	require.True(t, ok)
	assert.True(t, q.Truth.Equal(Prior, 0))

	s, err = NewSentence("robin --> bird", "!", Future, nil)
	require.NoError(t, err)
	g, ok := s.(Goal)
	require.True(t, ok)
	assert.Equal(t, 1.0, g.Desire.Strength())
	assert.Equal(t, 0.5, g.Desire.Confidence())
}

func TestNewSentenceErrors(t *testing.T) {
	_, err := NewSentence("x --> y", ":", Eternal, nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidPunctuation)
	var pe *PunctuationError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ":", pe.Token)

	_, err = NewSentence("x --> y", "", Eternal, nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidPunctuation)

	_, err = NewSentence("x --> y", ".", Eternal, &[2]string{"1.5", "0.5"})
	assert.ErrorIs(t, err, internalerr.ErrOutOfRange)

	_, err = NewSentence("x --> y", ".", Eternal, &[2]string{"abc", "0.5"})
	assert.ErrorIs(t, err, internalerr.ErrParse)
}

func TestSentenceString(t *testing.T) {
	j := Judgement{Statement: NewTerm("corridor --> location"), Truth: Prior, When: Present}
	assert.Equal(t, "<corridor --> location>. :|: {1.0 0.5}", j.String())

	q := Question{Statement: NewTerm("<a --> b>"), Truth: Prior}
	assert.Equal(t, "<a --> b>? {1.0 0.5}", q.String())

	g := Goal{Statement: NewTerm("a --> b"), Desire: DesireFromTruth(MustTruthValue(0.8, 0.9)), When: Past}
	assert.Equal(t, `<a --> b>! :\: {0.8 0.9}`, g.String())
}

func TestJudgementBelief(t *testing.T) {
	j := Judgement{Statement: NewTerm("a --> b"), Truth: MustTruthValue(0.7, 0.6)}
	b := j.Belief()
	require.NotNil(t, b.TV)
	assert.True(t, b.TV.Equal(j.Truth, 0))
	assert.Equal(t, "a --> b", b.Expr)
}

func TestNewSentenceOverflowIsOutOfRange(t *testing.T) {
	_, err := NewSentence("x --> y", ".", Eternal, &[2]string{"1e400", "0.9"})
	assert.ErrorIs(t, err, internalerr.ErrOutOfRange)
	assert.NotErrorIs(t, err, internalerr.ErrParse)

	_, err = NewSentence("x --> y", ".", Eternal, &[2]string{"0.5", "1e400"})
	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "confidence", re.Field)
}
