package narst

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntoxeg/narst/pkg/narst/inference/syllogistic"
	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/store/memstore"
)

func newReasoner(t *testing.T) *Narst {
	t.Helper()
	n := New(Options{Store: memstore.New(), Inference: syllogistic.New()})
	t.Cleanup(func() { n.Close() })
	return n
}

func TestInputStoresJudgements(t *testing.T) {
	ctx := context.Background()
	n := newReasoner(t)

	s, err := n.Input(ctx, "<robin --> bird>. {1.0 0.9}")
	require.NoError(t, err)
	assert.IsType(t, nal.Judgement{}, s)

	list, err := n.Store().ListBeliefs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "<robin --> bird>", list[0].Term)

	_, ok := n.Engine().Query("robin", "bird")
	assert.True(t, ok)
}

func TestInputLeavesQuestionsAndGoalsUnstored(t *testing.T) {
	ctx := context.Background()
	n := newReasoner(t)

	for _, text := range []string{"<robin --> bird>?", "<robin --> bird>! :/:"} {
		_, err := n.Input(ctx, text)
		require.NoError(t, err)
	}
	list, err := n.Store().ListBeliefs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInputKeepsNonInheritanceBeliefs(t *testing.T) {
	ctx := context.Background()
	n := newReasoner(t)

	_, err := n.Input(ctx, "<a <-> b>. {1.0 0.9}")
	require.NoError(t, err)

	list, err := n.Store().ListBeliefs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Empty(t, n.Engine().Beliefs())
}

func TestInputRejectsMalformedText(t *testing.T) {
	_, err := newReasoner(t).Input(context.Background(), "<x --> y>:")
	assert.ErrorIs(t, err, internalerr.ErrInvalidPunctuation)
}

func TestBelieveRequiresTruth(t *testing.T) {
	err := newReasoner(t).Believe(context.Background(), nal.NewTerm("<a --> b>"))
	assert.ErrorIs(t, err, internalerr.ErrMissingTruth)
}

func TestAnswerTouchesBelief(t *testing.T) {
	ctx := context.Background()
	n := newReasoner(t)

	_, err := n.Input(ctx, "<robin --> bird>. {0.8 0.9}")
	require.NoError(t, err)

	s, err := n.Input(ctx, "<robin --> bird>?")
	require.NoError(t, err)

	b, ok, err := n.Answer(ctx, s.(nal.Question))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.8, b.TV.Strength())
	assert.Equal(t, uint64(1), b.UsageCount)

	_, ok, err = n.Answer(ctx, nal.Question{Statement: nal.NewTerm("fish --> bird")})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestThinkStoresConclusions(t *testing.T) {
	ctx := context.Background()
	n := newReasoner(t)

	for _, text := range []string{"<robin --> bird>. {1.0 0.9}", "<bird --> animal>. {1.0 0.9}"} {
		_, err := n.Input(ctx, text)
		require.NoError(t, err)
	}

	derived, err := n.Think(ctx, 1)
	require.NoError(t, err)
	require.Len(t, derived, 2)

	b, ok, err := n.Store().FindBelief(ctx, "<robin --> animal>")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.81, b.TV.Confidence(), 1e-9)
}

func TestThinkWithoutEngine(t *testing.T) {
	n := New(Options{Store: memstore.New()})
	derived, err := n.Think(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, derived)
}
