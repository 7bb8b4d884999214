// Package storetest checks store.Store implementations against the shared
// belief store contract.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/store"
)

// Factory opens a fresh, empty store for one subtest.
type Factory func(t *testing.T) store.Store

// Run exercises every Store operation against stores built by open.
func Run(t *testing.T, open Factory) {
	t.Run("AddAssignsSequentialIDs", func(t *testing.T) { testAdd(t, open(t)) })
	t.Run("GetBelief", func(t *testing.T) { testGet(t, open(t)) })
	t.Run("FindReturnsLatest", func(t *testing.T) { testFind(t, open(t)) })
	t.Run("ListBeliefs", func(t *testing.T) { testList(t, open(t)) })
	t.Run("TouchBelief", func(t *testing.T) { testTouch(t, open(t)) })
	t.Run("Snapshot", func(t *testing.T) { testSnapshot(t, open(t)) })
	t.Run("ReturnedEmbedIDsAreCopies", func(t *testing.T) { testEmbedIDCopies(t, open(t)) })
}

func testAdd(t *testing.T, s store.Store) {
	ctx := context.Background()
	embed := uint64(5)

	a, err := s.AddBelief(ctx, "<a --> b>", nal.MustTruthValue(1, 0.9), nil)
	require.NoError(t, err)
	b, err := s.AddBelief(ctx, "<b --> c>", nal.MustTruthValue(0.5, 0.4), &embed)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), a.ID)
	assert.Equal(t, uint64(0), a.Timestamp)
	assert.Equal(t, uint64(1), b.ID)
	assert.Equal(t, uint64(1), b.Timestamp)
	assert.Nil(t, a.EmbedID)
	require.NotNil(t, b.EmbedID)
	assert.Equal(t, uint64(5), *b.EmbedID)
}

func testGet(t *testing.T, s store.Store) {
	ctx := context.Background()
	added, err := s.AddBelief(ctx, "<robin --> bird>", nal.MustTruthValue(0.8, 0.9), nil)
	require.NoError(t, err)

	got, err := s.GetBelief(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "<robin --> bird>", got.Term)
	assert.True(t, got.TV.Equal(nal.MustTruthValue(0.8, 0.9), 1e-12))

	_, err = s.GetBelief(ctx, 999)
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
}

func testFind(t *testing.T, s store.Store) {
	ctx := context.Background()
	_, err := s.AddBelief(ctx, "<a --> b>", nal.MustTruthValue(1, 0.5), nil)
	require.NoError(t, err)
	_, err = s.AddBelief(ctx, "<x --> y>", nal.MustTruthValue(1, 0.5), nil)
	require.NoError(t, err)
	latest, err := s.AddBelief(ctx, "<a --> b>", nal.MustTruthValue(1, 0.9), nil)
	require.NoError(t, err)

	got, ok, err := s.FindBelief(ctx, "<a --> b>")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, latest.ID, got.ID)

	_, ok, err = s.FindBelief(ctx, "<nothing --> here>")
	require.NoError(t, err)
	assert.False(t, ok)
}

func testList(t *testing.T, s store.Store) {
	ctx := context.Background()
	for _, term := range []string{"<a --> b>", "<b --> c>", "<c --> d>"} {
		_, err := s.AddBelief(ctx, term, nal.Prior, nil)
		require.NoError(t, err)
	}

	all, err := s.ListBeliefs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "<a --> b>", all[0].Term)
	assert.Equal(t, "<c --> d>", all[2].Term)

	two, err := s.ListBeliefs(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func testTouch(t *testing.T, s store.Store) {
	ctx := context.Background()
	b, err := s.AddBelief(ctx, "<a --> b>", nal.Prior, nil)
	require.NoError(t, err)

	require.NoError(t, s.TouchBelief(ctx, b.ID))
	require.NoError(t, s.TouchBelief(ctx, b.ID))

	got, err := s.GetBelief(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.UsageCount)

	assert.ErrorIs(t, s.TouchBelief(ctx, 999), internalerr.ErrNotFound)
}

func testSnapshot(t *testing.T, s store.Store) {
	ctx := context.Background()
	_, err := s.AddBelief(ctx, "rA9.", nal.MustTruthValue(0.8, 0.9), nil)
	require.NoError(t, err)

	mem, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, mem.Len())
	assert.Equal(t, uint64(1), mem.LastID)
	assert.Equal(t, uint64(1), mem.CurrentTimestamp)
	assert.Equal(t, "rA9.", mem.Items[0].Term)

	_, err = s.AddBelief(ctx, "rB1.", nal.Prior, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Len())
}

func testEmbedIDCopies(t *testing.T, s store.Store) {
	ctx := context.Background()
	embed := uint64(5)
	added, err := s.AddBelief(ctx, "<a --> b>", nal.Prior, &embed)
	require.NoError(t, err)
	*added.EmbedID = 100

	got, err := s.GetBelief(ctx, added.ID)
	require.NoError(t, err)
	*got.EmbedID = 101

	found, ok, err := s.FindBelief(ctx, "<a --> b>")
	require.NoError(t, err)
	require.True(t, ok)
	*found.EmbedID = 102

	list, err := s.ListBeliefs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	*list[0].EmbedID = 103

	again, err := s.GetBelief(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, again.EmbedID)
	assert.Equal(t, uint64(5), *again.EmbedID)
}
