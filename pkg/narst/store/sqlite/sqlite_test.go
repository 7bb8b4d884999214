package sqlite

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/store"
	"github.com/ntoxeg/narst/pkg/narst/store/storetest"
)

func openTemp(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "narst.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, openTemp)
}

func TestCountersSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "narst.db")

	st, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	_, err = st.AddBelief(ctx, "<a --> b>", nal.MustTruthValue(1, 0.9), nil)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer st.Close()

	b, err := st.AddBelief(ctx, "<b --> c>", nal.MustTruthValue(1, 0.9), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), b.ID)
	assert.Equal(t, uint64(1), b.Timestamp)

	mem, err := st.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), mem.LastID)
	assert.Equal(t, 2, mem.Len())
}

func TestAddRejectsEmbedIDBeyondInt64(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	embed := uint64(math.MaxInt64) + 1
	_, err := st.AddBelief(ctx, "<a --> b>", nal.Prior, &embed)
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	list, err := st.ListBeliefs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	embed = math.MaxInt64
	b, err := st.AddBelief(ctx, "<a --> b>", nal.Prior, &embed)
	require.NoError(t, err)
	got, err := st.GetBelief(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxInt64), *got.EmbedID)
}
