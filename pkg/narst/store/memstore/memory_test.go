package memstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/store"
	"github.com/ntoxeg/narst/pkg/narst/store/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s := New()
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestAddRejectsEmptyTerm(t *testing.T) {
	_, err := New().AddBelief(context.Background(), "", nal.Prior, nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testmem.json")

	s, err := Open(path)
	require.NoError(t, err)

	list, err := s.ListBeliefs(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCloseWritesDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "testmem.json")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.AddBelief(ctx, "rA9.", nal.MustTruthValue(0.8, 0.9), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"items":[{"id":0,"timestamp":0,"term":"rA9.","tv":{"strength":0.8,"confidence":0.9},"usage_count":0,"embed_id":null}],"last_id":1,"current_timestamp":1}`,
		string(data))

	reopened, err := Open(path)
	require.NoError(t, err)
	b, err := reopened.AddBelief(ctx, "rB1.", nal.Prior, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), b.ID)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testmem.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, internalerr.ErrIO)
	var syntax *json.SyntaxError
	assert.ErrorAs(t, err, &syntax)
}

func TestFlushWithoutPathIsNoop(t *testing.T) {
	assert.NoError(t, New().Flush(context.Background()))
}
