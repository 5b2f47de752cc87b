package preprocess

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointStoreRoundTripPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.tsv")

	store, err := OpenCheckpointStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(0, "Prvá", []string{"ahoj", "svet"}))
	require.NoError(t, store.Append(1, "Druhá", nil))
	require.NoError(t, store.Close())

	reopened, err := OpenCheckpointStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	terms, ok := reopened.Lookup("Prvá")
	require.True(t, ok)
	assert.Equal(t, []string{"ahoj", "svet"}, terms)

	terms, ok = reopened.Lookup("Druhá")
	require.True(t, ok)
	assert.Empty(t, terms)

	_, ok = reopened.Lookup("Neexistujúca")
	assert.False(t, ok)
}

func TestCheckpointStoreRoundTripCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.tsv.gz")

	store, err := OpenCheckpointStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(0, "Strana", []string{"jeden", "dva", "tri"}))
	require.NoError(t, store.Close())

	reopened, err := OpenCheckpointStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	terms, ok := reopened.Lookup("Strana")
	require.True(t, ok)
	assert.Equal(t, []string{"jeden", "dva", "tri"}, terms)
}
