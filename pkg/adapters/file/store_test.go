package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turnstile/internal/testutils"
	"github.com/aretw0/turnstile/pkg/adapters/file"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/aretw0/turnstile/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ports.RunAutomatonStoreContract(t, store)
}

func TestFileStore_ReadsHandWrittenFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contains.json"), []byte(testutils.ContainsOneJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	store := file.NewStore(dir)
	ctx := context.Background()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"contains"}, names)

	dfa, err := store.Load(ctx, "contains")
	require.NoError(t, err)
	ok, err := dfa.Accepts([]string{"0", "1"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStore_SaveReplacesOtherFormats(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lang.json"), []byte(testutils.ContainsOneJSON), 0644))

	store := file.NewStore(dir)
	ctx := context.Background()
	even := domain.MustNew(testutils.EvenOnes())
	require.NoError(t, store.Save(ctx, "lang", even))

	_, err := os.Stat(filepath.Join(dir, "lang.json"))
	assert.True(t, os.IsNotExist(err))

	loaded, err := store.Load(ctx, "lang")
	require.NoError(t, err)
	assert.True(t, domain.Equivalent(even, loaded))
}

func TestFileStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.dfa"), []byte(`{"symbol_set": {}}`), 0644))

	_, err := file.NewStore(dir).Load(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrMalformedDescription)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	store := file.NewStore(t.TempDir())
	_, err := store.Load(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, ports.ErrInvalidName)
}
