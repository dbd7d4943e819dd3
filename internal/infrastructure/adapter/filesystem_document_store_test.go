package adapter_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soufieneghribi/credit-dossier-service/internal/infrastructure/adapter"
)

func newStore(t *testing.T) (*adapter.FilesystemDocumentStore, string, string) {
	t.Helper()
	staging := t.TempDir()
	durable := t.TempDir()
	store, err := adapter.NewFilesystemDocumentStore(staging, durable)
	require.NoError(t, err)
	return store, staging, durable
}

func TestFilesystemDocumentStore_StageAndPromote(t *testing.T) {
	store, staging, durable := newStore(t)
	ctx := context.Background()

	content := "scanned id card"
	ref, err := store.Stage(ctx, "dossier-1", "ID_FRONT", "id.jpg", strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "dossier-1"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	data, err := os.ReadFile(filepath.Join(staging, ref))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	durableRef, err := store.Promote(ctx, "dossier-1", "ID_FRONT", ref)
	require.NoError(t, err)

	// The staged file moved into the durable store.
	_, err = os.Stat(filepath.Join(staging, ref))
	assert.True(t, os.IsNotExist(err))
	data, err = os.ReadFile(filepath.Join(durable, durableRef))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestFilesystemDocumentStore_StageRejectsShortContent(t *testing.T) {
	store, _, _ := newStore(t)

	_, err := store.Stage(context.Background(), "dossier-1", "ID_FRONT", "id.jpg",
		strings.NewReader("abc"), 100)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "short write")
}

func TestFilesystemDocumentStore_Discard(t *testing.T) {
	store, staging, _ := newStore(t)
	ctx := context.Background()

	ref, err := store.Stage(ctx, "dossier-1", "PAYSLIP", "pay.pdf", strings.NewReader("pdf"), 3)
	require.NoError(t, err)

	require.NoError(t, store.Discard(ctx, ref))
	_, err = os.Stat(filepath.Join(staging, ref))
	assert.True(t, os.IsNotExist(err))

	// Discarding twice is fine.
	assert.NoError(t, store.Discard(ctx, ref))
}

func TestFilesystemDocumentStore_RejectsEscapingReferences(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	_, err := store.Promote(ctx, "dossier-1", "ID_FRONT", "../../etc/passwd")
	assert.Error(t, err)

	err = store.Discard(ctx, "..")
	assert.Error(t, err)
}
