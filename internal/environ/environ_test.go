package environ

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "spec.md"), []byte("# Spec"), 0o644))

	env := NewLocal(root)
	ctx := context.Background()

	exists, err := env.FileExists(ctx, "docs/spec.md")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = env.FileExists(ctx, "docs/missing.md")
	require.NoError(t, err)
	assert.False(t, exists)

	// Directories are not files.
	exists, err = env.FileExists(ctx, "docs")
	require.NoError(t, err)
	assert.False(t, exists)

	data, err := env.ReadFile(ctx, "docs/spec.md")
	require.NoError(t, err)
	assert.Equal(t, "# Spec", string(data))

	_, err = env.ReadFile(ctx, "docs/missing.md")
	require.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "spec.md"), []byte("# Spec"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "extra.md"), []byte("extra"), 0o644))

	snap := NewSnapshot([]string{"spec.md", "code.go"}, NewLocal(root))
	ctx := context.Background()

	t.Run("existence answered from the set", func(t *testing.T) {
		exists, err := snap.FileExists(ctx, "spec.md")
		require.NoError(t, err)
		assert.True(t, exists)

		// On disk but absent from the snapshot listing.
		exists, err = snap.FileExists(ctx, "extra.md")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("reads delegate to the fallback", func(t *testing.T) {
		data, err := snap.ReadFile(ctx, "spec.md")
		require.NoError(t, err)
		assert.Equal(t, "# Spec", string(data))
	})

	t.Run("reads outside the snapshot fail", func(t *testing.T) {
		_, err := snap.ReadFile(ctx, "extra.md")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not present in snapshot")
	})

	t.Run("listed but unreadable surfaces the fallback error", func(t *testing.T) {
		_, err := snap.ReadFile(ctx, "code.go")
		require.Error(t, err)
	})
}

func TestSnapshotNilFallback(t *testing.T) {
	snap := NewSnapshot([]string{"spec.md"}, nil)
	_, err := snap.ReadFile(context.Background(), "spec.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reader")
}
