package ops

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupRestoreRoundTrip(t *testing.T) {
	src := t.TempDir()
	files := map[string]string{
		"ownedBusinesses.json":   `["bunker","meth"]`,
		"businessData.json":      `{"bunker":{"supplies":80,"product":10}}`,
		"businessLocations.json": `{"bunker":[1200,3400]}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte(content), 0o644))
	}

	archive := filepath.Join(t.TempDir(), "snapshot.tar.gz")
	require.NoError(t, Backup(src, archive))

	out := filepath.Join(t.TempDir(), "restored")
	require.NoError(t, Restore(archive, out))

	for name, content := range files {
		b, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err)
		assert.Equal(t, content, string(b))
	}
}

func TestBackupSkipsSQLiteSidecars(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "state.db"), []byte("db"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "state.db-wal"), []byte("wal"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "state.db-shm"), []byte("shm"), 0o644))

	archive := filepath.Join(t.TempDir(), "snapshot.tar.gz")
	require.NoError(t, Backup(src, archive))

	out := filepath.Join(t.TempDir(), "restored")
	require.NoError(t, Restore(archive, out))

	assert.FileExists(t, filepath.Join(out, "state.db"))
	assert.NoFileExists(t, filepath.Join(out, "state.db-wal"))
	assert.NoFileExists(t, filepath.Join(out, "state.db-shm"))
}

func TestRestoreRejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bad.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "../escape.txt",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     3,
	}))
	_, err = tw.Write([]byte("bad"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	assert.Error(t, Restore(archive, filepath.Join(t.TempDir(), "out")))
}
