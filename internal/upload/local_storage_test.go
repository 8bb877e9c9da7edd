package upload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewLocalStorage(dir)
	ctx := context.Background()

	obj, err := storage.Put(ctx, "1-abc.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1-abc.png", obj.URL)
	assert.Equal(t, "1-abc.png", obj.Path)

	data, err := os.ReadFile(filepath.Join(dir, "1-abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	require.NoError(t, storage.Remove(ctx, "products/1-abc.png"))
	_, err = os.Stat(filepath.Join(dir, "1-abc.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RemoveStaysInsideDir(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	storage := NewLocalStorage(filepath.Join(root, "uploads"))

	err := storage.Remove(context.Background(), "../secret.txt")
	assert.Error(t, err)
	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr)
}

func TestLocalStorage_RemoveMissingFile(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())
	assert.Error(t, storage.Remove(context.Background(), "nope.png"))
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"a.png", "a.png", false},
		{"products/a.png", "a.png", false},
		{"../../etc/passwd", "passwd", false},
		{"", "", true},
		{"..", "", true},
	}
	for _, tt := range tests {
		got, err := safeName(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
