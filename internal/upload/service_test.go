package upload

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "sabores/internal/errors"
)

type mockStorage struct {
	source     string
	PutFunc    func(ctx context.Context, name, contentType string, data []byte) (*StoredObject, error)
	RemoveFunc func(ctx context.Context, path string) error
	puts       int
}

func (m *mockStorage) Source() string { return m.source }

func (m *mockStorage) Put(ctx context.Context, name, contentType string, data []byte) (*StoredObject, error) {
	m.puts++
	return m.PutFunc(ctx, name, contentType, data)
}

func (m *mockStorage) Remove(ctx context.Context, path string) error {
	return m.RemoveFunc(ctx, path)
}

func failingStorage(source string) *mockStorage {
	return &mockStorage{
		source: source,
		PutFunc: func(ctx context.Context, name, contentType string, data []byte) (*StoredObject, error) {
			return nil, errors.New("bucket unavailable")
		},
		RemoveFunc: func(ctx context.Context, path string) error { return errors.New("bucket unavailable") },
	}
}

func acceptingStorage(source string) *mockStorage {
	return &mockStorage{
		source: source,
		PutFunc: func(ctx context.Context, name, contentType string, data []byte) (*StoredObject, error) {
			return &StoredObject{URL: "/uploads/" + name, Path: name}, nil
		},
		RemoveFunc: func(ctx context.Context, path string) error { return nil },
	}
}

func newTestService(storages ...Storage) *Service {
	svc := NewService(DefaultMaxBytes, zap.NewNop(), storages...)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestUpload_FallsBackToNextStorage(t *testing.T) {
	remote := failingStorage(SourceSupabase)
	local := acceptingStorage(SourceLocal)
	svc := newTestService(remote, local)

	result, err := svc.Upload(context.Background(), File{Name: "bolo.JPG", ContentType: "image/jpeg", Data: []byte("img")})

	require.NoError(t, err)
	assert.Equal(t, SourceLocal, result.Source)
	assert.Regexp(t, `^1700000000000-[0-9a-f]{10}\.jpg$`, result.Path)
	assert.Equal(t, "/uploads/"+result.Path, result.URL)
	assert.Equal(t, 1, remote.puts)
	assert.Equal(t, 1, local.puts)
}

func TestUpload_FirstStorageWins(t *testing.T) {
	remote := acceptingStorage(SourceSupabase)
	local := acceptingStorage(SourceLocal)
	svc := newTestService(remote, local)

	result, err := svc.Upload(context.Background(), File{Name: "a.png", ContentType: "image/png", Data: []byte("img")})

	require.NoError(t, err)
	assert.Equal(t, SourceSupabase, result.Source)
	assert.Equal(t, 0, local.puts)
}

func TestUpload_AllStoragesFail(t *testing.T) {
	svc := newTestService(failingStorage(SourceSupabase), failingStorage(SourceLocal))

	_, err := svc.Upload(context.Background(), File{Name: "a.png", ContentType: "image/png", Data: []byte("img")})

	var ie *apperrors.InternalError
	require.ErrorAs(t, err, &ie)
}

func TestUpload_RejectsBeforeStorage(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{"not an image", File{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hi")}},
		{"too large", File{Name: "big.png", ContentType: "image/png", Data: make([]byte, DefaultMaxBytes+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := acceptingStorage(SourceLocal)
			svc := newTestService(storage)

			_, err := svc.Upload(context.Background(), tt.file)

			_, ok := apperrors.IsValidationError(err)
			assert.True(t, ok)
			assert.Equal(t, 0, storage.puts)
		})
	}
}

func TestValidate_ExactLimitAccepted(t *testing.T) {
	svc := newTestService()
	assert.NoError(t, svc.Validate("image/webp", DefaultMaxBytes))
}

func TestDelete(t *testing.T) {
	var removed string
	primary := acceptingStorage(SourceSupabase)
	primary.RemoveFunc = func(ctx context.Context, path string) error {
		removed = path
		return nil
	}
	svc := newTestService(primary, acceptingStorage(SourceLocal))

	source, err := svc.Delete(context.Background(), "products/1-abc.png")

	require.NoError(t, err)
	assert.Equal(t, SourceSupabase, source)
	assert.Equal(t, "products/1-abc.png", removed)
}

func TestDelete_MissingPath(t *testing.T) {
	svc := newTestService(acceptingStorage(SourceLocal))

	_, err := svc.Delete(context.Background(), "  ")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestDelete_Failure(t *testing.T) {
	svc := newTestService(failingStorage(SourceSupabase))

	_, err := svc.Delete(context.Background(), "products/x.png")

	var ie *apperrors.InternalError
	assert.ErrorAs(t, err, &ie)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "png", extension(File{Name: "x.PNG"}))
	assert.Equal(t, "webp", extension(File{Name: "noext", ContentType: "image/webp"}))
	assert.Equal(t, "svgxml", extension(File{Name: "", ContentType: "image/svg+xml"}))
	assert.Equal(t, "bin", extension(File{Name: "x.", ContentType: "image/"}))
}
