package upload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "sabores/internal/errors"
)

const DefaultMaxBytes = 5 * 1024 * 1024

var ErrNoStorage = errors.New("no image storage configured")

// File is an image received from a client.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Result struct {
	URL    string
	Path   string
	Source string
}

// Service validates images and stores them in the first storage that
// accepts them.
type Service struct {
	storages []Storage
	maxBytes int64
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(maxBytes int64, logger *zap.Logger, storages ...Storage) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Service{
		storages: storages,
		maxBytes: maxBytes,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Validate checks an image's declared type and size without reading it.
func (s *Service) Validate(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewValidationError("Arquivo deve ser uma imagem", apperrors.ValidationDetail{
			Field:   "file",
			Message: fmt.Sprintf("content type %q is not an image", contentType),
		})
	}
	if size > s.maxBytes {
		return apperrors.NewValidationError(tooLargeMessage(s.maxBytes), apperrors.ValidationDetail{
			Field:   "file",
			Message: fmt.Sprintf("file has %d bytes, limit is %d", size, s.maxBytes),
		})
	}
	return nil
}

func (s *Service) Upload(ctx context.Context, file File) (*Result, error) {
	if err := s.Validate(file.ContentType, int64(len(file.Data))); err != nil {
		return nil, err
	}

	name := s.objectName(file)
	lastErr := ErrNoStorage

	for _, storage := range s.storages {
		obj, err := storage.Put(ctx, name, file.ContentType, file.Data)
		if err == nil {
			s.logger.Info("image stored",
				zap.String("source", storage.Source()), zap.String("path", obj.Path), zap.Int("bytes", len(file.Data)))
			return &Result{URL: obj.URL, Path: obj.Path, Source: storage.Source()}, nil
		}

		s.logger.Warn("image storage failed, falling back",
			zap.String("source", storage.Source()), zap.Error(err))
		lastErr = err
	}

	return nil, apperrors.NewInternalError("storing image", lastErr)
}

// Delete removes an image from the primary storage and returns its source.
func (s *Service) Delete(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", apperrors.NewValidationError("Caminho do arquivo não fornecido", apperrors.ValidationDetail{
			Field:   "path",
			Message: "path is required",
		})
	}
	if len(s.storages) == 0 {
		return "", apperrors.NewInternalError("deleting image", ErrNoStorage)
	}

	primary := s.storages[0]
	if err := primary.Remove(ctx, path); err != nil {
		return "", apperrors.NewInternalError("deleting image", err)
	}

	s.logger.Info("image deleted", zap.String("source", primary.Source()), zap.String("path", path))
	return primary.Source(), nil
}

func (s *Service) objectName(file File) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
	return fmt.Sprintf("%d-%s.%s", s.now().UnixMilli(), suffix, extension(file))
}

func extension(file File) string {
	ext := strings.TrimPrefix(filepath.Ext(file.Name), ".")
	if ext == "" {
		ext = strings.TrimPrefix(file.ContentType, "image/")
	}

	ext = strings.ToLower(ext)
	clean := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, ext)
	if clean == "" {
		return "bin"
	}
	return clean
}

func tooLargeMessage(maxBytes int64) string {
	return "Arquivo muito grande (máximo " + strconv.FormatInt(maxBytes/(1024*1024), 10) + "MB)"
}
