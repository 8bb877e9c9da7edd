package upload

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sabores/internal/commons"
	"sabores/internal/dto"
	apperrors "sabores/internal/errors"
)

// multipartOverhead leaves room for boundaries and headers on top of the
// image itself.
const multipartOverhead = 64 * 1024

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleUpload(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	r.Body = http.MaxBytesReader(w, r.Body, c.service.MaxBytes()+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.Info("upload rejected, body too large", zap.Int64("limit", maxErr.Limit))
			commons.WriteValidationError(w, logger, tooLargeMessage(c.service.MaxBytes()), apperrors.ValidationDetail{
				Field:   "file",
				Message: "request body exceeds the upload limit",
			})
			return
		}
		logger.Info("upload rejected, no file", zap.Error(err))
		commons.WriteValidationError(w, logger, "Nenhum arquivo enviado", apperrors.ValidationDetail{
			Field:   "file",
			Message: "multipart field 'file' is required",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := c.service.Validate(contentType, header.Size); err != nil {
		commons.WriteError(w, logger, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		commons.WriteError(w, logger, apperrors.NewInternalError("reading upload", err))
		return
	}

	result, err := c.service.Upload(r.Context(), File{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		commons.WriteError(w, logger, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.UploadResponse{
		Success: true,
		URL:     result.URL,
		Path:    result.Path,
		Source:  result.Source,
	})
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	source, err := c.service.Delete(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		commons.WriteError(w, logger, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.DeleteUploadResponse{
		Success: true,
		Source:  source,
	})
}
