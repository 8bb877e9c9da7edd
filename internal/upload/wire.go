package upload

import (
	"go.uber.org/zap"

	"sabores/internal/config"
)

// NewModule wires image upload. Supabase Storage is only tried when its URL
// and service key are configured; the local upload dir is always the last
// resort.
func NewModule(cfg config.StorageConfig, logger *zap.Logger) *Controller {
	logger = logger.Named("upload")

	var storages []Storage
	if cfg.Configured() {
		storages = append(storages, NewSupabaseStorage(cfg))
	} else {
		logger.Info("supabase storage not configured, using local upload dir", zap.String("dir", cfg.UploadDir))
	}
	storages = append(storages, NewLocalStorage(cfg.UploadDir))

	return NewController(NewService(cfg.MaxUploadBytes, logger, storages...), logger)
}
