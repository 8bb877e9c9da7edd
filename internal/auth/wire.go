package auth

import (
	"go.uber.org/zap"

	"sabores/internal/domain"
)

func NewModule(credentials []domain.Credential, logger *zap.Logger) *Controller {
	return NewController(NewService(credentials), logger.Named("auth"))
}
