package auth

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sabores/internal/commons"
	"sabores/internal/dto"
	apperrors "sabores/internal/errors"
)

type Controller struct {
	authenticator Authenticator
	logger        *zap.Logger
}

func NewController(authenticator Authenticator, logger *zap.Logger) *Controller {
	return &Controller{
		authenticator: authenticator,
		logger:        logger,
	}
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("decoding login request", zap.Error(err))
		commons.WriteJSON(w, logger, http.StatusInternalServerError, dto.LoginResponse{
			Success: false,
			Error:   "internal server error",
		})
		return
	}

	user, err := c.authenticator.Authenticate(req.Email, req.Password)
	if err != nil {
		if ue, ok := apperrors.IsUnauthorizedError(err); ok {
			logger.Info("login rejected")
			commons.WriteJSON(w, logger, http.StatusUnauthorized, dto.LoginResponse{
				Success: false,
				Error:   ue.Message,
			})
			return
		}
		logger.Error("login failed", zap.Error(err))
		commons.WriteJSON(w, logger, http.StatusInternalServerError, dto.LoginResponse{
			Success: false,
			Error:   "internal server error",
		})
		return
	}

	logger.Info("login accepted", zap.String("userId", user.ID))
	commons.WriteJSON(w, logger, http.StatusOK, dto.LoginResponse{
		Success: true,
		Message: "Login realizado com sucesso!",
		User:    user,
	})
}
