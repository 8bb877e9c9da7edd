package auth

import (
	"sabores/internal/domain"
	apperrors "sabores/internal/errors"
)

const invalidCredentialsMessage = "Email ou senha incorretos."

type authService struct {
	credentials []domain.Credential
}

// NewService builds an authenticator over a fixed allow-list. The list is
// copied so later changes by the caller do not affect it.
func NewService(credentials []domain.Credential) Authenticator {
	list := make([]domain.Credential, len(credentials))
	copy(list, credentials)
	return &authService{credentials: list}
}

func (s *authService) Authenticate(email, password string) (*domain.User, error) {
	for _, c := range s.credentials {
		if c.Email == email && c.Password == password {
			return &domain.User{ID: c.ID, Email: c.Email, Name: c.Name}, nil
		}
	}
	return nil, apperrors.NewUnauthorizedError(invalidCredentialsMessage)
}
