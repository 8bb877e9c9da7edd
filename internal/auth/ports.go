package auth

import "sabores/internal/domain"

type Authenticator interface {
	Authenticate(email, password string) (*domain.User, error)
}
