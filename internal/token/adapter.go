package token

import (
	"swiftscreen/internal/platform/middleware"
)

// ServiceAdapter bridges the token service to the middleware's validator
// interface.
type ServiceAdapter struct {
	service *Service
}

// NewServiceAdapter wraps a token service for middleware use.
func NewServiceAdapter(service *Service) *ServiceAdapter {
	return &ServiceAdapter{service: service}
}

func (a *ServiceAdapter) ValidateToken(tokenString string) (*middleware.Claims, error) {
	claims, err := a.service.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.Claims{
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}
