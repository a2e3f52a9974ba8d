package usecase

import (
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/jwt"
)

var ErrNotAdmin = errs.New("token does not grant admin access")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	// ValidateAdminToken returns the token subject when it carries the admin role.
	ValidateAdminToken(tokenString string) (subject string, err error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateAdminToken(tokenString string) (string, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Role != jwt.RoleAdmin {
		return "", ErrNotAdmin
	}
	return claims.Subject, nil
}
