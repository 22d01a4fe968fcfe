package auth

import (
	"errors"
	"fmt"

	"github.com/clinicflow/clinicflow/internal/config"
	"github.com/clinicflow/clinicflow/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

type accessClaims struct {
	jwt.RegisteredClaims
	Role      string     `json:"role"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
}

// Verifier checks access tokens issued by the identity service. This
// service never mints tokens itself.
type Verifier struct {
	cfg config.JWTConfig
}

func NewVerifier(cfg config.JWTConfig) *Verifier {
	return &Verifier{cfg: cfg}
}

func (v *Verifier) VerifyAccessToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&accessClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(v.cfg.Secret), nil
		},
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return &domain.Claims{
		UserID:    userID,
		Role:      domain.Role(claims.Role),
		PatientID: claims.PatientID,
	}, nil
}
