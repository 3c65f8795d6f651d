package services

import (
	"context"
	"strings"

	"github.com/dropDatabas3/fluency/internal/observability/logger"
	"github.com/dropDatabas3/fluency/internal/token"
)

// TokenService emite tokens de identidad. La verificación vive en el
// middleware de auth; acá solo la emisión (POST /jwt).
type TokenService struct {
	Codec *token.Codec
}

func NewTokenService(codec *token.Codec) *TokenService {
	return &TokenService{Codec: codec}
}

// Issue emite un token firmado para el email dado.
func (s *TokenService) Issue(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmailRequired
	}

	tk, err := s.Codec.Issue(email)
	if err != nil {
		return "", err
	}

	logger.From(ctx).Info("token issued", logger.Email(email))
	return tk, nil
}
