package middlewares

import (
	"context"

	"github.com/dropDatabas3/fluency/internal/token"
)

type ctxKey string

const (
	// ctxClaimKey guarda el Claim verificado del token
	ctxClaimKey ctxKey = "claim"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// WithClaim inyecta el claim verificado en el contexto.
func WithClaim(ctx context.Context, cl token.Claim) context.Context {
	return context.WithValue(ctx, ctxClaimKey, cl)
}

// GetClaim obtiene el claim del contexto.
// ok=false si el middleware de auth no corrió (ruta pública).
func GetClaim(ctx context.Context) (token.Claim, bool) {
	if v := ctx.Value(ctxClaimKey); v != nil {
		if cl, ok := v.(token.Claim); ok {
			return cl, true
		}
	}
	return token.Claim{}, false
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID obtiene el request ID del contexto.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
