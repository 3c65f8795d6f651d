package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/fluency/internal/http/errors"
	"github.com/dropDatabas3/fluency/internal/token"
)

// RequireAuth valida Authorization: Bearer <JWT> y guarda el claim verificado
// en el contexto. Header ausente o token inválido (malformado, firma, expiry)
// responde 401 y CORTA el pipeline: el handler nunca se invoca con una
// identidad sin verificar.
//
// La extracción es función pura de los headers: no hace I/O ni muta el request.
func RequireAuth(codec *token.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				errors.WriteError(w, errors.ErrUnauthorized)
				return
			}
			raw := strings.TrimSpace(ah[len("Bearer "):])

			claim, err := codec.Verify(raw)
			if err != nil {
				// Malformed / SignatureInvalid / Expired colapsan al mismo 401
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				errors.WriteError(w, errors.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaim(r.Context(), claim)))
		})
	}
}
