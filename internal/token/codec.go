// Package token implementa la emisión y verificación de tokens de identidad
// firmados (JWT HS256) con un secreto único a nivel de proceso.
package token

import (
	"errors"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// TTL por defecto de los tokens emitidos.
const DefaultTTL = 24 * time.Hour

// Errores de verificación. Verify devuelve exactamente uno de estos;
// nunca un Claim parcialmente poblado.
var (
	ErrMalformed        = errors.New("token: malformed")
	ErrSignatureInvalid = errors.New("token: signature invalid")
	ErrExpired          = errors.New("token: expired")
)

// Claim es el payload de identidad verificado de un token.
// Inmutable una vez emitido: un nuevo login produce un nuevo token.
type Claim struct {
	Subject   string // email autenticado ("sub")
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec firma y verifica tokens de identidad.
// El secreto es configuración read-only de proceso; no se muta en runtime.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// New crea un Codec. El secreto ausente es una precondición de configuración:
// el caller (main) debe tratarlo como error fatal de arranque.
func New(secret string, ttl time.Duration) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token: missing signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Issue emite un token firmado para el subject dado, con ventana de validez
// fija desde el momento de emisión (default 24h).
func (c *Codec) Issue(subject string) (string, error) {
	now := time.Now().UTC()
	exp := now.Add(c.ttl)

	claims := jwtv5.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	return tk.SignedString(c.secret)
}

// Verify chequea firma y expiración y reconstruye el Claim.
// Cualquier fallo produce exactamente un kind: ErrMalformed (no decodificable),
// ErrSignatureInvalid o ErrExpired. Sin aceptación parcial ni leniente.
func (c *Codec) Verify(raw string) (Claim, error) {
	tok, err := jwtv5.Parse(raw,
		func(t *jwtv5.Token) (any, error) { return c.secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwtv5.ErrTokenSignatureInvalid):
			return Claim{}, ErrSignatureInvalid
		case errors.Is(err, jwtv5.ErrTokenExpired):
			return Claim{}, ErrExpired
		case errors.Is(err, jwtv5.ErrTokenMalformed):
			return Claim{}, ErrMalformed
		default:
			return Claim{}, ErrSignatureInvalid
		}
	}
	if !tok.Valid {
		return Claim{}, ErrSignatureInvalid
	}

	mc, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return Claim{}, ErrMalformed
	}

	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claim{}, ErrMalformed
	}

	cl := Claim{Subject: sub}
	if iat, ok := mc["iat"].(float64); ok {
		cl.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := mc["exp"].(float64); ok {
		cl.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return cl, nil
}
