// Package router arma el árbol de rutas y las cadenas de middleware.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/fluency/internal/http/controllers"
	"github.com/dropDatabas3/fluency/internal/http/middlewares"
	"github.com/dropDatabas3/fluency/internal/token"
)

// Deps agrupa todo lo que el router necesita para cablear handlers.
type Deps struct {
	Codec *token.Codec

	Health  *controllers.HealthController
	Tokens  *controllers.TokenController
	Users   *controllers.UsersController
	Classes *controllers.ClassesController
	Cart    *controllers.CartController

	// Handler para GET /metrics (RegisterMetrics). Opcional.
	Metrics http.Handler

	// Rate limit para la emisión de tokens. Opcional.
	TokenRateLimit middlewares.Middleware

	CORSAllowedOrigins []string
}

// New construye el handler raíz con la cadena global:
// recover → request-id → CORS → logging → metrics.
// Las rutas protegidas agregan RequireAuth por grupo.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	requireAuth := middlewares.RequireAuth(d.Codec)

	// ──────────────────────────────────────────────
	// Público
	// ──────────────────────────────────────────────
	r.Get("/", d.Health.Root)
	r.Get("/healthz", d.Health.Healthz)
	r.Get("/readyz", d.Health.Readyz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	if d.TokenRateLimit != nil {
		r.With(d.TokenRateLimit).Post("/jwt", d.Tokens.Issue)
	} else {
		r.Post("/jwt", d.Tokens.Issue)
	}
	r.Get("/classes", d.Classes.List)
	r.Get("/users", d.Users.List)
	r.Post("/users", d.Users.Register)

	// ──────────────────────────────────────────────
	// Protegido (Bearer obligatorio)
	// ──────────────────────────────────────────────
	r.Group(func(g chi.Router) {
		g.Use(requireAuth)

		g.Get("/users/user", d.Users.Role)
		g.Get("/users/admin/{email}", d.Users.IsAdmin)
		g.Get("/users/instructor/{email}", d.Users.IsInstructor)
		g.Patch("/users/{id}", d.Users.SetRole)

		g.Get("/cart", d.Cart.List)
		g.Post("/cart", d.Cart.Add)
		g.Delete("/cart/{id}", d.Cart.Delete)
	})

	return middlewares.Chain(r,
		middlewares.WithRecover(),
		middlewares.WithRequestID(),
		middlewares.WithCORS(d.CORSAllowedOrigins),
		middlewares.WithLogging(),
		middlewares.WithMetrics(),
	)
}
