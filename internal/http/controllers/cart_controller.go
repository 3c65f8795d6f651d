package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/fluency/internal/http/dto"
	httperrors "github.com/dropDatabas3/fluency/internal/http/errors"
	"github.com/dropDatabas3/fluency/internal/http/middlewares"
	"github.com/dropDatabas3/fluency/internal/http/services"
)

// CartController maneja /cart. Todas las rutas requieren auth y el
// service aplica self-ownership contra el claim.
type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

// List responde GET /cart?email=&status=.
func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	claim, ok := middlewares.GetClaim(r.Context())
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	items, err := c.service.List(r.Context(), claim, q.Get("email"), q.Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, items)
}

// Add responde POST /cart?email=. Duplicado por (email, class_id)
// devuelve el item existente con 200.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	claim, ok := middlewares.GetClaim(r.Context())
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	var req dto.AddCartItemRequest
	if !readJSON(w, r, &req) {
		return
	}

	it, err := c.service.Add(r.Context(), claim, r.URL.Query().Get("email"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, it)
}

// Delete responde DELETE /cart/{id}: 404 si no existe, 403 si el dueño
// no coincide con el claim.
func (c *CartController) Delete(w http.ResponseWriter, r *http.Request) {
	claim, ok := middlewares.GetClaim(r.Context())
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	if err := c.service.Delete(r.Context(), claim, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
