package controllers

import (
	"net/http"

	"github.com/dropDatabas3/fluency/internal/http/dto"
	httperrors "github.com/dropDatabas3/fluency/internal/http/errors"
	"github.com/dropDatabas3/fluency/internal/http/services"
)

// TokenController maneja POST /jwt.
type TokenController struct {
	service *services.TokenService
}

func NewTokenController(service *services.TokenService) *TokenController {
	return &TokenController{service: service}
}

// Issue emite un token para el email del body. Endpoint público: la
// "autenticación" real de la plataforma ocurre upstream (el frontend
// intercambia su sesión por este token).
func (c *TokenController) Issue(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueTokenRequest
	if !readJSON(w, r, &req) {
		return
	}

	tk, err := c.service.Issue(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	httperrors.WriteJSON(w, http.StatusOK, dto.IssueTokenResponse{Token: tk})
}
