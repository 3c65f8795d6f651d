package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/fluency/internal/http/dto"
	httperrors "github.com/dropDatabas3/fluency/internal/http/errors"
	"github.com/dropDatabas3/fluency/internal/http/middlewares"
	"github.com/dropDatabas3/fluency/internal/http/services"
)

// UsersController maneja /users: listado y registro públicos, queries de
// rol self-owned y la mutación de rol admin-gated.
type UsersController struct {
	service *services.UsersService
}

func NewUsersController(service *services.UsersService) *UsersController {
	return &UsersController{service: service}
}

// List responde GET /users (público, ?role= opcional).
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.List(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, users)
}

// Register responde POST /users (público). Duplicado por email devuelve
// el registro existente con 200, no error.
func (c *UsersController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if !readJSON(w, r, &req) {
		return
	}

	u, err := c.service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, u)
}

// SetRole responde PATCH /users/{id} (admin-gated).
func (c *UsersController) SetRole(w http.ResponseWriter, r *http.Request) {
	claim, ok := middlewares.GetClaim(r.Context())
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	var req dto.SetRoleRequest
	if !readJSON(w, r, &req) {
		return
	}

	u, err := c.service.SetRole(r.Context(), claim, chi.URLParam(r, "id"), req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, u)
}

// IsAdmin responde GET /users/admin/{email} (self-owned).
func (c *UsersController) IsAdmin(w http.ResponseWriter, r *http.Request) {
	claim, ok := middlewares.GetClaim(r.Context())
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	admin, err := c.service.IsAdmin(r.Context(), claim, chi.URLParam(r, "email"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, dto.AdminFlagResponse{Admin: admin})
}

// IsInstructor responde GET /users/instructor/{email} (self-owned).
func (c *UsersController) IsInstructor(w http.ResponseWriter, r *http.Request) {
	claim, ok := middlewares.GetClaim(r.Context())
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	instructor, err := c.service.IsInstructor(r.Context(), claim, chi.URLParam(r, "email"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, dto.InstructorFlagResponse{Instructor: instructor})
}

// Role responde GET /users/user?email= (self-owned; rol almacenado o "").
func (c *UsersController) Role(w http.ResponseWriter, r *http.Request) {
	claim, ok := middlewares.GetClaim(r.Context())
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("email query param is required"))
		return
	}

	role, err := c.service.RoleOf(r.Context(), claim, email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, dto.RoleResponse{Role: string(role)})
}
