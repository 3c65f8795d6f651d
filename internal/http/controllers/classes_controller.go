package controllers

import (
	"net/http"

	httperrors "github.com/dropDatabas3/fluency/internal/http/errors"
	"github.com/dropDatabas3/fluency/internal/http/services"
)

// ClassesController expone el catálogo (público, read-only).
type ClassesController struct {
	service *services.ClassesService
}

func NewClassesController(service *services.ClassesService) *ClassesController {
	return &ClassesController{service: service}
}

// List responde GET /classes (?status= opcional).
func (c *ClassesController) List(w http.ResponseWriter, r *http.Request) {
	classes, err := c.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, classes)
}
