// Package controllers traduce requests HTTP a llamadas de service y
// da forma a las respuestas. Sin lógica de negocio acá.
package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	httperrors "github.com/dropDatabas3/fluency/internal/http/errors"
	"github.com/dropDatabas3/fluency/internal/http/services"
	"github.com/dropDatabas3/fluency/internal/observability/logger"
	"github.com/dropDatabas3/fluency/internal/store/core"
)

const maxBodySize = 1 << 20 // 1MB

// readJSON decodifica el body de forma tolerante (NO falla por campos
// desconocidos) y limita el tamaño. Devuelve false si ya respondió error.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if !strings.Contains(ct, "application/json") {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON.WithDetail("Content-Type must be application/json"))
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return false
	}
	return true
}

// writeServiceError mapea errores de services/store al contrato HTTP.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		httperrors.WriteError(w, httperrors.ErrForbidden)
	case errors.Is(err, services.ErrEmailRequired):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("email is required"))
	case errors.Is(err, services.ErrClassRequired):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("class_id is required"))
	case errors.Is(err, services.ErrInvalidRole):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("invalid role"))
	case errors.Is(err, core.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound)
	default:
		logger.From(r.Context()).Error("unexpected service error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternal)
	}
}
