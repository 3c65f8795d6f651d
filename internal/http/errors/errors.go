// Package errors define el error estándar de la API y su serialización.
//
// El contrato de wire es fijo: {"error":true,"message":"..."} con el status
// en el header. Los denies de auth usan exactamente "unauthorized access"
// (401) y "forbidden access" (403).
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AppError es el error de aplicación que viaja entre capas.
type AppError struct {
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa original, solo para logs
}

// Error implementa la interfaz error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap permite acceder al error original.
func (e *AppError) Unwrap() error { return e.Err }

// WithDetail devuelve una COPIA con un mensaje más específico,
// sin mutar las variables globales base.
func (e *AppError) WithDetail(msg string) *AppError {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithCause devuelve una COPIA con la causa adjunta.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// FromError convierte un error genérico en AppError; lo desconocido
// se colapsa a un server error genérico conservando la causa.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternal.WithCause(err)
}

// Errores predefinidos. Los mensajes de 401/403 son contrato de API.
var (
	ErrUnauthorized = &AppError{Message: "unauthorized access", HTTPStatus: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Message: "forbidden access", HTTPStatus: http.StatusForbidden}
	ErrNotFound     = &AppError{Message: "not found", HTTPStatus: http.StatusNotFound}
	ErrInvalidJSON  = &AppError{Message: "invalid json body", HTTPStatus: http.StatusBadRequest}
	ErrBadRequest   = &AppError{Message: "bad request", HTTPStatus: http.StatusBadRequest}
	ErrRateLimited  = &AppError{Message: "too many requests", HTTPStatus: http.StatusTooManyRequests}
	ErrInternal     = &AppError{Message: "internal server error", HTTPStatus: http.StatusInternalServerError}
)

// errorResponse es la forma exacta del body de error.
type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// WriteError serializa un error con el contrato {error:true,message}.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: true, Message: appErr.Message})
}

// WriteJSON: respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
