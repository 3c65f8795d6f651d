// Package services contiene la lógica de negocio detrás de los controllers:
// evaluación de políticas de acceso + operaciones sobre el record store.
package services

import "errors"

// Errores sentinel que los controllers mapean a respuestas HTTP.
var (
	// ErrForbidden: ownership o rol insuficiente (→ 403 "forbidden access").
	ErrForbidden = errors.New("services: forbidden")
	// ErrEmailRequired: falta el email en body/query (→ 400).
	ErrEmailRequired = errors.New("services: email required")
	// ErrInvalidRole: rol desconocido en el request (→ 400).
	ErrInvalidRole = errors.New("services: invalid role")
	// ErrClassRequired: falta class_id en el body (→ 400).
	ErrClassRequired = errors.New("services: class id required")
)
