// Package policy implementa el evaluador de acceso: dada una identidad
// verificada, un recurso objetivo y una operación, decide allow/deny y por qué.
//
// Reglas, en orden de aplicabilidad:
//  1. Self-ownership: claim.Subject debe coincidir con el email dueño del
//     recurso (check puro, sin I/O).
//  2. Role-gated: el caller debe tener el rol requerido; es el único punto
//     donde el evaluador depende de un hecho almacenado (lookup vía RoleSource).
//  3. Public: sin identidad requerida (ausencia de evaluación).
//
// Tie-break: los fallos de ownership se detectan antes de tocar el store
// (fail fast, el check barato primero).
package policy

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/fluency/internal/store/core"
	"github.com/dropDatabas3/fluency/internal/token"
)

// Operation identifica la operación que se intenta autorizar.
type Operation string

const (
	OpCartRead      Operation = "cart:read"
	OpCartCreate    Operation = "cart:create"
	OpCartDelete    Operation = "cart:delete"
	OpUserRoleQuery Operation = "user:role-query"
	OpRoleMutate    Operation = "user:role-mutate"
)

// Reason explica un deny.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonOwnerMismatch Reason = "owner_mismatch"
	ReasonRoleMissing   Reason = "role_missing"
	ReasonRoleMismatch  Reason = "role_mismatch"
)

// Decision es el resultado de una evaluación.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func Allow() Decision         { return Decision{Allowed: true} }
func Deny(r Reason) Decision  { return Decision{Reason: r} }
func (d Decision) Deny() bool { return !d.Allowed }

// RoleSource consulta el rol almacenado de un caller.
// Es la única dependencia del evaluador sobre estado persistido.
type RoleSource interface {
	RoleByEmail(ctx context.Context, email string) (core.Role, error)
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthorizeOwner aplica la regla de self-ownership: Allow sii el subject del
// claim coincide con el email dueño del recurso. Función pura.
func AuthorizeOwner(claim token.Claim, _ Operation, ownerEmail string) Decision {
	if normalize(claim.Subject) == "" || normalize(claim.Subject) != normalize(ownerEmail) {
		return Deny(ReasonOwnerMismatch)
	}
	return Allow()
}

// AuthorizeRole aplica la regla role-gated: consulta el rol almacenado del
// caller y exige que coincida con required. Rol ausente o distinto → deny.
// Un error del lookup se propaga (el caller lo mapea a server error).
func AuthorizeRole(ctx context.Context, claim token.Claim, required core.Role, roles RoleSource) (Decision, error) {
	got, err := roles.RoleByEmail(ctx, normalize(claim.Subject))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return Deny(ReasonRoleMissing), nil
		}
		return Deny(ReasonRoleMissing), err
	}
	if got == core.RoleUnset {
		return Deny(ReasonRoleMissing), nil
	}
	if got != required {
		return Deny(ReasonRoleMismatch), nil
	}
	return Allow(), nil
}

// Authorize evalúa las reglas en orden: ownership primero (si aplica, check
// barato sin store), luego role-gated (si aplica). Un deny de ownership
// nunca llega a consultar el RoleSource.
func Authorize(ctx context.Context, claim token.Claim, op Operation, ownerEmail string, required core.Role, roles RoleSource) (Decision, error) {
	if ownerEmail != "" {
		if d := AuthorizeOwner(claim, op, ownerEmail); d.Deny() {
			return d, nil
		}
	}
	if required != core.RoleUnset {
		return AuthorizeRole(ctx, claim, required, roles)
	}
	return Allow(), nil
}
