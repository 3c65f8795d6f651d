package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/fluency/internal/http/dto"
	"github.com/dropDatabas3/fluency/internal/observability/logger"
	"github.com/dropDatabas3/fluency/internal/policy"
	"github.com/dropDatabas3/fluency/internal/store/core"
	"github.com/dropDatabas3/fluency/internal/token"
)

// UsersService maneja registro, queries de rol y la mutación admin-gated.
type UsersService struct {
	Store core.Repository
	Roles *policy.CachedRoleSource
}

func NewUsersService(store core.Repository, roles *policy.CachedRoleSource) *UsersService {
	return &UsersService{Store: store, Roles: roles}
}

// List lista usuarios, opcionalmente filtrados por rol. Público.
func (s *UsersService) List(ctx context.Context, roleFilter string) ([]core.User, error) {
	role := core.RoleUnset
	if roleFilter != "" {
		r, ok := core.ParseRole(roleFilter)
		if !ok || r == core.RoleUnset {
			return nil, ErrInvalidRole
		}
		role = r
	}
	return s.Store.ListUsers(ctx, role)
}

// Register es insert-or-return-existing por email (natural key).
// Un duplicado NO es error: devuelve el registro previo sin tocarlo.
// La carrera perdida del probe-then-insert (ErrConflict del store) se
// recupera localmente releyendo, para preservar idempotencia observada.
func (s *UsersService) Register(ctx context.Context, req dto.RegisterUserRequest) (*core.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	// Probe por natural key
	if existing, err := s.Store.GetUserByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	u := &core.User{
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		PhotoURL: strings.TrimSpace(req.PhotoURL),
		// El registro público siempre crea students; los roles elevados
		// solo se asignan vía SetRole (admin-gated).
		Role: core.RoleStudent,
	}
	err := s.Store.CreateUser(ctx, u)
	if errors.Is(err, core.ErrConflict) {
		// Carrera perdida contra un create concurrente: tratar como "ya existe"
		return s.Store.GetUserByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	logger.From(ctx).Info("user registered", logger.Email(email), logger.UserID(u.ID))
	return u, nil
}

// SetRole muta el rol de un usuario. Role-gated: solo admins.
func (s *UsersService) SetRole(ctx context.Context, claim token.Claim, userID, roleStr string) (*core.User, error) {
	role, ok := core.ParseRole(roleStr)
	if !ok || role == core.RoleUnset {
		return nil, ErrInvalidRole
	}

	d, err := policy.Authorize(ctx, claim, policy.OpRoleMutate, "", core.RoleAdmin, s.Roles)
	if err != nil {
		return nil, err
	}
	if d.Deny() {
		return nil, ErrForbidden
	}

	u, err := s.Store.UpdateUserRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	// El rol cacheado del target queda stale: invalidar.
	s.Roles.Invalidate(ctx, u.Email)

	logger.From(ctx).Info("role updated",
		logger.UserID(userID),
		logger.Role(string(role)),
		logger.Email(claim.Subject),
	)
	return u, nil
}

// roleFor aplica self-ownership y devuelve el rol almacenado del email.
// Lookup por natural key ausente devuelve RoleUnset, no error.
func (s *UsersService) roleFor(ctx context.Context, claim token.Claim, email string) (core.Role, error) {
	if d := policy.AuthorizeOwner(claim, policy.OpUserRoleQuery, email); d.Deny() {
		return core.RoleUnset, ErrForbidden
	}
	u, err := s.Store.GetUserByEmail(ctx, email)
	if errors.Is(err, core.ErrNotFound) {
		return core.RoleUnset, nil
	}
	if err != nil {
		return core.RoleUnset, err
	}
	return u.Role, nil
}

// IsAdmin responde el check self-owned de GET /users/admin/{email}.
func (s *UsersService) IsAdmin(ctx context.Context, claim token.Claim, email string) (bool, error) {
	r, err := s.roleFor(ctx, claim, email)
	return r == core.RoleAdmin, err
}

// IsInstructor responde el check self-owned de GET /users/instructor/{email}.
// El claim se compara SIEMPRE contra el único campo canónico (subject).
func (s *UsersService) IsInstructor(ctx context.Context, claim token.Claim, email string) (bool, error) {
	r, err := s.roleFor(ctx, claim, email)
	return r == core.RoleInstructor, err
}

// RoleOf responde GET /users/user (rol propio).
func (s *UsersService) RoleOf(ctx context.Context, claim token.Claim, email string) (core.Role, error) {
	return s.roleFor(ctx, claim, email)
}
