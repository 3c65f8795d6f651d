package pg

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/fluency/internal/store/core"
)

const userCols = `id, email, name, photo_url, role, created_at`

func scanUser(row pgx.Row) (*core.User, error) {
	var u core.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	u.Role = core.Role(role)
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, role core.Role) ([]core.User, error) {
	q := `SELECT ` + userCols + ` FROM app_user`
	args := []any{}
	if role != core.RoleUnset {
		q += ` WHERE role = $1`
		args = append(args, string(role))
	}
	q += ` ORDER BY email`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.User
	for rows.Next() {
		var u core.User
		var r string
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &r, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = core.Role(r)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email))))
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	if u == nil || strings.TrimSpace(u.Email) == "" {
		return core.ErrInvalid
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	err := s.pool.QueryRow(ctx, `
		INSERT INTO app_user (id, email, name, photo_url, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		u.ID, u.Email, u.Name, u.PhotoURL, string(u.Role),
	).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) UpdateUserRole(ctx context.Context, id string, role core.Role) (*core.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `
		UPDATE app_user SET role = $1 WHERE id = $2
		RETURNING `+userCols, string(role), id))
}
