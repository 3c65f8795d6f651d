package pg

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/fluency/internal/store/core"
)

const cartCols = `id, student_email, class_id, status, created_at`

func scanCartItem(row pgx.Row) (*core.CartItem, error) {
	var it core.CartItem
	if err := row.Scan(&it.ID, &it.StudentEmail, &it.ClassID, &it.Status, &it.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (s *Store) ListCartItems(ctx context.Context, studentEmail, status string) ([]core.CartItem, error) {
	q := `SELECT ` + cartCols + ` FROM cart_item WHERE student_email = $1`
	args := []any{strings.ToLower(strings.TrimSpace(studentEmail))}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, status)
	}
	q += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.CartItem
	for rows.Next() {
		var it core.CartItem
		if err := rows.Scan(&it.ID, &it.StudentEmail, &it.ClassID, &it.Status, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *Store) GetCartItem(ctx context.Context, id string) (*core.CartItem, error) {
	return scanCartItem(s.pool.QueryRow(ctx,
		`SELECT `+cartCols+` FROM cart_item WHERE id = $1`, id))
}

func (s *Store) FindCartItem(ctx context.Context, studentEmail, classID string) (*core.CartItem, error) {
	return scanCartItem(s.pool.QueryRow(ctx,
		`SELECT `+cartCols+` FROM cart_item WHERE student_email = $1 AND class_id = $2`,
		strings.ToLower(strings.TrimSpace(studentEmail)), classID))
}

func (s *Store) CreateCartItem(ctx context.Context, it *core.CartItem) error {
	if it == nil || strings.TrimSpace(it.StudentEmail) == "" || it.ClassID == "" {
		return core.ErrInvalid
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.StudentEmail = strings.ToLower(strings.TrimSpace(it.StudentEmail))

	err := s.pool.QueryRow(ctx, `
		INSERT INTO cart_item (id, student_email, class_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		it.ID, it.StudentEmail, it.ClassID, it.Status,
	).Scan(&it.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) DeleteCartItem(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cart_item WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
