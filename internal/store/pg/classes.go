package pg

import (
	"context"

	"github.com/dropDatabas3/fluency/internal/store/core"
)

func (s *Store) ListClasses(ctx context.Context, status string) ([]core.Class, error) {
	q := `SELECT id, name, image, instructor_name, instructor_email, price, available_seats, status
	        FROM class`
	args := []any{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Class
	for rows.Next() {
		var c core.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.InstructorName, &c.InstructorEmail,
			&c.Price, &c.AvailableSeats, &c.Status); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
