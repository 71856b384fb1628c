package statistics

import (
	"context"

	"clubpay/internal/api"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	ListCompensated(ctx context.Context, from, to api.Date) ([]compensatedRow, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListCompensated(ctx context.Context, from, to api.Date) ([]compensatedRow, error) {
	query := `
		SELECT
			c.id AS course_id,
			c.name AS course_name,
			cc.id AS cost_center_id,
			cc.name AS cost_center_name,
			t.date,
			t.compensation_cents
		FROM trainings t
		JOIN courses c ON c.id = t.course_id
		JOIN cost_centers cc ON cc.id = c.cost_center_id
		WHERE t.status = 'COMPENSATED'
			AND t.date BETWEEN $1 AND $2
		ORDER BY t.date, t.id
	`

	var rows []compensatedRow
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}
