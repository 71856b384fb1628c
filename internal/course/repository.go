package course

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrCostCenterNotFound = errors.New("cost center not found")
	ErrCostCenterInUse    = errors.New("cost center is still referenced by courses")
	ErrCostCenterExists   = errors.New("cost center name already exists")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCostCenter(ctx context.Context, name string) (*CostCenter, error) {
	query := `
		INSERT INTO cost_centers (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`

	var cc CostCenter
	if err := r.db.GetContext(ctx, &cc, query, name); err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return nil, ErrCostCenterExists
		}
		return nil, err
	}
	return &cc, nil
}

func (r *repository) ListCostCenters(ctx context.Context) ([]CostCenter, error) {
	centers := []CostCenter{}
	err := r.db.SelectContext(ctx, &centers, `SELECT id, name, created_at FROM cost_centers ORDER BY name`)
	return centers, err
}

func (r *repository) DeleteCostCenter(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cost_centers WHERE id = $1`, id)
	if err != nil {
		if pgCode(err) == pgerrcode.ForeignKeyViolation {
			return ErrCostCenterInUse
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCostCenterNotFound
	}
	return nil
}

func (r *repository) CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error) {
	query := `
		INSERT INTO courses (name, cost_center_id, weekdays, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, cost_center_id, weekdays, duration_minutes, created_at
	`

	var c Course
	err := r.db.GetContext(ctx, &c, query, req.Name, req.CostCenterID, req.Weekdays, req.DurationMinutes)
	if err != nil {
		if pgCode(err) == pgerrcode.ForeignKeyViolation {
			return nil, ErrCostCenterNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListCourses(ctx context.Context) ([]CourseWithCostCenter, error) {
	query := `
		SELECT
			c.id,
			c.name,
			c.cost_center_id,
			c.weekdays,
			c.duration_minutes,
			c.created_at,
			cc.name AS cost_center_name
		FROM courses c
		JOIN cost_centers cc ON cc.id = c.cost_center_id
		ORDER BY c.name
	`

	courses := []CourseWithCostCenter{}
	err := r.db.SelectContext(ctx, &courses, query)
	return courses, err
}

func (r *repository) GetCourseByID(ctx context.Context, id int) (*Course, error) {
	query := `
		SELECT id, name, cost_center_id, weekdays, duration_minutes, created_at
		FROM courses
		WHERE id = $1
	`

	var c Course
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
