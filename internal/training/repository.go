package training

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clubpay/internal/api"

	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrTrainingNotFound = errors.New("training not found")
	ErrTrainingLocked   = errors.New("training can only be changed while NEW")
	ErrUnknownCourse    = errors.New("course does not exist")
	ErrUnknownTrainer   = errors.New("trainer does not exist")
)

const trainingColumns = `id, date, course_id, user_id, participant_count, compensation_cents, comment, status, created_at, compensated_at, payment_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t Training) (*Training, error) {
	query := `
		INSERT INTO trainings (date, course_id, user_id, participant_count, compensation_cents, comment, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'NEW')
		RETURNING ` + trainingColumns

	var created Training
	err := r.db.GetContext(ctx, &created, query,
		t.Date, t.CourseID, t.UserID, t.ParticipantCount, t.CompensationCents, t.Comment)
	if err != nil {
		return nil, mapForeignKey(err)
	}
	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Training, error) {
	var t Training
	err := r.db.GetContext(ctx, &t, `SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]TrainingWithDetails, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID > 0 {
		add("t.user_id = $%d", filter.UserID)
	}
	if filter.CourseID > 0 {
		add("t.course_id = $%d", filter.CourseID)
	}
	if filter.Status != "" {
		add("t.status = $%d", filter.Status)
	}
	if filter.From != nil {
		add("t.date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("t.date <= $%d", *filter.To)
	}

	query := `
		SELECT
			t.id, t.date, t.course_id, t.user_id, t.participant_count, t.compensation_cents,
			t.comment, t.status, t.created_at, t.compensated_at, t.payment_id,
			c.name AS course_name,
			u.name AS trainer_name
		FROM trainings t
		JOIN courses c ON c.id = t.course_id
		JOIN users u ON u.id = t.user_id`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY t.date DESC, t.id DESC"

	trainings := []TrainingWithDetails{}
	if err := r.db.SelectContext(ctx, &trainings, query, args...); err != nil {
		return nil, err
	}
	return trainings, nil
}

func (r *repository) UpdateFields(ctx context.Context, id int, req UpdateTrainingRequest) (*Training, error) {
	query := `
		UPDATE trainings
		SET date = $1, course_id = $2, participant_count = $3, compensation_cents = $4, comment = $5
		WHERE id = $6 AND status = 'NEW'
		RETURNING ` + trainingColumns

	var t Training
	err := r.db.GetContext(ctx, &t, query,
		req.Date, req.CourseID, req.ParticipantCount, req.CompensationCents, req.Comment, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainingLocked
	}
	if err != nil {
		return nil, mapForeignKey(err)
	}
	return &t, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trainings WHERE id = $1 AND status = 'NEW'`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTrainingLocked
	}
	return nil
}

// UpdateStatus moves a training from one client-settable status to another.
// The status guard makes a concurrent change lose instead of overwrite.
func (r *repository) UpdateStatus(ctx context.Context, id int, from, to Status) (*Training, error) {
	query := `
		UPDATE trainings
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING ` + trainingColumns

	var t Training
	err := r.db.GetContext(ctx, &t, query, to, id, from)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: training %d is no longer %s", ErrInvalidTransition, id, from)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindDuplicates(ctx context.Context, ids []int) ([]DuplicateWarning, error) {
	query := `
		SELECT
			t.id AS training_id,
			o.id AS conflicting_training_id,
			o.user_id AS conflicting_user_id,
			u.name AS trainer_name,
			c.name AS course_name,
			o.date
		FROM trainings t
		JOIN trainings o
			ON o.course_id = t.course_id
			AND o.date = t.date
			AND o.id <> t.id
			AND o.user_id <> t.user_id
		JOIN users u ON u.id = o.user_id
		JOIN courses c ON c.id = o.course_id
		WHERE t.id = ANY($1)
			AND t.status IN ('NEW', 'APPROVED')
		ORDER BY t.id, o.id
	`

	warnings := []DuplicateWarning{}
	if err := r.db.SelectContext(ctx, &warnings, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return warnings, nil
}

func (r *repository) ListCompensatedForTrainer(ctx context.Context, userID int, start, end api.Date) ([]reportRow, error) {
	query := `
		SELECT
			t.course_id,
			c.name AS course_name,
			t.date,
			t.compensation_cents
		FROM trainings t
		JOIN courses c ON c.id = t.course_id
		WHERE t.user_id = $1
			AND t.status = 'COMPENSATED'
			AND t.date BETWEEN $2 AND $3
		ORDER BY c.name, t.course_id, t.date, t.id
	`

	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, start, end); err != nil {
		return nil, err
	}
	return rows, nil
}

func mapForeignKey(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pgerrcode.ForeignKeyViolation {
		return err
	}
	switch pqErr.Constraint {
	case "trainings_course_id_fkey":
		return ErrUnknownCourse
	case "trainings_user_id_fkey":
		return ErrUnknownTrainer
	}
	return err
}
