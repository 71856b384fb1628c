package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"clubpay/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const paymentListQuery = `
	SELECT
		p.id, p.user_id, p.total_cents, p.created_at,
		COALESCE(array_agg(t.id ORDER BY t.id) FILTER (WHERE t.id IS NOT NULL), '{}') AS training_ids
	FROM payments p
	LEFT JOIN trainings t ON t.payment_id = p.id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LockTrainings(ctx context.Context, q db.Querier, ids []int) ([]lockedTraining, error) {
	query := `
		SELECT id, user_id, status, compensation_cents
		FROM trainings
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`

	var rows []lockedTraining
	if err := q.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) LockApprovedForTrainer(ctx context.Context, q db.Querier, userID int) ([]lockedTraining, error) {
	query := `
		SELECT id, user_id, status, compensation_cents
		FROM trainings
		WHERE user_id = $1 AND status = 'APPROVED'
		ORDER BY id
		FOR UPDATE`

	var rows []lockedTraining
	if err := q.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

// FindPayees reads the live IBANs. FOR SHARE keeps a concurrent profile
// update from slipping in between validation and the snapshot insert.
func (r *repository) FindPayees(ctx context.Context, q db.Querier, userIDs []int) ([]payee, error) {
	query := `
		SELECT id, name, email, iban
		FROM users
		WHERE id = ANY($1)
		ORDER BY id
		FOR SHARE`

	var rows []payee
	if err := q.SelectContext(ctx, &rows, query, pq.Array(userIDs)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) InsertPayment(ctx context.Context, q db.Querier, userID *int, totalCents int64) (*Payment, error) {
	query := `
		INSERT INTO payments (user_id, total_cents)
		VALUES ($1, $2)
		RETURNING id, user_id, total_cents, created_at`

	var p Payment
	if err := q.GetContext(ctx, &p, query, userID, totalCents); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) InsertSnapshot(ctx context.Context, q db.Querier, paymentID, userID int, iban string) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO trainer_iban_snapshots (payment_id, user_id, iban) VALUES ($1, $2, $3)`,
		paymentID, userID, iban)
	return err
}

// MarkCompensated returns the number of trainings it moved. Rows that are no
// longer APPROVED are left alone, so the caller compares against its selection.
func (r *repository) MarkCompensated(ctx context.Context, q db.Querier, paymentID int, ids []int, at time.Time) (int64, error) {
	query := `
		UPDATE trainings
		SET status = 'COMPENSATED', compensated_at = $1, payment_id = $2
		WHERE id = ANY($3) AND status = 'APPROVED'`

	result, err := q.ExecContext(ctx, query, at, paymentID, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) LockPayment(ctx context.Context, q db.Querier, id int) error {
	var locked int
	err := q.GetContext(ctx, &locked, `SELECT id FROM payments WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPaymentNotFound
	}
	return err
}

func (r *repository) ReleaseTrainings(ctx context.Context, q db.Querier, paymentID int) (int64, error) {
	query := `
		UPDATE trainings
		SET status = 'APPROVED', compensated_at = NULL, payment_id = NULL
		WHERE payment_id = $1`

	result, err := q.ExecContext(ctx, query, paymentID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeletePayment removes the payment row; its snapshots go with it via ON DELETE CASCADE.
func (r *repository) DeletePayment(ctx context.Context, q db.Querier, id int) error {
	_, err := q.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

func (r *repository) GetPayment(ctx context.Context, id int) (*Payment, error) {
	query := paymentListQuery + `
		WHERE p.id = $1
		GROUP BY p.id`

	var row paymentRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	p := row.toPayment()
	return &p, nil
}

// ListPayments returns payments newest first. A trainer filter matches every
// payment that paid that trainer, found through the snapshot rows.
func (r *repository) ListPayments(ctx context.Context, trainerID *int) ([]Payment, error) {
	query := paymentListQuery
	var args []interface{}
	if trainerID != nil {
		query += `
		WHERE p.id IN (SELECT payment_id FROM trainer_iban_snapshots WHERE user_id = $1)`
		args = append(args, *trainerID)
	}
	query += `
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id DESC`

	var rows []paymentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	payments := make([]Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, row.toPayment())
	}
	return payments, nil
}

func (r *repository) ListCompensatedTrainings(ctx context.Context, paymentID int) ([]compensatedTraining, error) {
	query := `
		SELECT t.user_id, u.name AS trainer_name, t.compensation_cents
		FROM trainings t
		JOIN users u ON u.id = t.user_id
		WHERE t.payment_id = $1 AND t.status = 'COMPENSATED'
		ORDER BY t.id`

	var rows []compensatedTraining
	if err := r.db.SelectContext(ctx, &rows, query, paymentID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListSnapshots(ctx context.Context, paymentID int) ([]TrainerIBANSnapshot, error) {
	query := `
		SELECT payment_id, user_id, iban, created_at
		FROM trainer_iban_snapshots
		WHERE payment_id = $1`

	var rows []TrainerIBANSnapshot
	if err := r.db.SelectContext(ctx, &rows, query, paymentID); err != nil {
		return nil, err
	}
	return rows, nil
}
