package payment

import (
	"context"
	"time"

	"clubpay/internal/db"
)

// Repository methods that take a db.Querier run inside the caller's unit of
// work; the rest read through the repository's own connection.
type Repository interface {
	LockTrainings(ctx context.Context, q db.Querier, ids []int) ([]lockedTraining, error)
	LockApprovedForTrainer(ctx context.Context, q db.Querier, userID int) ([]lockedTraining, error)
	FindPayees(ctx context.Context, q db.Querier, userIDs []int) ([]payee, error)
	InsertPayment(ctx context.Context, q db.Querier, userID *int, totalCents int64) (*Payment, error)
	InsertSnapshot(ctx context.Context, q db.Querier, paymentID, userID int, iban string) error
	MarkCompensated(ctx context.Context, q db.Querier, paymentID int, ids []int, at time.Time) (int64, error)
	LockPayment(ctx context.Context, q db.Querier, id int) error
	ReleaseTrainings(ctx context.Context, q db.Querier, paymentID int) (int64, error)
	DeletePayment(ctx context.Context, q db.Querier, id int) error

	GetPayment(ctx context.Context, id int) (*Payment, error)
	ListPayments(ctx context.Context, trainerID *int) ([]Payment, error)
	ListCompensatedTrainings(ctx context.Context, paymentID int) ([]compensatedTraining, error)
	ListSnapshots(ctx context.Context, paymentID int) ([]TrainerIBANSnapshot, error)
}
