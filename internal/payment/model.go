package payment

import (
	"time"

	"github.com/lib/pq"
)

type Payment struct {
	ID          int       `db:"id" json:"id"`
	UserID      *int      `db:"user_id" json:"user_id,omitempty"`
	TotalCents  int64     `db:"total_cents" json:"total_cents"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	TrainingIDs []int     `db:"-" json:"training_ids"`
}

// paymentRow is the aggregated listing row; training ids come back as an array.
type paymentRow struct {
	ID          int           `db:"id"`
	UserID      *int          `db:"user_id"`
	TotalCents  int64         `db:"total_cents"`
	CreatedAt   time.Time     `db:"created_at"`
	TrainingIDs pq.Int64Array `db:"training_ids"`
}

func (r paymentRow) toPayment() Payment {
	ids := make([]int, len(r.TrainingIDs))
	for i, id := range r.TrainingIDs {
		ids[i] = int(id)
	}
	return Payment{
		ID:          r.ID,
		UserID:      r.UserID,
		TotalCents:  r.TotalCents,
		CreatedAt:   r.CreatedAt,
		TrainingIDs: ids,
	}
}

// CreatePaymentRequest selects the trainings to settle. With UserID set the
// selection is narrowed to that trainer; an empty id list then means all of
// the trainer's approved trainings.
type CreatePaymentRequest struct {
	UserID      *int  `json:"user_id,omitempty" example:"7"`
	TrainingIDs []int `json:"training_ids" example:"1,2,3"`
}

type TrainerIBANSnapshot struct {
	PaymentID int       `db:"payment_id" json:"payment_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	IBAN      string    `db:"iban" json:"iban"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CompensationUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	IBAN string `json:"iban"`
}

type CompensationLine struct {
	User                   CompensationUser `json:"user"`
	TotalTrainings         int              `json:"total_trainings"`
	TotalCompensationCents int64            `json:"total_compensation_cents"`
}

// lockedTraining is the part of a training settlement needs.
type lockedTraining struct {
	ID                int    `db:"id"`
	UserID            int    `db:"user_id"`
	Status            string `db:"status"`
	CompensationCents int64  `db:"compensation_cents"`
}

type payee struct {
	ID    int     `db:"id"`
	Name  string  `db:"name"`
	Email string  `db:"email"`
	IBAN  *string `db:"iban"`
}

type compensatedTraining struct {
	UserID            int    `db:"user_id"`
	TrainerName       string `db:"trainer_name"`
	CompensationCents int64  `db:"compensation_cents"`
}
