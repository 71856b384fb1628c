package payment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"clubpay/internal/db"
	"clubpay/internal/logger"
	"clubpay/internal/metrics"
	"clubpay/internal/notify"

	"github.com/jmoiron/sqlx"
)

// Notifier accepts payout notices after a settlement has committed.
type Notifier interface {
	Enqueue(ctx context.Context, p notify.Payout) error
}

type Service interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	GetPayment(ctx context.Context, id int) (*Payment, error)
	ListPayments(ctx context.Context, trainerID *int) ([]Payment, error)
	DeletePayment(ctx context.Context, id int) error
	ListCompensations(ctx context.Context, paymentID int) ([]CompensationLine, error)
}

type service struct {
	db       *sqlx.DB
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

// NewService wires settlement. notifier may be nil when payout mails are disabled.
func NewService(db *sqlx.DB, repo Repository, notifier Notifier) Service {
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// settlement is what a committed CreatePayment hands to the notifier.
type settlement struct {
	payment *Payment
	payees  []payee
	counts  map[int]int
	sums    map[int]int64
}

// CreatePayment settles the selected APPROVED trainings in one transaction:
// it validates every payee IBAN, inserts the payment and one IBAN snapshot per
// trainer, and moves the trainings to COMPENSATED. Any failure leaves the
// store untouched.
func (s *service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	var result *settlement

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		selected, err := s.selectTrainings(ctx, tx, req)
		if err != nil {
			return err
		}

		trainerIDs, counts, sums, ids, total := summarize(selected)

		payees, err := s.repo.FindPayees(ctx, tx, trainerIDs)
		if err != nil {
			return fmt.Errorf("load payees: %w", err)
		}
		if err := requireIBANs(payees); err != nil {
			return err
		}

		p, err := s.repo.InsertPayment(ctx, tx, req.UserID, total)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		for _, u := range payees {
			if err := s.repo.InsertSnapshot(ctx, tx, p.ID, u.ID, *u.IBAN); err != nil {
				return fmt.Errorf("insert iban snapshot for user %d: %w", u.ID, err)
			}
		}

		moved, err := s.repo.MarkCompensated(ctx, tx, p.ID, ids, s.now())
		if err != nil {
			return fmt.Errorf("mark trainings compensated: %w", err)
		}
		if moved != int64(len(ids)) {
			return fmt.Errorf("%w: %d of %d trainings changed concurrently", ErrTrainingNotApproved, int64(len(ids))-moved, len(ids))
		}

		p.TrainingIDs = ids
		result = &settlement{payment: p, payees: payees, counts: counts, sums: sums}
		return nil
	})
	if err != nil {
		metrics.RecordSettlementFailure(failureReason(err))
		return nil, err
	}

	metrics.RecordPayment(result.payment.TotalCents)
	logger.Info("payment created",
		"payment_id", result.payment.ID,
		"trainings", len(result.payment.TrainingIDs),
		"trainers", len(result.payees),
		"total_cents", result.payment.TotalCents,
	)

	s.notifyPayees(ctx, result)
	return result.payment, nil
}

func (s *service) selectTrainings(ctx context.Context, tx *sqlx.Tx, req CreatePaymentRequest) ([]lockedTraining, error) {
	if len(req.TrainingIDs) == 0 {
		if req.UserID == nil {
			return nil, ErrNoTrainings
		}
		selected, err := s.repo.LockApprovedForTrainer(ctx, tx, *req.UserID)
		if err != nil {
			return nil, fmt.Errorf("lock trainings: %w", err)
		}
		if len(selected) == 0 {
			return nil, ErrNoTrainings
		}
		return selected, nil
	}

	locked, err := s.repo.LockTrainings(ctx, tx, req.TrainingIDs)
	if err != nil {
		return nil, fmt.Errorf("lock trainings: %w", err)
	}
	if missing := missingIDs(req.TrainingIDs, locked); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrTrainingNotFound, missing)
	}

	selected := locked[:0:0]
	for _, t := range locked {
		if req.UserID != nil && t.UserID != *req.UserID {
			continue
		}
		if t.Status != "APPROVED" {
			return nil, fmt.Errorf("%w: training %d is %s", ErrTrainingNotApproved, t.ID, t.Status)
		}
		selected = append(selected, t)
	}
	if len(selected) == 0 {
		return nil, ErrNoTrainings
	}
	return selected, nil
}

func missingIDs(requested []int, found []lockedTraining) []int {
	present := make(map[int]bool, len(found))
	for _, t := range found {
		present[t.ID] = true
	}
	var missing []int
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// summarize returns the distinct trainers in ascending order, per-trainer
// training counts and sums, the settled ids and the payment total.
func summarize(selected []lockedTraining) ([]int, map[int]int, map[int]int64, []int, int64) {
	counts := make(map[int]int)
	sums := make(map[int]int64)
	ids := make([]int, 0, len(selected))
	var trainers []int
	var total int64

	for _, t := range selected {
		if _, seen := counts[t.UserID]; !seen {
			trainers = append(trainers, t.UserID)
		}
		counts[t.UserID]++
		sums[t.UserID] += t.CompensationCents
		ids = append(ids, t.ID)
		total += t.CompensationCents
	}

	sort.Ints(trainers)
	sort.Ints(ids)
	return trainers, counts, sums, ids, total
}

func requireIBANs(payees []payee) error {
	var emails []string
	for _, u := range payees {
		if u.IBAN == nil || *u.IBAN == "" {
			emails = append(emails, u.Email)
		}
	}
	if len(emails) > 0 {
		return newMissingIBANError(emails)
	}
	return nil
}

func failureReason(err error) string {
	var missing *MissingIBANError
	switch {
	case errors.As(err, &missing):
		return "missing_iban"
	case errors.Is(err, ErrTrainingNotApproved):
		return "not_approved"
	case errors.Is(err, ErrTrainingNotFound):
		return "not_found"
	case errors.Is(err, ErrNoTrainings):
		return "empty"
	default:
		return "internal"
	}
}

// notifyPayees is best effort; the payment is already committed.
func (s *service) notifyPayees(ctx context.Context, r *settlement) {
	if s.notifier == nil {
		return
	}
	for _, u := range r.payees {
		err := s.notifier.Enqueue(ctx, notify.Payout{
			Email:          u.Email,
			Name:           u.Name,
			PaymentID:      r.payment.ID,
			TotalTrainings: r.counts[u.ID],
			AmountCents:    r.sums[u.ID],
			IBAN:           *u.IBAN,
		})
		if err != nil {
			logger.Warn("payout notice not queued", "payment_id", r.payment.ID, "user_id", u.ID, "error", err)
		}
	}
}

func (s *service) GetPayment(ctx context.Context, id int) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *service) ListPayments(ctx context.Context, trainerID *int) ([]Payment, error) {
	return s.repo.ListPayments(ctx, trainerID)
}

// DeletePayment reverses a settlement: its trainings return to APPROVED and
// the payment and its snapshots are removed.
func (s *service) DeletePayment(ctx context.Context, id int) error {
	var released int64
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.repo.LockPayment(ctx, tx, id); err != nil {
			return err
		}

		var err error
		released, err = s.repo.ReleaseTrainings(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("release trainings: %w", err)
		}

		if err := s.repo.DeletePayment(ctx, tx, id); err != nil {
			return fmt.Errorf("delete payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.RecordPaymentReversal()
	logger.Info("payment reversed", "payment_id", id, "trainings", released)
	return nil
}
