package payment

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrTrainingNotFound    = errors.New("training not found")
	ErrTrainingNotApproved = errors.New("training is not approved")
	ErrNoTrainings         = errors.New("no trainings selected for payment")
)

// MissingIBANError aborts a settlement when trainers have no bank account on
// file. Emails lists every affected trainer.
type MissingIBANError struct {
	Emails []string
}

func newMissingIBANError(emails []string) *MissingIBANError {
	sorted := append([]string(nil), emails...)
	sort.Strings(sorted)
	return &MissingIBANError{Emails: sorted}
}

func (e *MissingIBANError) Error() string {
	return "missing IBAN for trainers: " + strings.Join(e.Emails, ", ")
}
