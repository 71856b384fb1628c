package training

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusNew         Status = "NEW"
	StatusApproved    Status = "APPROVED"
	StatusCompensated Status = "COMPENSATED"
)

var (
	ErrInvalidStatus     = errors.New("invalid training status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type transition struct {
	from, to Status
}

// allowedTransitions lists every status change a client may request.
// NEW -> APPROVED approves, APPROVED -> NEW revokes. COMPENSATED is only
// reached through payment settlement and is never left again.
var allowedTransitions = map[transition]bool{
	{StatusNew, StatusApproved}: true,
	{StatusApproved, StatusNew}: true,
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusApproved, StatusCompensated:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompensated
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// ValidateTransition checks a client-requested status change.
func ValidateTransition(current, requested Status) error {
	if !current.Valid() || !requested.Valid() {
		return ErrInvalidStatus
	}
	if !allowedTransitions[transition{current, requested}] {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, requested)
	}
	return nil
}
