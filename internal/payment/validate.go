package payment

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

const maxTrainingsPerPayment = 1000

func (r CreatePaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.By(positiveID)),
		validation.Field(&r.TrainingIDs,
			validation.By(r.requireSelection),
			validation.Length(0, maxTrainingsPerPayment),
			validation.By(distinctPositiveIDs),
		),
	)
}

func (r CreatePaymentRequest) requireSelection(value interface{}) error {
	ids, _ := value.([]int)
	if len(ids) == 0 && r.UserID == nil {
		return errors.New("training_ids or user_id is required")
	}
	return nil
}

func positiveID(value interface{}) error {
	id, _ := value.(*int)
	if id != nil && *id <= 0 {
		return errors.New("must be a positive id")
	}
	return nil
}

func distinctPositiveIDs(value interface{}) error {
	ids, _ := value.([]int)
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return errors.New("ids must be positive")
		}
		if _, dup := seen[id]; dup {
			return errors.New("ids must be unique")
		}
		seen[id] = struct{}{}
	}
	return nil
}
