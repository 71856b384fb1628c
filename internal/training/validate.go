package training

import (
	"errors"

	"clubpay/internal/api"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errDateRequired = errors.New("date is required")

func requiredDate(value interface{}) error {
	d, _ := value.(api.Date)
	if d.IsZero() {
		return errDateRequired
	}
	return nil
}

func (r CreateTrainingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.By(requiredDate)),
		validation.Field(&r.CourseID, validation.Required, validation.Min(1)),
		validation.Field(&r.CompensationCents, validation.Min(int64(0))),
		validation.Field(&r.ParticipantCount, validation.Min(0)),
		validation.Field(&r.Comment, validation.Length(0, 500)),
	)
}

func (r UpdateTrainingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.By(requiredDate)),
		validation.Field(&r.CourseID, validation.Required, validation.Min(1)),
		validation.Field(&r.CompensationCents, validation.Min(int64(0))),
		validation.Field(&r.ParticipantCount, validation.Min(0)),
		validation.Field(&r.Comment, validation.Length(0, 500)),
	)
}

// Validate only admits the client-settable statuses.
func (r TransitionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(StatusNew, StatusApproved)),
	)
}
