package training

import (
	"time"

	"clubpay/internal/api"
)

type Training struct {
	ID                int        `db:"id" json:"id"`
	Date              api.Date   `db:"date" json:"date"`
	CourseID          int        `db:"course_id" json:"course_id"`
	UserID            int        `db:"user_id" json:"user_id"`
	ParticipantCount  int        `db:"participant_count" json:"participant_count"`
	CompensationCents int64      `db:"compensation_cents" json:"compensation_cents"`
	Comment           string     `db:"comment" json:"comment"`
	Status            Status     `db:"status" json:"status"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	CompensatedAt     *time.Time `db:"compensated_at" json:"compensated_at,omitempty"`
	PaymentID         *int       `db:"payment_id" json:"payment_id,omitempty"`
}

type TrainingWithDetails struct {
	Training
	CourseName  string `db:"course_name" json:"course_name"`
	TrainerName string `db:"trainer_name" json:"trainer_name"`
}

type CreateTrainingRequest struct {
	Date              api.Date `json:"date" swaggertype:"string" example:"2024-03-05"`
	CourseID          int      `json:"course_id" binding:"required,gte=1"`
	CompensationCents int64    `json:"compensation_cents" binding:"gte=0"`
	ParticipantCount  int      `json:"participant_count" binding:"gte=0"`
	UserID            int      `json:"user_id" binding:"gte=0"`
	Comment           string   `json:"comment" binding:"max=500"`
}

type UpdateTrainingRequest struct {
	Date              api.Date `json:"date" swaggertype:"string" example:"2024-03-05"`
	CourseID          int      `json:"course_id" binding:"required,gte=1"`
	CompensationCents int64    `json:"compensation_cents" binding:"gte=0"`
	ParticipantCount  int      `json:"participant_count" binding:"gte=0"`
	Comment           string   `json:"comment" binding:"max=500"`
}

type TransitionRequest struct {
	Status Status `json:"status" binding:"required" example:"APPROVED"`
}

// ListFilter narrows List. Zero values mean "no restriction".
type ListFilter struct {
	UserID   int
	CourseID int
	Status   Status
	From     *api.Date
	To       *api.Date
}

// DuplicateWarning flags a probable double entry: another trainer recorded
// the same course on the same day.
type DuplicateWarning struct {
	TrainingID            int      `db:"training_id" json:"training_id"`
	ConflictingTrainingID int      `db:"conflicting_training_id" json:"conflicting_training_id"`
	ConflictingUserID     int      `db:"conflicting_user_id" json:"conflicting_user_id"`
	TrainerName           string   `db:"trainer_name" json:"trainer_name"`
	CourseName            string   `db:"course_name" json:"course_name"`
	Date                  api.Date `db:"date" json:"date" swaggertype:"string"`
}

type reportRow struct {
	CourseID          int      `db:"course_id"`
	CourseName        string   `db:"course_name"`
	Date              api.Date `db:"date"`
	CompensationCents int64    `db:"compensation_cents"`
}

type TrainerReport struct {
	PeriodStart            api.Date       `json:"period_start" swaggertype:"string"`
	PeriodEnd              api.Date       `json:"period_end" swaggertype:"string"`
	TrainerName            string         `json:"trainer_name"`
	Courses                []ReportCourse `json:"courses"`
	TotalCompensationCents int64          `json:"total_compensation_cents"`
}

type ReportCourse struct {
	CourseName string           `json:"course_name"`
	Trainings  []ReportTraining `json:"trainings"`
}

type ReportTraining struct {
	Date              api.Date `json:"date" swaggertype:"string"`
	CompensationCents int64    `json:"compensation_cents"`
}
