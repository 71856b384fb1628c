package statistics

import "clubpay/internal/api"

type GroupBy string

const (
	GroupByCourse     GroupBy = "course"
	GroupByCostCenter GroupBy = "cost_center"
)

// Summary holds one group's quarterly figures.
// Sessions are distinct (course, date) pairs; compensation is never deduplicated.
type Summary struct {
	CourseID               *int   `json:"course_id,omitempty"`
	CostCenterID           *int   `json:"cost_center_id,omitempty"`
	Name                   string `json:"name"`
	TrainingCountQ1        int    `json:"training_count_q1"`
	TrainingCountQ2        int    `json:"training_count_q2"`
	TrainingCountQ3        int    `json:"training_count_q3"`
	TrainingCountQ4        int    `json:"training_count_q4"`
	TrainingCountTotal     int    `json:"training_count_total"`
	CompensationCentsQ1    int64  `json:"compensation_cents_q1"`
	CompensationCentsQ2    int64  `json:"compensation_cents_q2"`
	CompensationCentsQ3    int64  `json:"compensation_cents_q3"`
	CompensationCentsQ4    int64  `json:"compensation_cents_q4"`
	CompensationCentsTotal int64  `json:"compensation_cents_total"`
}

// compensatedRow is one COMPENSATED training with its grouping keys.
type compensatedRow struct {
	CourseID          int      `db:"course_id"`
	CourseName        string   `db:"course_name"`
	CostCenterID      int      `db:"cost_center_id"`
	CostCenterName    string   `db:"cost_center_name"`
	Date              api.Date `db:"date"`
	CompensationCents int64    `db:"compensation_cents"`
}
