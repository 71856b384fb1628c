package course

import "time"

type CostCenter struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Course struct {
	ID              int       `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	CostCenterID    int       `db:"cost_center_id" json:"cost_center_id"`
	Weekdays        string    `db:"weekdays" json:"weekdays" example:"MON,THU"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// CourseWithCostCenter carries the cost center name for display.
type CourseWithCostCenter struct {
	Course
	CostCenterName string `db:"cost_center_name" json:"cost_center_name"`
}

type CreateCostCenterRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CreateCourseRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	CostCenterID    int    `json:"cost_center_id" binding:"required,gte=1"`
	Weekdays        string `json:"weekdays"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gte=1"`
}
