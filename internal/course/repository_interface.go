package course

import "context"

type Repository interface {
	CreateCostCenter(ctx context.Context, name string) (*CostCenter, error)
	ListCostCenters(ctx context.Context) ([]CostCenter, error)
	DeleteCostCenter(ctx context.Context, id int) error
	CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error)
	ListCourses(ctx context.Context) ([]CourseWithCostCenter, error)
	GetCourseByID(ctx context.Context, id int) (*Course, error)
}
