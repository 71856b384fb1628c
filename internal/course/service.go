package course

import (
	"context"
	"strings"
)

type Service interface {
	CreateCostCenter(ctx context.Context, req CreateCostCenterRequest) (*CostCenter, error)
	ListCostCenters(ctx context.Context) ([]CostCenter, error)
	DeleteCostCenter(ctx context.Context, id int) error
	CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error)
	ListCourses(ctx context.Context) ([]CourseWithCostCenter, error)
	GetCourse(ctx context.Context, id int) (*Course, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCostCenter(ctx context.Context, req CreateCostCenterRequest) (*CostCenter, error) {
	return s.repo.CreateCostCenter(ctx, strings.TrimSpace(req.Name))
}

func (s *service) ListCostCenters(ctx context.Context) ([]CostCenter, error) {
	return s.repo.ListCostCenters(ctx)
}

func (s *service) DeleteCostCenter(ctx context.Context, id int) error {
	return s.repo.DeleteCostCenter(ctx, id)
}

func (s *service) CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Weekdays = strings.ToUpper(strings.ReplaceAll(req.Weekdays, " ", ""))
	return s.repo.CreateCourse(ctx, req)
}

func (s *service) ListCourses(ctx context.Context) ([]CourseWithCostCenter, error) {
	return s.repo.ListCourses(ctx)
}

func (s *service) GetCourse(ctx context.Context, id int) (*Course, error) {
	return s.repo.GetCourseByID(ctx, id)
}
