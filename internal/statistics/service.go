package statistics

import (
	"context"
	"errors"
	"fmt"

	"clubpay/internal/api"
)

var (
	ErrInvalidGroupBy = errors.New("group_by must be course or cost_center")
	ErrInvalidYear    = errors.New("year out of range")
)

type Service interface {
	Summarize(ctx context.Context, year int, groupBy GroupBy) ([]Summary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func ParseGroupBy(raw string) (GroupBy, error) {
	switch g := GroupBy(raw); g {
	case GroupByCourse, GroupByCostCenter:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGroupBy, raw)
}

func (s *service) Summarize(ctx context.Context, year int, groupBy GroupBy) ([]Summary, error) {
	if year < 1900 || year > 9999 {
		return nil, ErrInvalidYear
	}
	if _, err := ParseGroupBy(string(groupBy)); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListCompensated(ctx, api.NewDate(year, 1, 1), api.NewDate(year, 12, 31))
	if err != nil {
		return nil, fmt.Errorf("load compensated trainings: %w", err)
	}
	return Summarize(rows, groupBy), nil
}
