package training

import (
	"context"

	"clubpay/internal/api"
)

type Repository interface {
	Create(ctx context.Context, t Training) (*Training, error)
	GetByID(ctx context.Context, id int) (*Training, error)
	List(ctx context.Context, filter ListFilter) ([]TrainingWithDetails, error)
	UpdateFields(ctx context.Context, id int, req UpdateTrainingRequest) (*Training, error)
	Delete(ctx context.Context, id int) error
	UpdateStatus(ctx context.Context, id int, from, to Status) (*Training, error)
	FindDuplicates(ctx context.Context, ids []int) ([]DuplicateWarning, error)
	ListCompensatedForTrainer(ctx context.Context, userID int, start, end api.Date) ([]reportRow, error)
}
