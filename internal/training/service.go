package training

import (
	"context"
	"errors"
	"fmt"

	"clubpay/internal/api"
	"clubpay/internal/auth"
	"clubpay/internal/logger"
	"clubpay/internal/metrics"
	"clubpay/internal/user"
)

var (
	ErrForbidden     = errors.New("not allowed to access this training")
	ErrInvalidPeriod = errors.New("period end must not be before start")
	ErrNoTrainingIDs = errors.New("at least one training id is required")
	ErrTooManyIDs    = errors.New("too many training ids")
)

const maxDuplicateLookup = 500

// TrainerLookup resolves trainer display data.
type TrainerLookup interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateTrainingRequest) (*Training, error)
	Get(ctx context.Context, actor auth.Actor, id int) (*Training, error)
	List(ctx context.Context, actor auth.Actor, filter ListFilter) ([]TrainingWithDetails, error)
	Update(ctx context.Context, actor auth.Actor, id int, req UpdateTrainingRequest) (*Training, error)
	Delete(ctx context.Context, actor auth.Actor, id int) error
	Transition(ctx context.Context, id int, requested Status) (*Training, error)
	FindDuplicates(ctx context.Context, ids []int) ([]DuplicateWarning, error)
	TrainerReport(ctx context.Context, actor auth.Actor, trainerID int, start, end api.Date) (*TrainerReport, error)
}

type service struct {
	repo     Repository
	trainers TrainerLookup
}

func NewService(repo Repository, trainers TrainerLookup) Service {
	return &service{
		repo:     repo,
		trainers: trainers,
	}
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateTrainingRequest) (*Training, error) {
	ownerID := req.UserID
	if ownerID == 0 {
		ownerID = actor.UserID
	}
	if !actor.CanAccess(ownerID) {
		return nil, ErrForbidden
	}

	t, err := s.repo.Create(ctx, Training{
		Date:              req.Date,
		CourseID:          req.CourseID,
		UserID:            ownerID,
		ParticipantCount:  req.ParticipantCount,
		CompensationCents: req.CompensationCents,
		Comment:           req.Comment,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTrainingCreated()
	return t, nil
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id int) (*Training, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(t.UserID) {
		return nil, ErrForbidden
	}
	return t, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter ListFilter) ([]TrainingWithDetails, error) {
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(filter.From.Time) {
		return nil, ErrInvalidPeriod
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id int, req UpdateTrainingRequest) (*Training, error) {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, id, req)
}

// Delete removes a training that has not been approved yet. Approved and
// compensated trainings are kept for the settlement history.
func (s *service) Delete(ctx context.Context, actor auth.Actor, id int) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("training deleted", "training_id", id, "actor_id", actor.UserID)
	return nil
}

func (s *service) editable(ctx context.Context, actor auth.Actor, id int) (*Training, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(t.UserID) {
		return nil, ErrForbidden
	}
	if t.Status != StatusNew {
		return nil, fmt.Errorf("%w: training %d is %s", ErrTrainingLocked, id, t.Status)
	}
	return t, nil
}

func (s *service) Transition(ctx context.Context, id int, requested Status) (*Training, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(current.Status, requested); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, requested)
	if err != nil {
		return nil, err
	}

	metrics.RecordTrainingTransition(string(current.Status), string(requested))
	logger.Info("training status changed", "training_id", id, "from", current.Status, "to", requested)
	return updated, nil
}

func (s *service) FindDuplicates(ctx context.Context, ids []int) ([]DuplicateWarning, error) {
	if len(ids) == 0 {
		return nil, ErrNoTrainingIDs
	}
	if len(ids) > maxDuplicateLookup {
		return nil, ErrTooManyIDs
	}
	return s.repo.FindDuplicates(ctx, ids)
}

func (s *service) TrainerReport(ctx context.Context, actor auth.Actor, trainerID int, start, end api.Date) (*TrainerReport, error) {
	if !actor.CanAccess(trainerID) {
		return nil, ErrForbidden
	}
	if end.Before(start.Time) {
		return nil, ErrInvalidPeriod
	}

	trainer, err := s.trainers.FindByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListCompensatedForTrainer(ctx, trainerID, start, end)
	if err != nil {
		return nil, err
	}

	report := buildReport(rows)
	report.PeriodStart = start
	report.PeriodEnd = end
	report.TrainerName = trainer.Name
	return report, nil
}
