package training

import (
	"context"
	"errors"
	"testing"

	"clubpay/internal/api"
	"clubpay/internal/auth"
	"clubpay/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, t Training) (*Training, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Training), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Training, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Training), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]TrainingWithDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TrainingWithDetails), args.Error(1)
}

func (m *MockRepository) UpdateFields(ctx context.Context, id int, req UpdateTrainingRequest) (*Training, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Training), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int, from, to Status) (*Training, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Training), args.Error(1)
}

func (m *MockRepository) FindDuplicates(ctx context.Context, ids []int) ([]DuplicateWarning, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DuplicateWarning), args.Error(1)
}

func (m *MockRepository) ListCompensatedForTrainer(ctx context.Context, userID int, start, end api.Date) ([]reportRow, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reportRow), args.Error(1)
}

type MockTrainers struct {
	mock.Mock
}

func (m *MockTrainers) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

var (
	admin   = auth.Actor{UserID: 1, Role: auth.RoleAdmin}
	trainer = auth.Actor{UserID: 7, Role: auth.RoleTrainer}
)

func newTestService() (Service, *MockRepository, *MockTrainers) {
	repo := new(MockRepository)
	trainers := new(MockTrainers)
	return NewService(repo, trainers), repo, trainers
}

func TestService_Create(t *testing.T) {
	day := api.NewDate(2024, 3, 5)

	tests := []struct {
		name      string
		actor     auth.Actor
		req       CreateTrainingRequest
		wantOwner int
		wantErr   error
	}{
		{
			name:      "trainer records own training",
			actor:     trainer,
			req:       CreateTrainingRequest{Date: day, CourseID: 2, CompensationCents: 1500},
			wantOwner: 7,
		},
		{
			name:      "admin records for a trainer",
			actor:     admin,
			req:       CreateTrainingRequest{Date: day, CourseID: 2, CompensationCents: 1500, UserID: 7},
			wantOwner: 7,
		},
		{
			name:    "trainer cannot record for someone else",
			actor:   trainer,
			req:     CreateTrainingRequest{Date: day, CourseID: 2, UserID: 8},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			if tt.wantErr == nil {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(in Training) bool {
					return in.UserID == tt.wantOwner && in.CourseID == tt.req.CourseID
				})).Return(&Training{ID: 11, UserID: tt.wantOwner, Status: StatusNew}, nil)
			}

			got, err := svc.Create(context.Background(), tt.actor, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusNew, got.Status)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_ListRestrictsTrainers(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.On("List", mock.Anything, ListFilter{UserID: 7}).Return([]TrainingWithDetails{}, nil)

	_, err := svc.List(context.Background(), trainer, ListFilter{UserID: 99})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_ListRejectsInvertedPeriod(t *testing.T) {
	svc, _, _ := newTestService()
	from := api.NewDate(2024, 5, 1)
	to := api.NewDate(2024, 4, 1)

	_, err := svc.List(context.Background(), admin, ListFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestService_GetForeignTraining(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.On("GetByID", mock.Anything, 3).Return(&Training{ID: 3, UserID: 8}, nil)

	_, err := svc.Get(context.Background(), trainer, 3)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), admin, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, got.UserID)
}

func TestService_UpdateOnlyWhileNew(t *testing.T) {
	req := UpdateTrainingRequest{Date: api.NewDate(2024, 3, 5), CourseID: 2, CompensationCents: 2000}

	for _, status := range []Status{StatusApproved, StatusCompensated} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo, _ := newTestService()
			repo.On("GetByID", mock.Anything, 4).Return(&Training{ID: 4, UserID: 7, Status: status}, nil)

			_, err := svc.Update(context.Background(), trainer, 4, req)
			assert.ErrorIs(t, err, ErrTrainingLocked)
			repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	svc, repo, _ := newTestService()
	repo.On("GetByID", mock.Anything, 4).Return(&Training{ID: 4, UserID: 7, Status: StatusNew}, nil)
	repo.On("UpdateFields", mock.Anything, 4, req).Return(&Training{ID: 4, UserID: 7, CompensationCents: 2000}, nil)

	got, err := svc.Update(context.Background(), trainer, 4, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.CompensationCents)
}

func TestService_Delete(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.On("GetByID", mock.Anything, 4).Return(&Training{ID: 4, UserID: 7, Status: StatusNew}, nil)
	repo.On("Delete", mock.Anything, 4).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), trainer, 4))

	svc, repo, _ = newTestService()
	repo.On("GetByID", mock.Anything, 5).Return(&Training{ID: 5, UserID: 7, Status: StatusApproved}, nil)

	err := svc.Delete(context.Background(), trainer, 5)
	assert.ErrorIs(t, err, ErrTrainingLocked)
	repo.AssertNotCalled(t, "Delete", mock.Anything, 5)
}

func TestService_RevokeRoundTrip(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	owner := auth.Actor{UserID: 4, Role: auth.RoleTrainer}
	edit := UpdateTrainingRequest{CourseID: 2, CompensationCents: 1500, ParticipantCount: 9}

	repo.On("GetByID", mock.Anything, 9).Return(&Training{ID: 9, UserID: 4, Status: StatusNew}, nil).Once()
	repo.On("UpdateStatus", mock.Anything, 9, StatusNew, StatusApproved).
		Return(&Training{ID: 9, UserID: 4, Status: StatusApproved}, nil).Once()

	approved, err := svc.Transition(ctx, 9, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	// Approved trainings are locked for their owner.
	repo.On("GetByID", mock.Anything, 9).Return(&Training{ID: 9, UserID: 4, Status: StatusApproved}, nil).Once()
	_, err = svc.Update(ctx, owner, 9, edit)
	assert.ErrorIs(t, err, ErrTrainingLocked)

	repo.On("GetByID", mock.Anything, 9).Return(&Training{ID: 9, UserID: 4, Status: StatusApproved}, nil).Once()
	repo.On("UpdateStatus", mock.Anything, 9, StatusApproved, StatusNew).
		Return(&Training{ID: 9, UserID: 4, Status: StatusNew}, nil).Once()

	revoked, err := svc.Transition(ctx, 9, StatusNew)
	require.NoError(t, err)
	assert.Equal(t, StatusNew, revoked.Status)

	// After the revoke the owner may edit and delete again.
	repo.On("GetByID", mock.Anything, 9).Return(&Training{ID: 9, UserID: 4, Status: StatusNew}, nil).Once()
	repo.On("UpdateFields", mock.Anything, 9, edit).
		Return(&Training{ID: 9, UserID: 4, CourseID: 2, CompensationCents: 1500, Status: StatusNew}, nil).Once()

	updated, err := svc.Update(ctx, owner, 9, edit)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), updated.CompensationCents)

	repo.On("GetByID", mock.Anything, 9).Return(&Training{ID: 9, UserID: 4, Status: StatusNew}, nil).Once()
	repo.On("Delete", mock.Anything, 9).Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, owner, 9))
	repo.AssertExpectations(t)
}

func TestService_CompensatedIsTerminal(t *testing.T) {
	for _, requested := range []Status{StatusNew, StatusApproved, StatusCompensated} {
		t.Run(string(requested), func(t *testing.T) {
			svc, repo, _ := newTestService()
			repo.On("GetByID", mock.Anything, 9).Return(&Training{ID: 9, Status: StatusCompensated}, nil)

			_, err := svc.Transition(context.Background(), 9, requested)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_TransitionLostRace(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.On("GetByID", mock.Anything, 9).Return(&Training{ID: 9, Status: StatusNew}, nil)
	repo.On("UpdateStatus", mock.Anything, 9, StatusNew, StatusApproved).Return(nil, ErrInvalidTransition)

	_, err := svc.Transition(context.Background(), 9, StatusApproved)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_FindDuplicates(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.FindDuplicates(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoTrainingIDs)

	warnings := []DuplicateWarning{{TrainingID: 1, ConflictingTrainingID: 2, ConflictingUserID: 8}}
	repo.On("FindDuplicates", mock.Anything, []int{1}).Return(warnings, nil)

	got, err := svc.FindDuplicates(context.Background(), []int{1})
	require.NoError(t, err)
	assert.Equal(t, warnings, got)
}

func TestService_TrainerReport(t *testing.T) {
	start := api.NewDate(2024, 1, 1)
	end := api.NewDate(2024, 3, 31)

	t.Run("groups by course", func(t *testing.T) {
		svc, repo, trainers := newTestService()
		trainers.On("FindByID", mock.Anything, 7).Return(&user.User{ID: 7, Name: "Coach"}, nil)
		repo.On("ListCompensatedForTrainer", mock.Anything, 7, start, end).Return([]reportRow{
			{CourseID: 2, CourseName: "Yoga", Date: api.NewDate(2024, 2, 1), CompensationCents: 1500},
			{CourseID: 1, CourseName: "Boxing", Date: api.NewDate(2024, 1, 10), CompensationCents: 2000},
			{CourseID: 2, CourseName: "Yoga", Date: api.NewDate(2024, 1, 5), CompensationCents: 1500},
		}, nil)

		report, err := svc.TrainerReport(context.Background(), trainer, 7, start, end)
		require.NoError(t, err)
		assert.Equal(t, "Coach", report.TrainerName)
		assert.Equal(t, int64(5000), report.TotalCompensationCents)
		require.Len(t, report.Courses, 2)
		assert.Equal(t, "Boxing", report.Courses[0].CourseName)
		assert.Equal(t, "Yoga", report.Courses[1].CourseName)
		require.Len(t, report.Courses[1].Trainings, 2)
		assert.Equal(t, "2024-01-05", report.Courses[1].Trainings[0].Date.String())
	})

	t.Run("other trainer", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.TrainerReport(context.Background(), trainer, 8, start, end)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("inverted period", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.TrainerReport(context.Background(), admin, 7, end, start)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("unknown trainer", func(t *testing.T) {
		svc, _, trainers := newTestService()
		trainers.On("FindByID", mock.Anything, 7).Return(nil, user.ErrUserNotFound)

		_, err := svc.TrainerReport(context.Background(), admin, 7, start, end)
		assert.True(t, errors.Is(err, user.ErrUserNotFound))
	})
}
