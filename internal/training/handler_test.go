package training

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubpay/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	Service
	transitionErr error
	duplicates    []DuplicateWarning
	gotIDs        []int
}

func (f *fakeService) Transition(_ context.Context, id int, requested Status) (*Training, error) {
	if f.transitionErr != nil {
		return nil, f.transitionErr
	}
	return &Training{ID: id, Status: requested}, nil
}

func (f *fakeService) FindDuplicates(_ context.Context, ids []int) ([]DuplicateWarning, error) {
	f.gotIDs = ids
	return f.duplicates, nil
}

func (f *fakeService) Get(_ context.Context, actor auth.Actor, id int) (*Training, error) {
	if !actor.CanAccess(8) {
		return nil, ErrForbidden
	}
	return &Training{ID: id, UserID: 8}, nil
}

func TestHandler_ChangeStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"approve", `{"status":"APPROVED"}`, nil, http.StatusOK},
		{"revoke", `{"status":"NEW"}`, nil, http.StatusOK},
		{"compensated is not client settable", `{"status":"COMPENSATED"}`, nil, http.StatusBadRequest},
		{"missing status", `{}`, nil, http.StatusBadRequest},
		{"terminal", `{"status":"NEW"}`, fmt.Errorf("%w: COMPENSATED -> NEW", ErrInvalidTransition), http.StatusConflict},
		{"not found", `{"status":"APPROVED"}`, ErrTrainingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.PATCH("/admin/trainings/:id/status", NewHandler(&fakeService{transitionErr: tt.err}).ChangeStatus)

			w := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodPatch, "/admin/trainings/3/status", strings.NewReader(tt.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandler_FindDuplicates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{}
	r := gin.New()
	r.GET("/admin/trainings/duplicates", NewHandler(svc).FindDuplicates)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/trainings/duplicates?ids=3,%204,5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{3, 4, 5}, svc.gotIDs)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/admin/trainings/duplicates?ids=3,x", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetTrainingForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/trainings/:id", func(c *gin.Context) {
		auth.SetActor(c, auth.Actor{UserID: 7, Role: auth.RoleTrainer})
		c.Next()
	}, NewHandler(&fakeService{}).GetTraining)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/trainings/3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
