package course

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	Service
	deleteErr error
}

func (f *fakeService) DeleteCostCenter(context.Context, int) error { return f.deleteErr }

func TestHandler_DeleteCostCenter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"deleted", "/cost-centers/1", nil, http.StatusNoContent},
		{"in use", "/cost-centers/1", ErrCostCenterInUse, http.StatusConflict},
		{"missing", "/cost-centers/1", ErrCostCenterNotFound, http.StatusNotFound},
		{"bad id", "/cost-centers/abc", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{deleteErr: tt.err}
			r := gin.New()
			r.DELETE("/cost-centers/:id", NewHandler(svc).DeleteCostCenter)

			w := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodDelete, tt.path, nil)
			require.NoError(t, err)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
