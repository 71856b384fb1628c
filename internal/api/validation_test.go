package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name  string `json:"name" binding:"required"`
	Count int    `json:"count"`
}

func (r sampleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Count, validation.Min(1)),
	)
}

func bindRecorder(body string) (*httptest.ResponseRecorder, bool) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req sampleRequest
	return w, BindJSON(c, &req)
}

func TestBindJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		w, ok := bindRecorder(`{"name":"a","count":2}`)
		assert.True(t, ok)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("binding tag fails", func(t *testing.T) {
		w, ok := bindRecorder(`{"count":2}`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Name is required")
	})

	t.Run("ozzo rule fails", func(t *testing.T) {
		w, ok := bindRecorder(`{"name":"a","count":-1}`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "count: must be no less than 1")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, ok := bindRecorder(`{`)
		assert.False(t, ok)
	})
}
