package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/founderfit/cofounder-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: user id is required", service.ErrValidation), http.StatusBadRequest},
		{service.ErrNoQuestions, http.StatusBadRequest},
		{fmt.Errorf("%w: session 7", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: session 7 is already completed", service.ErrConflict), http.StatusConflict},
		{fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		RespondError(ctx, c.err)
		assert.Equal(t, c.want, w.Code, "error: %v", c.err)
	}
}
