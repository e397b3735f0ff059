package httputil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hospital-console/pkg/errors"
)

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err        error
		wantStatus int
		wantBody   string
	}{
		{errors.NotFound("User", nil), http.StatusNotFound, `{"detail":"User not found"}`},
		{errors.Validation(http.StatusBadRequest, "Username already registered"), http.StatusBadRequest, `{"detail":"Username already registered"}`},
		{io.EOF, http.StatusInternalServerError, `{"detail":"Internal server error"}`},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondWithError(c, tt.err)
		assert.Equal(t, tt.wantStatus, w.Code)
		assert.JSONEq(t, tt.wantBody, w.Body.String())
	}
}
