package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
)

func statusFor(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, err)
	return w.Code, w.Body.String()
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.NotFound("order"), http.StatusNotFound},
		{apperrors.Conflict("SKU code"), http.StatusConflict},
		{gorm.ErrDuplicatedKey, http.StatusConflict},
		{&apperrors.InsufficientStockError{SKUCode: "A-1"}, http.StatusBadRequest},
		{apperrors.ErrEmptyCart, http.StatusBadRequest},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("pq: connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _ := statusFor(t, tc.err)
		require.Equal(t, tc.status, status, "error %v", tc.err)
	}
}

func TestErrorHidesInternalDetail(t *testing.T) {
	_, body := statusFor(t, errors.New("pq: connection reset"))
	require.NotContains(t, body, "pq:")
	require.Contains(t, body, "Something went wrong, please try again")
}

func TestDuplicateKeyReportsConflictNotFailure(t *testing.T) {
	// A racing insert surfaces as the driver's unique violation; the
	// client still sees a conflict, never a server failure.
	status, body := statusFor(t, gorm.ErrDuplicatedKey)
	require.Equal(t, http.StatusConflict, status)
	require.Contains(t, body, "already exists")
}
