// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorSentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", fmt.Errorf("get user: %w", ErrNotFound),
			http.StatusNotFound, "NOT_FOUND"},
		{"invalid input", fmt.Errorf("bad field: %w", ErrInvalidInput),
			http.StatusBadRequest, "BAD_REQUEST"},
		{"forbidden", fmt.Errorf("nope: %w", ErrForbidden),
			http.StatusForbidden, "FORBIDDEN"},
		{"conflict", fmt.Errorf("dup: %w", ErrConflict),
			http.StatusConflict, "CONFLICT"},
		{"duplicate key", fmt.Errorf("dup: %w", ErrDuplicateKey),
			http.StatusConflict, "CONFLICT"},
		{"has dependencies", fmt.Errorf("busy: %w", ErrHasDependencies),
			http.StatusConflict, "CONFLICT"},
		{"unknown is internal", errors.New("boom"),
			http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapError(tt.err)
			assert.Equal(t, tt.wantStatus, appErr.Status)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestMapErrorPassesThroughAppError(t *testing.T) {
	orig := NotFoundError("reminder")
	wrapped := fmt.Errorf("handler: %w", orig)

	assert.Same(t, orig, MapError(wrapped))
}

func TestMapErrorHidesInternalDetail(t *testing.T) {
	appErr := MapError(errors.New("pq: relation users does not exist"))
	assert.NotContains(t, appErr.Message, "relation")
}
