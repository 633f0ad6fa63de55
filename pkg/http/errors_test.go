package http

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IT-Nick/visionhub/internal/domain/model"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("progress.BeginOrResume: %w", model.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("attempt 1: %w", model.ErrNotFound), http.StatusNotFound},
		{model.ErrInvalidState, http.StatusConflict},
		{model.ErrValidation, http.StatusBadRequest},
		{fmt.Errorf("op: %w: %w", model.ErrPersistence, errors.New("conn refused")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestDomainError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	DomainError(rec, log.New(io.Discard, "", 0), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
