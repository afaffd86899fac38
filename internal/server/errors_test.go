package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/ingest"
	"github.com/jonathan/resume-analyzer/internal/knowledge"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "job_url", Message: "invalid format"}
	assert.Equal(t, "validation error: job_url - invalid format", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrPayloadTooLarge(t *testing.T) {
	err := &ErrPayloadTooLarge{Limit: 1 << 20}
	assert.Equal(t, "request body exceeds 1048576 bytes", err.Error())
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(err))
}

func TestHTTPStatus_SkillNotFound(t *testing.T) {
	err := fmt.Errorf("%w: elixir", knowledge.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus_NoContent(t *testing.T) {
	err := fmt.Errorf("fetching job posting: %w", ingest.ErrNoContent)
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(err))
}

func TestHTTPStatus_DeadlineExceeded(t *testing.T) {
	err := fmt.Errorf("analysis: %w", context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(err))
}

func TestHTTPStatus_WrappedValidation(t *testing.T) {
	err := fmt.Errorf("handler: %w", &ErrValidation{Field: "resume_text", Message: "required"})
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(nil))
}
