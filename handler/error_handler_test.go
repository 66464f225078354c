package handler_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyetechsecurities/webforms/handler"
	"github.com/eyetechsecurities/webforms/pkg/binder"
	"github.com/eyetechsecurities/webforms/pkg/formdata"
	"github.com/eyetechsecurities/webforms/pkg/logger"
	"github.com/eyetechsecurities/webforms/pkg/requestid"
	"github.com/eyetechsecurities/webforms/pkg/validator"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	missing := validator.Apply(
		validator.Required("name", "").WithMessage("Missing required field: name"),
		validator.Required("phone", "").WithMessage("Missing required field: phone"),
	)
	require.Error(t, missing)

	_, malformedErr := formdata.Parse([]byte("x"), "multipart/form-data")
	require.Error(t, malformedErr)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantDetails map[string]string
		wantLevel   slog.Level
	}{
		{
			name:        "public error keeps message and hides cause",
			err:         handler.Public(http.StatusInternalServerError, "Failed to send invoice email", errors.New("postmark: 401 bad token")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to send invoice email",
			wantLevel:   slog.LevelError,
		},
		{
			name:        "public error takes details from validation errors",
			err:         handler.Public(http.StatusBadRequest, "Missing required fields", missing),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing required fields",
			wantDetails: map[string]string{"name": "Missing required field: name", "phone": "Missing required field: phone"},
			wantLevel:   slog.LevelWarn,
		},
		{
			name:        "validation errors use first message",
			err:         fmt.Errorf("booking: %w", missing),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing required field: name",
			wantDetails: map[string]string{"name": "Missing required field: name", "phone": "Missing required field: phone"},
			wantLevel:   slog.LevelWarn,
		},
		{
			name:        "malformed multipart",
			err:         fmt.Errorf("%w: %w", binder.ErrInvalidForm, malformedErr),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Malformed form data",
			wantDetails: map[string]string{"body": formdata.ErrMissingBoundary.Error()},
			wantLevel:   slog.LevelWarn,
		},
		{
			name:        "body too large",
			err:         fmt.Errorf("%w: max 1 bytes", binder.ErrBodyTooLarge),
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantMessage: "Request body too large",
			wantLevel:   slog.LevelWarn,
		},
		{
			name:        "unsupported media type",
			err:         binder.ErrUnsupportedMediaType,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
			wantDetails: map[string]string{"body": "unsupported media type"},
			wantLevel:   slog.LevelWarn,
		},
		{
			name:        "http error",
			err:         handler.ErrMethodNotAllowed,
			wantStatus:  http.StatusMethodNotAllowed,
			wantMessage: "Method not allowed",
			wantLevel:   slog.LevelWarn,
		},
		{
			name:        "unknown error",
			err:         errors.New("s3: access denied"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Something broke",
			wantLevel:   slog.LevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := handler.ClassifyError(tt.err, "Something broke")
			assert.Equal(t, tt.wantStatus, info.StatusCode)
			assert.Equal(t, tt.wantMessage, info.Message)
			assert.Equal(t, tt.wantDetails, info.Details)
			assert.Equal(t, tt.wantLevel, info.LogLevel)
		})
	}
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("logs cause and renders JSON", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		log := logger.New(logger.WithOutput(&logs), logger.WithFormat(logger.FormatJSON))
		eh := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{})

		req := httptest.NewRequest(http.MethodPost, "/api/send-invoice", nil)
		req = req.WithContext(requestid.WithContext(req.Context(), "req-123"))
		rec := httptest.NewRecorder()

		eh(handler.NewContext(rec, req), handler.Public(http.StatusInternalServerError, "Failed to send invoice email", errors.New("postmark: 401 bad token")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to send invoice email"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "postmark")

		out := logs.String()
		assert.Contains(t, out, "postmark: 401 bad token")
		assert.Contains(t, out, `"request_id":"req-123"`)
		assert.Contains(t, out, `"status_code":500`)
		assert.Contains(t, out, `"path":"/api/send-invoice"`)
	})

	t.Run("text renderer with default message", func(t *testing.T) {
		t.Parallel()

		eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{
			Render:         handler.RenderText,
			DefaultMessage: "Failed to send message. Please try again later.",
		})
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodPost, "/submit-form", nil)), errors.New("smtp down"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "Failed to send message. Please try again later.", strings.TrimSpace(rec.Body.String()))
	})
}

func TestPublicError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := handler.Public(http.StatusBadGateway, "Upstream failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Upstream failed: boom", err.Error())
	assert.Equal(t, "Upstream failed", handler.Public(http.StatusBadRequest, "Upstream failed", nil).Error())
}
