package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyetechsecurities/webforms/handler"
	"github.com/eyetechsecurities/webforms/pkg/binder"
)

type greetRequest struct {
	Name string `json:"name"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type failingResponse struct{}

func (failingResponse) Render(http.ResponseWriter, *http.Request) error {
	return errors.New("write: broken pipe")
}

func TestWrap(t *testing.T) {
	t.Parallel()

	greet := func(ctx handler.Context, req greetRequest) handler.Response {
		if req.Name == "" {
			return handler.Public(http.StatusBadRequest, "Name is required", nil)
		}
		return handler.Message("Hello " + req.Name)
	}
	h := handler.Wrap(greet, handler.WithBinder(binder.JSON()))

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody map[string]any
	}{
		{"success", `{"name":" Asha "}`, http.StatusOK, map[string]any{"message": "Hello Asha"}},
		{"public error returned by handler", `{}`, http.StatusBadRequest, map[string]any{"error": "Name is required"}},
		{"binder error", `{`, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			body := decodeBody(t, rec)
			if tt.wantBody == nil {
				assert.Equal(t, "Invalid request body", body["error"])
				return
			}
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestWrap_Failures(t *testing.T) {
	t.Parallel()

	capture := func(got *error) handler.WrapOption {
		return handler.WithErrorHandler(func(ctx handler.Context, err error) {
			*got = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		})
	}

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(
			func(ctx handler.Context, req struct{}) handler.Response { return nil },
			capture(&got),
		)
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.ErrorIs(t, got, handler.ErrNilResponse)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("render error", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(
			func(ctx handler.Context, req struct{}) handler.Response { return failingResponse{} },
			capture(&got),
		)
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.EqualError(t, got, "write: broken pipe")
	})

	t.Run("no binder leaves zero value", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req greetRequest) handler.Response {
			return handler.Text(http.StatusOK, "name="+req.Name)
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`)))

		assert.Equal(t, "name=", rec.Body.String())
	})

	t.Run("default handler hides unknown errors", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(
			func(ctx handler.Context, req greetRequest) handler.Response { return handler.Message("unreachable") },
			handler.WithBinder(func(r *http.Request, v any) error {
				return errors.New("dial tcp 10.0.0.1:443: connection refused")
			}),
		)
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]any{"error": handler.DefaultErrorMessage}, decodeBody(t, rec))
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
	rec := httptest.NewRecorder()

	ctx := handler.NewContext(rec, req)
	assert.Same(t, req, ctx.Request())
	assert.Equal(t, rec, ctx.ResponseWriter())
	assert.Equal(t, "v", ctx.Value(key{}))
	assert.NoError(t, ctx.Err())
}

func TestResponses(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Text(http.StatusBadRequest, "Please fill out all fields.").Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "Please fill out all fields.", rec.Body.String())
	})

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/thank-you.html").Render(rec, httptest.NewRequest(http.MethodPost, "/submit-form", nil)))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/thank-you.html", rec.Header().Get("Location"))
	})

	t.Run("redirect with code", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.RedirectWithCode("/x", http.StatusFound).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("json error with details", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.JSONError(http.StatusBadRequest, "Missing required fields", map[string]string{"phone": "phone is required"})
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]any{
			"error":   "Missing required fields",
			"details": map[string]any{"phone": "phone is required"},
		}, decodeBody(t, rec))
	})

	t.Run("json with status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.JSON(map[string]int{"n": 1}, handler.WithJSONStatus(http.StatusAccepted)).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"n":1}`, rec.Body.String())
	})
}
