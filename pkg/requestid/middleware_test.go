package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyetechsecurities/webforms/pkg/requestid"
)

func serve(t *testing.T, header string) (ctxID string, rec *httptest.ResponseRecorder) {
	t.Helper()
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return ctxID, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid when absent", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, "")
		require.Equal(t, http.StatusNoContent, rec.Code)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses valid header", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, "c6a1e1f0-lambda_req")
		assert.Equal(t, "c6a1e1f0-lambda_req", id)
		assert.Equal(t, id, rec.Header().Get(requestid.Header))
	})

	t.Run("replaces invalid header", func(t *testing.T) {
		t.Parallel()
		for _, bad := range []string{"has space", "slash/id", "semi;colon", strings.Repeat("a", 129)} {
			id, _ := serve(t, bad)
			assert.NotEqual(t, bad, id)
			assert.True(t, requestid.IsValid(id))
		}
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()
	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Equal(t, "x1", requestid.FromContext(requestid.WithContext(context.Background(), "x1")))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()
	extract := requestid.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "req-9"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-9", attr.Value.String())
}
