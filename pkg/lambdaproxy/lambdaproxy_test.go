package lambdaproxy_test

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyetechsecurities/webforms/pkg/lambdaproxy"
	"github.com/eyetechsecurities/webforms/pkg/requestid"
)

func TestNewRequest(t *testing.T) {
	t.Parallel()

	t.Run("base64 body, headers and query", func(t *testing.T) {
		t.Parallel()

		payload := "--b\r\nContent-Disposition: form-data; name=\"name\"\r\n\r\nAsha\r\n--b--\r\n"
		ev := events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodPost,
			Path:       "/api/send-email",
			Headers: map[string]string{
				"content-type": "multipart/form-data; boundary=b",
				"Host":         "forms.example.in",
			},
			MultiValueHeaders: map[string][]string{
				"Accept": {"application/json", "text/plain"},
			},
			QueryStringParameters:           map[string]string{"single": "1"},
			MultiValueQueryStringParameters: map[string][]string{"tag": {"a", "b"}},
			Body:                            base64.StdEncoding.EncodeToString([]byte(payload)),
			IsBase64Encoded:                 true,
			RequestContext: events.APIGatewayProxyRequestContext{
				RequestID: "c6af9ac6-7b61-11e6-9a41-93e8deadbeef",
				Identity:  events.APIGatewayRequestIdentity{SourceIP: "203.0.113.7"},
			},
		}

		r, err := lambdaproxy.NewRequest(context.Background(), ev)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/send-email", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("single"))
		assert.Equal(t, []string{"a", "b"}, r.URL.Query()["tag"])
		assert.Equal(t, "multipart/form-data; boundary=b", r.Header.Get("Content-Type"))
		assert.Equal(t, []string{"application/json", "text/plain"}, r.Header.Values("Accept"))
		assert.Equal(t, "forms.example.in", r.Host)
		assert.Equal(t, "203.0.113.7", r.RemoteAddr)
		assert.Equal(t, "c6af9ac6-7b61-11e6-9a41-93e8deadbeef", r.Header.Get(requestid.Header))
		assert.Equal(t, int64(len(payload)), r.ContentLength)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, payload, string(body))
	})

	t.Run("client request id wins", func(t *testing.T) {
		t.Parallel()
		r, err := lambdaproxy.NewRequest(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod:     http.MethodGet,
			Headers:        map[string]string{requestid.Header: "client-id"},
			RequestContext: events.APIGatewayProxyRequestContext{RequestID: "gateway-id"},
		})
		require.NoError(t, err)
		assert.Equal(t, "client-id", r.Header.Get(requestid.Header))
		assert.Equal(t, "/", r.URL.Path)
	})

	t.Run("invalid base64", func(t *testing.T) {
		t.Parallel()
		_, err := lambdaproxy.NewRequest(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod:      http.MethodPost,
			Body:            "not base64!",
			IsBase64Encoded: true,
		})
		assert.ErrorIs(t, err, lambdaproxy.ErrDecodeBody)
	})

	t.Run("missing method", func(t *testing.T) {
		t.Parallel()
		_, err := lambdaproxy.NewRequest(context.Background(), events.APIGatewayProxyRequest{Path: "/"})
		assert.ErrorIs(t, err, lambdaproxy.ErrInvalidEvent)
	})
}

func TestAdapter_Handle(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /echo", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("Set-Cookie", "a=1")
		w.Header().Add("Set-Cookie", "b=2")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	})
	mux.HandleFunc("GET /pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.3\x00\x01"))
	})
	mux.HandleFunc("GET /empty", func(w http.ResponseWriter, r *http.Request) {})

	adapter := lambdaproxy.New(mux)

	t.Run("textual response", func(t *testing.T) {
		t.Parallel()
		resp, err := adapter.Handle(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodPost,
			Path:       "/echo",
			Body:       `{"ok":true}`,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, `{"ok":true}`, resp.Body)
		assert.False(t, resp.IsBase64Encoded)
		assert.Equal(t, "application/json", resp.Headers["Content-Type"])
		assert.Equal(t, []string{"a=1", "b=2"}, resp.MultiValueHeaders["Set-Cookie"])
	})

	t.Run("binary response", func(t *testing.T) {
		t.Parallel()
		resp, err := adapter.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/pdf"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, resp.IsBase64Encoded)
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.3\x00\x01", string(decoded))
	})

	t.Run("no body", func(t *testing.T) {
		t.Parallel()
		resp, err := adapter.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/empty"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Body)
	})

	t.Run("bad event", func(t *testing.T) {
		t.Parallel()
		resp, err := adapter.Handle(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod:      http.MethodPost,
			Path:            "/echo",
			Body:            "%%%",
			IsBase64Encoded: true,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, resp.Body)
	})
}
