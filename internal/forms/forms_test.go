package forms_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eyetechsecurities/webforms/internal/forms"
	"github.com/eyetechsecurities/webforms/pkg/email"
	"github.com/eyetechsecurities/webforms/pkg/email/templates"
	"github.com/eyetechsecurities/webforms/pkg/file"
	"github.com/eyetechsecurities/webforms/pkg/invoice"
	"github.com/eyetechsecurities/webforms/pkg/ratelimiter"
)

const staffEmail = "staff@eyetechsecurities.in"

var (
	fixedNow       = time.UnixMilli(1700000000000).UTC()
	errProviderBad = errors.New("provider: 502 bad gateway")
)

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// sent returns the params of the only SendEmail call.
func (m *MockEmailSender) sent(t *testing.T) email.SendEmailParams {
	t.Helper()
	require.Len(t, m.Calls, 1)
	params, ok := m.Calls[0].Arguments.Get(1).(email.SendEmailParams)
	require.True(t, ok)
	return params
}

func newSender(err error) *MockEmailSender {
	m := &MockEmailSender{}
	m.On("SendEmail", mock.Anything, mock.AnythingOfType("email.SendEmailParams")).Return(err)
	return m
}

type failingStorage struct {
	file.Storage
}

func (failingStorage) Put(context.Context, string, []byte, string) (*file.File, error) {
	return nil, errors.New("s3: access denied")
}

type failingRenderer struct{}

func (failingRenderer) Render(invoice.Invoice) ([]byte, error) {
	return nil, invoice.ErrRenderFailed
}

type env struct {
	sender  *MockEmailSender
	storage *file.LocalStorage
	dir     string
	router  http.Handler
}

type envOption func(*envConfig)

type envConfig struct {
	cfg      forms.Config
	sendErr  error
	storage  file.Storage
	invoices forms.InvoiceRenderer
	limiter  ratelimiter.Limiter
}

func withConfig(mutate func(*forms.Config)) envOption {
	return func(c *envConfig) { mutate(&c.cfg) }
}

func withSendError(err error) envOption {
	return func(c *envConfig) { c.sendErr = err }
}

func withStorage(s file.Storage) envOption {
	return func(c *envConfig) { c.storage = s }
}

func withInvoices(r forms.InvoiceRenderer) envOption {
	return func(c *envConfig) { c.invoices = r }
}

// withBurst throttles each client to burst submissions per hour.
func withBurst(t *testing.T, burst int) envOption {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: burst, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)
	return func(c *envConfig) { c.limiter = b }
}

func newEnv(t *testing.T, opts ...envOption) *env {
	t.Helper()

	dir := t.TempDir()
	local, err := file.NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	cfg := forms.DefaultConfig()
	cfg.StaffEmail = staffEmail
	ec := envConfig{
		cfg:     cfg,
		storage: local,
		invoices: invoice.NewRenderer(invoice.Config{
			Name:         "EyeTech Securities",
			AddressLine1: "Medavakkam Main Road",
			AddressLine2: "Chennai 600117",
			Phone:        "+91-9962835944",
			Email:        "info@eyetechsecurities.in",
		}.Business(), invoice.WithoutCompression()),
	}
	for _, opt := range opts {
		opt(&ec)
	}

	sender := newSender(ec.sendErr)
	svc := forms.NewService(ec.cfg, sender, ec.storage, ec.invoices,
		templates.NewRenderer(templates.Config{
			ProductName: "EyeTech Securities",
			ProductLink: "https://eyetechsecurities.in",
		}),
		forms.WithClock(func() time.Time { return fixedNow }),
		forms.WithLimiter(ec.limiter),
	)

	return &env{
		sender:  sender,
		storage: local,
		dir:     dir,
		router: forms.Router(forms.RouterOptions{
			Forms:       svc,
			Uploads:     local.Handler(),
			UploadsPath: local.BaseURL(),
		}),
	}
}

func (e *env) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

func jsonRequest(t *testing.T, path string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

type upload struct {
	field, filename string
	data            []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...upload) (body []byte, contentType string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes(), w.FormDataContentType()
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	body, contentType := multipartBody(t, fields, files...)
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	return r
}

func formRequest(path string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Message
}
