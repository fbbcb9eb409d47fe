package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-registration/internal/application"
	"github.com/oksasatya/go-user-registration/internal/metrics"
	"github.com/oksasatya/go-user-registration/pkg/view"
)

type failingRenderer struct{}

func (failingRenderer) Render(string, map[string]any) ([]byte, error) {
	return nil, errors.New("template exploded")
}

func newTestHandler(t *testing.T, views view.Renderer) (*RegistrationHandler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if views == nil {
		r, err := view.NewDefault()
		require.NoError(t, err)
		views = r
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := NewRegistrationHandler(
		application.NewRegistrationService(application.RegistrationRules()),
		views,
		metrics.New(prometheus.NewRegistry()),
		logger,
	)
	r := gin.New()
	r.GET("/register", h.ShowForm)
	r.POST("/register", h.Submit)
	return h, r
}

func postForm(r http.Handler, values url.Values, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func form(name, password, confirm string) url.Values {
	return url.Values{"name": {name}, "password": {password}, "confirmPassword": {confirm}}
}

func TestShowFormRendersEmptyForm(t *testing.T) {
	h, r := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/register", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `name="confirmPassword"`)
	assert.NotContains(t, rec.Body.String(), `class="error"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Metrics.FormViews))
}

func TestSubmitMatchingPasswordsShowsSuccess(t *testing.T) {
	h, r := newTestHandler(t, nil)

	rec := postForm(r, form("Ann", "x1", "x1"), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome, Ann!")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Metrics.Submissions.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestSubmitMismatchRerendersFormWithInlineError(t *testing.T) {
	h, r := newTestHandler(t, nil)

	rec := postForm(r, form("Ann", "x1", "x2"), "text/html")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-field="confirmPassword">Passwords do not match</p>`)
	assert.Contains(t, body, `value="Ann"`)
	assert.NotContains(t, body, "Welcome")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Metrics.FieldErrors.WithLabelValues("confirmPassword", application.MismatchTag)))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Metrics.Submissions.WithLabelValues(metrics.OutcomeInvalid)))
}

func TestSubmitBlankNameRerendersForm(t *testing.T) {
	_, r := newTestHandler(t, nil)

	rec := postForm(r, form("", "x1", "x1"), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-field="name">must not be blank</p>`)
}

func TestSubmitEmptyBodyIsNotAFault(t *testing.T) {
	_, r := newTestHandler(t, nil)

	rec := postForm(r, url.Values{}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-field="name"`)
	assert.Contains(t, body, `data-field="password"`)
	assert.Contains(t, body, `data-field="confirmPassword"`)
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    map[string]any  `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSubmitJSONNegotiation(t *testing.T) {
	_, r := newTestHandler(t, nil)

	t.Run("mismatch", func(t *testing.T) {
		rec := postForm(r, form("Ann", "x1", "x2"), "application/json")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode(t, rec)
		assert.False(t, env.Success)
		assert.JSONEq(t, `[{"field":"confirmPassword","tag":"mismatch","message":"Passwords do not match"}]`, string(env.Error))
	})

	t.Run("success", func(t *testing.T) {
		rec := postForm(r, form("Ann", "x1", "x1"), "application/json")
		require.Equal(t, http.StatusOK, rec.Code)

		env := decode(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, map[string]any{"view": "success", "name": "Ann"}, env.Data)
	})
}

func TestSubmitJSONBody(t *testing.T) {
	_, r := newTestHandler(t, nil)

	body := `{"name":"Ann","password":"x1","confirmPassword":"x1"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ann", decode(t, rec).Data["name"])
}

func TestSubmitMalformedJSONIsBadRequest(t *testing.T) {
	_, r := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Error), "payload")
}

func TestShowFormJSON(t *testing.T) {
	_, r := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/register", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "register", env.Data["view"])
	assert.Equal(t, map[string]any{"name": ""}, env.Data["user"])
}

func TestRenderFailureIsServerError(t *testing.T) {
	h, r := newTestHandler(t, failingRenderer{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/register", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Metrics.RenderFailures))
}

func TestBindDetails(t *testing.T) {
	assert.Equal(t, map[string]string{"payload": "invalid json"}, bindDetails(&json.SyntaxError{}))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, bindDetails(errors.New("eof")))
}
