package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func setupEcho(acceptLanguage string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		write      func(echo.Context) error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"invalid body", InvalidRequestBody, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody},
		{"service unavailable", ServiceUnavailable, http.StatusServiceUnavailable, CodeServiceUnavailable, MsgServiceUnavailable},
		{"rate limited", TooManyRequests, http.StatusTooManyRequests, CodeRateLimited, MsgRateLimited},
		{"not found", NotFound, http.StatusNotFound, CodeNotFound, MsgNotFound},
		{"internal error", InternalServerError, http.StatusInternalServerError, CodeInternalError, MsgInternalError},
		{"not ready", NotReady, http.StatusServiceUnavailable, CodeServiceUnavailable, MsgStoreUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := setupEcho("")

			require.NoError(t, tt.write(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.Nil(t, body.Details)
		})
	}
}

func TestValidationError(t *testing.T) {
	c, rec := setupEcho("")

	details := map[string]string{
		"min_price": "min_price must be a non-negative number",
		"page":      "page must be at least 1",
	}
	require.NoError(t, ValidationError(c, details))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, CodeValidationError, body.Code)
	assert.Equal(t, MsgValidationFailed, body.Error)
	assert.Equal(t, details, body.Details)
}

func TestErrorBody_OmitsEmptyDetails(t *testing.T) {
	c, rec := setupEcho("")

	require.NoError(t, ServiceUnavailable(c))

	assert.NotContains(t, rec.Body.String(), "details")
}

func TestLocalizedErrors(t *testing.T) {
	tests := []struct {
		acceptLanguage string
		want           string
	}{
		{"", MsgValidationFailed},
		{"en-US,en;q=0.9", MsgValidationFailed},
		{"ar", "فشل التحقق من صحة الطلب"},
		{"ar-IQ,ar;q=0.9,en;q=0.8", "فشل التحقق من صحة الطلب"},
		{"fr-FR", MsgValidationFailed},
		{"en;q=0.5,ar;q=0.9", "فشل التحقق من صحة الطلب"},
		{"not a language header;;", MsgValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.acceptLanguage, func(t *testing.T) {
			c, rec := setupEcho(tt.acceptLanguage)

			require.NoError(t, ValidationError(c, map[string]string{"page": "page must be at least 1"}))

			body := decodeError(t, rec)
			assert.Equal(t, tt.want, body.Error)
			assert.Equal(t, CodeValidationError, body.Code, "codes are never translated")
		})
	}
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, language.English, Negotiate(""))
	assert.Equal(t, language.Arabic, Negotiate("ar-SA"))
	assert.Equal(t, language.English, Negotiate("de"))
}

func TestTranslate_EveryMessageHasArabic(t *testing.T) {
	for _, msg := range []string{
		MsgInvalidRequestBody, MsgValidationFailed, MsgServiceUnavailable,
		MsgRateLimited, MsgNotFound, MsgInternalError, MsgStoreUnreachable,
	} {
		assert.Equal(t, msg, Translate(language.English, msg))
		assert.NotEqual(t, msg, Translate(language.Arabic, msg), "missing Arabic text for %q", msg)
	}
	assert.Equal(t, "untranslated", Translate(language.Arabic, "untranslated"))
}

func TestHealthAndReady(t *testing.T) {
	c, rec := setupEcho("")
	require.NoError(t, Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	c, rec = setupEcho("")
	require.NoError(t, Ready(c, "sqlite"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","store":"sqlite"}`, rec.Body.String())
}

func TestSearchResults(t *testing.T) {
	c, rec := setupEcho("")

	results := struct {
		Items []string `json:"items"`
		Total int      `json:"total"`
	}{
		Items: []string{"a", "b", "c"},
		Total: 3,
	}

	require.NoError(t, SearchResults(c, results))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":["a","b","c"],"total":3}`, rec.Body.String())
}
