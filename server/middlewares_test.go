package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Daskott/folio/i18n"
	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddlewareRequestID(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, "GET", "/health", nil)
	assert.Len(t, rec.Header().Get(REQUEST_ID_HEADER), 36)

	rec = doRequest(handler, "GET", "/health", nil, withHeader(REQUEST_ID_HEADER, "req-123"))
	assert.Equal(t, "req-123", rec.Header().Get(REQUEST_ID_HEADER))
}

func TestLocaleMiddleware(t *testing.T) {
	s, _ := newTestServer(t)

	var locale string
	handler := s.localeMiddleware(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		locale = s.catalogFrom(r).Locale()
	}))

	testCases := []struct {
		cookie         string
		acceptLanguage string
		want           string
	}{
		{"", "", i18n.French},
		{"", "en-US,fr;q=0.5", i18n.English},
		{"", "de,en;q=0.9", i18n.French},
		{"en", "fr", i18n.English},
		{"xx", "en", i18n.English},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", "/", nil)
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: tc.cookie})
		}
		req.Header.Set("Accept-Language", tc.acceptLanguage)

		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tc.want, locale, "%+v", tc)
	}
}

func TestResponseWriterWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &ResponseWriterWithStatus{ResponseWriter: rec, Status: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusTeapot, rw.Status)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
