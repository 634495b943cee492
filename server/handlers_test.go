package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Daskott/folio/server/auth"
	"github.com/Daskott/folio/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	testCases := []struct {
		name         string
		opts         []requestOption
		wantLang     string
		wantContains string
	}{
		{"default locale", nil, "fr", "Envoyer le message"},
		{"accept language", []requestOption{withHeader("Accept-Language", "en-GB,en;q=0.8")}, "en", "Send Message"},
		{"unsupported accept language", []requestOption{withHeader("Accept-Language", "de-DE")}, "fr", "Envoyer le message"},
		{"cookie wins", []requestOption{withHeader("Accept-Language", "fr"), withHeader("Cookie", "locale=en")}, "en", "Send Message"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, handler := newTestServer(t)

			rec := doRequest(handler, "GET", "/", nil, tc.opts...)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, tc.wantLang, rec.Header().Get("Content-Language"))
			assert.Contains(t, rec.Body.String(), fmt.Sprintf(`<html lang="%s">`, tc.wantLang))
			assert.Contains(t, rec.Body.String(), tc.wantContains)
			assert.Contains(t, rec.Body.String(), fmt.Sprint(time.Now().Year()))
		})
	}
}

func TestSwitchLocale(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, "POST", "/locale", strings.NewReader(url.Values{"locale": {"en"}}.Encode()),
		withHeader("Content-Type", "application/x-www-form-urlencoded"),
		withHeader("Referer", "https://elsewhere.example/some/page?x=1"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/some/page?x=1", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "locale", cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, 31536000, cookies[0].MaxAge)

	rec = doRequest(handler, "POST", "/locale", strings.NewReader("locale=de"),
		withHeader("Content-Type", "application/x-www-form-urlencoded"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSameSiteRedirect(t *testing.T) {
	testCases := map[string]string{
		"":                          "/",
		"https://example.com":       "/",
		"https://example.com/about": "/about",
		"/gallery?page=2":           "/gallery?page=2",
		"//evil.example/path":       "/path",
		"https://x.example//evil":   "/",
		"::not a url":               "/",
	}

	for referer, want := range testCases {
		assert.Equal(t, want, sameSiteRedirect(referer), referer)
	}
}

func TestAnimations(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, "GET", "/api/animations?section=contact", nil)
	payload := decodePayload(t, rec)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Len(t, payload.Data, 4)

	rec = doRequest(handler, "GET", "/api/animations?section=unknown", nil)
	payload = decodePayload(t, rec)
	assert.Len(t, payload.Data, 0)
}

func TestMessages(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, "GET", "/api/messages", nil, withHeader("Accept-Language", "en"))
	payload := decodePayload(t, rec)

	data := payload.Data.(map[string]interface{})
	assert.Equal(t, "en", data["locale"])
	assert.Equal(t, "Send Message", data["messages"].(map[string]interface{})["Contact.submit"])
}

func TestSiteContent(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, "GET", "/api/content", nil)
	payload := decodePayload(t, rec)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Antsa Ratolojanahary", payload.Data.(map[string]interface{})["owner"])
}

func TestHealthJwksAndMetrics(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodePayload(t, rec).Success)

	rec = doRequest(handler, "GET", "/jwks", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kid":"folio-key-id"`)

	postContact(t, handler, map[string]string{"name": "", "email": "", "message": ""})
	rec = doRequest(handler, "GET", "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `folio_contact_submissions_total{outcome="invalid"} 1`)
}

func TestStaticAndNotFound(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, "GET", "/static/app.js", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/contact")

	rec = doRequest(handler, "GET", "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, []string{"Introuvable."}, decodePayload(t, rec).Errors)
}

func TestNotFoundGoesThroughMiddlewares(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, "GET", "/nope", nil, withHeader("Accept-Language", "en"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	assert.NotEmpty(t, rec.Header().Get(REQUEST_ID_HEADER))
	assert.Equal(t, []string{"Not found."}, decodePayload(t, rec).Errors)

	rec = doRequest(handler, "GET", "/metrics", nil)
	assert.Contains(t, rec.Body.String(), `folio_http_requests_total{code="404",method="GET"} 1`)
}

func logIn(t *testing.T, handler http.Handler) string {
	rec := doRequest(handler, "POST", "/api/login", jsonBody(t, map[string]string{
		"email": "Owner@Example.com", "password": testOwnerPassword,
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodePayload(t, rec)
	return payload.Data.(map[string]interface{})["token"].(string)
}

func TestLogIn(t *testing.T) {
	s, handler := newTestServer(t)

	token := logIn(t, handler)
	claims, err := auth.DecodeJWT(token, s.keyPair)
	require.Nil(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, testOwnerEmail, claims.Subject)

	for _, creds := range []map[string]string{
		{"email": testOwnerEmail, "password": "wrong"},
		{"email": "someone@example.com", "password": testOwnerPassword},
		{},
	} {
		rec := doRequest(handler, "POST", "/api/login", jsonBody(t, creds), withHeader("Accept-Language", "en"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, []string{"Invalid email or password."}, decodePayload(t, rec).Errors)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s, handler := newTestServer(t)

	rec := doRequest(handler, "GET", "/api/submissions", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(handler, "GET", "/api/submissions", nil, withHeader("Authorization", "Bearer garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A token for someone other than the owner
	claims := auth.NewOwnerClaims("Mallory", "mallory@example.com", time.Now())
	token, err := auth.EncodeJWT(claims, s.keyPair)
	require.Nil(t, err)
	rec = doRequest(handler, "GET", "/api/submissions", nil, withHeader("Authorization", "Bearer "+token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A non admin token for the owner
	claims = auth.NewOwnerClaims("Antsa", testOwnerEmail, time.Now())
	claims.IsAdmin = false
	token, err = auth.EncodeJWT(claims, s.keyPair)
	require.Nil(t, err)
	rec = doRequest(handler, "GET", "/api/submissions", nil, withHeader("Authorization", "Bearer "+token))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestManageSubmissions(t *testing.T) {
	_, handler := newTestServer(t)
	token := logIn(t, handler)
	authHeader := withHeader("Authorization", "Bearer "+token)

	for _, name := range []string{"Ada", "Grace"} {
		require.Nil(t, models.CreateSubmission(&models.ContactSubmission{Name: name, Email: "x@example.com", Message: "Hi"}))
	}

	rec := doRequest(handler, "GET", "/api/submissions", nil, authHeader)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodePayload(t, rec).Data.(map[string]interface{})
	submissions := data["submissions"].([]interface{})
	require.Len(t, submissions, 2)
	assert.Equal(t, "Grace", submissions[0].(map[string]interface{})["name"], "newest first")
	id := int(submissions[0].(map[string]interface{})["id"].(float64))

	rec = doRequest(handler, "GET", "/api/submissions?page=zero", nil, authHeader)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(handler, "GET", fmt.Sprintf("/api/submissions/%d", id), nil, authHeader)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(handler, "PUT", fmt.Sprintf("/api/submissions/%d", id), jsonBody(t, map[string]bool{"read": true}), authHeader)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(handler, "PUT", fmt.Sprintf("/api/submissions/%d", id), jsonBody(t, map[string]string{}), authHeader)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "read is required")

	rec = doRequest(handler, "GET", "/api/submissions?unread=true", nil, authHeader)
	data = decodePayload(t, rec).Data.(map[string]interface{})
	assert.Len(t, data["submissions"], 1)

	rec = doRequest(handler, "DELETE", fmt.Sprintf("/api/submissions/%d", id), nil, authHeader)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(handler, "DELETE", fmt.Sprintf("/api/submissions/%d", id), nil, authHeader)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(handler, "PUT", "/api/submissions/9999", jsonBody(t, map[string]bool{"read": true}), authHeader)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobRoutes(t *testing.T) {
	_, handler := newTestServer(t)
	token := logIn(t, handler)
	authHeader := withHeader("Authorization", "Bearer "+token)

	status, _, _ := postContact(t, handler, map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hi"})
	require.Equal(t, http.StatusCreated, status)

	rec := doRequest(handler, "GET", "/api/jobs?status=enqueued", nil, authHeader)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodePayload(t, rec).Data.(map[string]interface{})
	assert.Len(t, data["jobs"], 1)

	rec = doRequest(handler, "GET", "/api/jobs?status=bogus", nil, authHeader)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(handler, "GET", "/api/jobs/stats", nil, authHeader)
	assert.Equal(t, http.StatusOK, rec.Code)
	stats := decodePayload(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(1), stats["enqueued_job_count"])
}
