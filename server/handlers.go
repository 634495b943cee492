package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Daskott/folio/i18n"
	"github.com/Daskott/folio/server/auth"
	"github.com/Daskott/folio/server/auth/key"
	"github.com/Daskott/folio/server/models"
	"github.com/Daskott/folio/site"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const LOCALE_COOKIE_MAX_AGE = 365 * 24 * 60 * 60

func (s *folioServer) index(rw http.ResponseWriter, r *http.Request) {
	s.renderPage(rw, r, nil, nil, http.StatusOK)
}

func (s *folioServer) health(rw http.ResponseWriter, r *http.Request) {
	if err := models.Ping(); err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusServiceUnavailable)
		return
	}

	writeResponse(rw, ResponsePayload{Success: true}, http.StatusOK)
}

func (s *folioServer) notFound(rw http.ResponseWriter, r *http.Request) {
	writeResponse(rw, ResponsePayload{Errors: []string{s.catalogFrom(r).Text("Errors.notFound")}}, http.StatusNotFound)
}

func (s *folioServer) jwks(rw http.ResponseWriter, r *http.Request) {
	keyPairJWK, err := s.keyPair.JWK()
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	writeResponse(rw, key.ExportJWKAsJWKS(keyPairJWK), http.StatusOK)
}

// switchLocale stores the chosen locale in a cookie and sends the client back
// to the page it came from.
func (s *folioServer) switchLocale(rw http.ResponseWriter, r *http.Request) {
	locale := r.FormValue("locale")
	if !i18n.IsSupported(locale) {
		writeResponse(rw, ResponsePayload{Errors: []string{"unsupported locale: " + locale}}, http.StatusBadRequest)
		return
	}

	http.SetCookie(rw, &http.Cookie{
		Name:     i18n.CookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   LOCALE_COOKIE_MAX_AGE,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(rw, r, sameSiteRedirect(r.Referer()), http.StatusSeeOther)
}

// sameSiteRedirect keeps only the path & query of 'referer', so the redirect
// never leaves the site.
func sameSiteRedirect(referer string) string {
	refererURL, err := url.Parse(referer)
	if err != nil || refererURL.Path == "" || !strings.HasPrefix(refererURL.Path, "/") {
		return "/"
	}

	target := refererURL.EscapedPath()
	if refererURL.RawQuery != "" {
		target += "?" + refererURL.RawQuery
	}

	// A leading '//' would be read as a host
	if strings.HasPrefix(target, "//") {
		return "/"
	}

	return target
}

func (s *folioServer) animations(rw http.ResponseWriter, r *http.Request) {
	writeResponse(rw, ResponsePayload{Success: true, Data: site.AnimationsFor(r.URL.Query().Get("section"))}, http.StatusOK)
}

func (s *folioServer) messages(rw http.ResponseWriter, r *http.Request) {
	catalog := s.catalogFrom(r)
	writeResponse(rw, ResponsePayload{
		Success: true,
		Data: map[string]interface{}{
			"locale":   catalog.Locale(),
			"messages": catalog.Messages(),
		},
	}, http.StatusOK)
}

func (s *folioServer) siteContent(rw http.ResponseWriter, r *http.Request) {
	writeResponse(rw, ResponsePayload{Success: true, Data: s.content}, http.StatusOK)
}

func (s *folioServer) logIn(rw http.ResponseWriter, r *http.Request) {
	data := make(map[string]string)
	decoder := json.NewDecoder(r.Body)
	decoder.Decode(&data)

	unauthorized := ResponsePayload{Errors: []string{s.catalogFrom(r).Text("Errors.unauthorized")}}
	if !strings.EqualFold(strings.TrimSpace(data["email"]), s.owner.Email) {
		writeResponse(rw, unauthorized, http.StatusUnauthorized)
		return
	}

	if !auth.CheckPasswordHash(data["password"], s.owner.PasswordHash) {
		writeResponse(rw, unauthorized, http.StatusUnauthorized)
		return
	}

	token, err := auth.EncodeJWT(auth.NewOwnerClaims(s.owner.Name, s.owner.Email, time.Now()), s.keyPair)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	writeResponse(rw, ResponsePayload{Success: true, Data: map[string]string{"token": token}}, http.StatusOK)
}

func (s *folioServer) findSubmissions(rw http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	submissions, paging, err := models.FetchSubmissions(page, unreadOnly)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	writeResponse(rw, ResponsePayload{
		Success: true,
		Data:    map[string]interface{}{"submissions": submissions, "paging": paging},
	}, http.StatusOK)
}

func (s *folioServer) findSubmission(rw http.ResponseWriter, r *http.Request) {
	submission, err := models.FindSubmission(idParam(r))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.notFound(rw, r)
		return
	}

	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	writeResponse(rw, ResponsePayload{Success: true, Data: submission}, http.StatusOK)
}

func (s *folioServer) updateSubmission(rw http.ResponseWriter, r *http.Request) {
	data := struct {
		Read *bool `json:"read" validate:"required"`
	}{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	err = validate.Struct(data)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: strings.Split(err.Error(), "\n")}, http.StatusBadRequest)
		return
	}

	submission, err := models.FindSubmission(idParam(r))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.notFound(rw, r)
		return
	}

	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	err = submission.Update(map[string]interface{}{"read": *data.Read})
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	writeResponse(rw, ResponsePayload{Success: true}, http.StatusOK)
}

func (s *folioServer) deleteSubmission(rw http.ResponseWriter, r *http.Request) {
	err := models.DeleteSubmission(idParam(r))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.notFound(rw, r)
		return
	}

	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	writeResponse(rw, ResponsePayload{Success: true}, http.StatusOK)
}

func (s *folioServer) findJobs(rw http.ResponseWriter, r *http.Request) {
	var jobs []models.Job
	var paging *models.Paging

	page, err := pageParam(r)
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !models.JobStatusNameMap[status] {
		writeResponse(rw, ResponsePayload{Errors: []string{"invalid job status: " + status}}, http.StatusBadRequest)
		return
	}

	if status != "" {
		jobs, paging, err = models.FetchJobsByStatus(status, page)
	} else {
		jobs, paging, err = models.FetchJobs(page)
	}

	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	writeResponse(rw, ResponsePayload{
		Success: true,
		Data:    map[string]interface{}{"jobs": jobs, "paging": paging},
	}, http.StatusOK)
}

func (s *folioServer) jobStats(rw http.ResponseWriter, r *http.Request) {
	stats, err := models.CurrentJobsStats()
	if err != nil {
		writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	writeResponse(rw, ResponsePayload{Success: true, Data: stats}, http.StatusOK)
}

// idParam returns the {id} route variable, which the router only matches on digits
func idParam(r *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id)
}

func pageParam(r *http.Request) (int, error) {
	value := r.URL.Query().Get("page")
	if value == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 0, errors.New("page must be a positive integer")
	}

	return page, nil
}
