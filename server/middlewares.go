package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Daskott/folio/colors"
	"github.com/Daskott/folio/i18n"
	"github.com/google/uuid"
)

const (
	catalogContextKey    = RequestContextKey("catalog")
	decodedJWTContextKey = RequestContextKey("decodedJWT")
	requestIDContextKey  = RequestContextKey("requestID")

	REQUEST_ID_HEADER = "X-Request-ID"
)

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *folioServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         http.StatusOK,
		}

		requestID := r.Header.Get(REQUEST_ID_HEADER)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(REQUEST_ID_HEADER, requestID)

		defer func() {
			logg.Info(
				r.Method, " ",
				r.RequestURI, " ",
				colors.HTTPStatus(responseWriter.Status), " ",
				colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))), " ",
				requestID)

			s.metrics.RecordRequest(r.Method, strconv.Itoa(responseWriter.Status))
		}()

		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		next.ServeHTTP(responseWriter, r.WithContext(ctx))
	})
}

// localeMiddleware adds the catalog for the negotiated locale to the request context
func (s *folioServer) localeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookieLocale := ""
		if cookie, err := r.Cookie(i18n.CookieName); err == nil {
			cookieLocale = cookie.Value
		}

		locale := i18n.Negotiate(cookieLocale, r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", locale)
		w.Header().Add("Vary", "Accept-Language, Cookie")

		ctx := context.WithValue(r.Context(), catalogContextKey, s.bundle.Catalog(locale))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (s *folioServer) adminRouteMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decodedJWT := s.decodeAndVerifyAuthHeader(r.Header.Get("Authorization"))
		if decodedJWT.ErrorMsg != "" {
			writeResponse(w, ResponsePayload{Errors: []string{decodedJWT.ErrorMsg}}, http.StatusUnauthorized)
			return
		}

		if !decodedJWT.Claims.IsAdmin {
			writeResponse(w, ResponsePayload{Errors: []string{s.catalogFrom(r).Text("Errors.forbidden")}}, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), decodedJWTContextKey, decodedJWT)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// catalogFrom returns the request's catalog, or the default locale's when
// the locale middleware did not run.
func (s *folioServer) catalogFrom(r *http.Request) *i18n.Catalog {
	if catalog, ok := r.Context().Value(catalogContextKey).(*i18n.Catalog); ok {
		return catalog
	}

	return s.bundle.Catalog(i18n.DefaultLocale)
}
