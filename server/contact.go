package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/Daskott/folio/contactform"
	"github.com/Daskott/folio/i18n"
	"github.com/Daskott/folio/server/metrics"
	"github.com/Daskott/folio/server/models"
	"github.com/go-playground/validator"
)

const MAX_CONTACT_BODY_BYTES = 64 << 10

type contactRequest struct {
	Name    string `json:"name" validate:"notblank,max=200"`
	Email   string `json:"email" validate:"notblank,contact_email,max=320"`
	Message string `json:"message" validate:"notblank,max=5000"`
}

// processSubmission rate limits, validates & stores a submission, then enqueues
// the owner notification. A rejection carries the localized reason, and the
// per field messages when validation failed.
func (s *folioServer) processSubmission(r *http.Request, catalog *i18n.Catalog, submission contactform.Submission) (map[string]string, *contactform.SubmissionError) {
	allowed, retryAfter := s.limiter.Allow(s.proxies.ClientIP(r))
	if !allowed {
		s.metrics.RecordSubmission(metrics.RATE_LIMITED)
		return nil, &contactform.SubmissionError{
			StatusCode: http.StatusTooManyRequests,
			Reason:     catalog.Text("Contact.rateLimited"),
			Err:        fmt.Errorf("retry after %v", retryAfter),
		}
	}

	req := contactRequest{Name: submission.Name, Email: submission.Email, Message: submission.Message}
	err := validate.Struct(req)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		s.metrics.RecordSubmission(metrics.INVALID)
		fieldErrors, first := contactFieldErrors(validationErrs, catalog)
		return fieldErrors, &contactform.SubmissionError{StatusCode: http.StatusBadRequest, Reason: first}
	}

	if err != nil {
		s.metrics.RecordSubmission(metrics.ERROR)
		return nil, &contactform.SubmissionError{
			StatusCode: http.StatusInternalServerError,
			Reason:     catalog.Text(contactform.KeyGenericError),
			Err:        err,
		}
	}

	record := &models.ContactSubmission{
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		Locale:     catalog.Locale(),
		RemoteAddr: s.proxies.ClientIP(r),
		UserAgent:  r.UserAgent(),
	}

	err = models.CreateSubmission(record)
	if err != nil {
		s.metrics.RecordSubmission(metrics.ERROR)
		return nil, &contactform.SubmissionError{
			StatusCode: http.StatusInternalServerError,
			Reason:     catalog.Text(contactform.KeyGenericError),
			Err:        err,
		}
	}
	s.metrics.RecordSubmission(metrics.ACCEPTED)

	// The message is stored, so a failed enqueue is not the sender's problem
	if err := s.notifier.Enqueue(record.ID); err != nil {
		logg.Errorf("unable to enqueue owner notification for submission %v: %v", record.ID, err)
	}

	return nil, nil
}

// createSubmission handles POST /api/contact
func (s *folioServer) createSubmission(rw http.ResponseWriter, r *http.Request) {
	catalog := s.catalogFrom(r)

	submission := contactform.Submission{}
	decoder := json.NewDecoder(http.MaxBytesReader(rw, r.Body, MAX_CONTACT_BODY_BYTES))

	err := decoder.Decode(&submission)
	if err != nil {
		s.metrics.RecordSubmission(metrics.INVALID)
		writeResponse(rw, ContactResponse{Error: catalog.Text("Contact.invalidPayload")}, http.StatusBadRequest)
		return
	}

	fieldErrors, rejection := s.processSubmission(r, catalog, submission)
	if rejection != nil {
		if rejection.StatusCode == http.StatusTooManyRequests {
			rw.Header().Set("Retry-After", fmt.Sprint(retryAfterSeconds(s.limiter.RetryAfter(s.proxies.ClientIP(r)))))
		}
		if rejection.Err != nil {
			logg.Info(rejection.Err)
		}

		writeResponse(rw, ContactResponse{Error: rejection.Reason, Errors: fieldErrors}, rejection.StatusCode)
		return
	}

	writeResponse(rw, ContactResponse{Success: true}, http.StatusCreated)
}

// submitContactForm handles the form post made when the page script is not running.
// The form is re-rendered with its outcome.
func (s *folioServer) submitContactForm(rw http.ResponseWriter, r *http.Request) {
	catalog := s.catalogFrom(r)

	err := r.ParseForm()
	if err != nil {
		s.renderPage(rw, r, nil, nil, http.StatusBadRequest)
		return
	}

	var serverFieldErrors map[string]string
	form := contactform.New(contactform.SubmitterFunc(func(_ context.Context, submission contactform.Submission) error {
		fieldErrors, rejection := s.processSubmission(r, catalog, submission)
		if rejection != nil {
			serverFieldErrors = fieldErrors
			return rejection
		}
		return nil
	}), catalog)

	form.Fill(contactform.Submission{
		Name:    r.PostFormValue(string(contactform.FieldName)),
		Email:   r.PostFormValue(string(contactform.FieldEmail)),
		Message: r.PostFormValue(string(contactform.FieldMessage)),
	})

	status := http.StatusOK
	err = form.Submit(r.Context())

	var validationErrs contactform.ValidationErrors
	var rejection *contactform.SubmissionError
	switch {
	case errors.As(err, &validationErrs):
		s.metrics.RecordSubmission(metrics.INVALID)
		status = http.StatusBadRequest
	case errors.As(err, &rejection) && rejection.StatusCode != 0:
		status = rejection.StatusCode
	case err != nil:
		status = http.StatusInternalServerError
	}

	s.renderPage(rw, r, form, serverFieldErrors, status)
}

// newContactForm handles "send another message"
func (s *folioServer) newContactForm(rw http.ResponseWriter, r *http.Request) {
	http.Redirect(rw, r, "/#contact", http.StatusSeeOther)
}

func retryAfterSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
