// Package contactform implements the contact form submission flow: field
// validation, a single in-flight submission and the
// idle/submitting/succeeded/failed state machine.
package contactform

import (
	"context"
	"errors"
	"sync"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Translator supplies every user visible string by key.
type Translator interface {
	Text(key string, params ...string) string
}

// Submission is the payload sent to the contact endpoint.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s Submission) Get(field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldMessage:
		return s.Message
	}
	return ""
}

func (s *Submission) Set(field Field, value string) {
	switch field {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldMessage:
		s.Message = value
	}
}

// Submitter delivers a submission. A failure should be returned as a
// *SubmissionError so a server provided reason reaches the user.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// Form holds the state of one contact form instance.
type Form struct {
	mu          sync.Mutex
	values      Submission
	status      Status
	errorText   string
	fieldErrors map[Field]string

	submitter Submitter
	text      Translator
}

func New(submitter Submitter, text Translator) *Form {
	return &Form{
		status:      StatusIdle,
		fieldErrors: map[Field]string{},
		submitter:   submitter,
		text:        text,
	}
}

// Set updates a field value. Any inline error on that field is kept until
// the next submit attempt re-validates it.
func (f *Form) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values.Set(field, value)
}

// Fill sets all three fields at once.
func (f *Form) Fill(s Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = s
}

func (f *Form) Values() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.status
}

// ErrorText is the form level message, only set while status is failed.
func (f *Form) ErrorText() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.errorText
}

// FieldErrors returns a copy of the inline validation messages.
func (f *Form) FieldErrors() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[Field]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.status == StatusIdle || f.status == StatusFailed
}

// Submit validates the current values and, when they are valid, sends them
// through the submitter. It returns ValidationErrors when validation fails,
// ErrSubmitInFlight when another submission is pending, ErrAlreadySent when
// the form shows its confirmation, or the submitter's error.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.status {
	case StatusSubmitting:
		f.mu.Unlock()
		return ErrSubmitInFlight
	case StatusSucceeded:
		f.mu.Unlock()
		return ErrAlreadySent
	}

	errs := Validate(f.values, f.text)
	f.fieldErrors = errs.ByField()
	if errs != nil {
		f.mu.Unlock()
		return errs
	}

	f.status = StatusSubmitting
	f.errorText = ""
	payload := f.values
	f.mu.Unlock()

	err := f.submitter.Submit(ctx, payload)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.status = StatusFailed
		f.errorText = f.failureMessage(err)
		return err
	}

	f.status = StatusSucceeded
	f.values = Submission{}
	return nil
}

// Reset is the "send another message" action: it returns the form to idle
// with empty fields. It does nothing while a submission is in flight.
func (f *Form) Reset() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSubmitting {
		return false
	}

	f.status = StatusIdle
	f.errorText = ""
	f.values = Submission{}
	f.fieldErrors = map[Field]string{}
	return true
}

func (f *Form) failureMessage(err error) string {
	var subErr *SubmissionError
	if errors.As(err, &subErr) && subErr.Reason != "" {
		return subErr.Reason
	}
	return lookup(f.text, KeyGenericError)
}
