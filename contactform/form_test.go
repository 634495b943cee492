package contactform

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validInput = Submission{Name: "Jane", Email: "jane@example.com", Message: "Hello"}

type countingSubmitter struct {
	calls int32
	err   error
}

func (cs *countingSubmitter) Submit(ctx context.Context, s Submission) error {
	atomic.AddInt32(&cs.calls, 1)
	return cs.err
}

func (cs *countingSubmitter) Calls() int {
	return int(atomic.LoadInt32(&cs.calls))
}

func TestNewFormIsIdle(t *testing.T) {
	form := New(&countingSubmitter{}, testText)

	assert.Equal(t, StatusIdle, form.Status())
	assert.True(t, form.CanSubmit())
	assert.Empty(t, form.ErrorText())
	assert.Equal(t, Submission{}, form.Values())
}

func TestSubmitBlockedByValidation(t *testing.T) {
	cases := []struct {
		description string
		input       Submission
		field       Field
	}{
		{"empty name", Submission{Email: "jane@example.com", Message: "Hello"}, FieldName},
		{"blank name", Submission{Name: " \t", Email: "jane@example.com", Message: "Hello"}, FieldName},
		{"empty email", Submission{Name: "Jane", Message: "Hello"}, FieldEmail},
		{"blank email", Submission{Name: "Jane", Email: "   ", Message: "Hello"}, FieldEmail},
		{"malformed email", Submission{Name: "Jane", Email: "@b.com", Message: "Hello"}, FieldEmail},
		{"empty message", Submission{Name: "Jane", Email: "jane@example.com"}, FieldMessage},
		{"blank message", Submission{Name: "Jane", Email: "jane@example.com", Message: "\n"}, FieldMessage},
	}

	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			submitter := &countingSubmitter{}
			form := New(submitter, testText)
			form.Fill(tc.input)

			err := form.Submit(context.Background())

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, form.FieldErrors(), tc.field)
			assert.Equal(t, StatusIdle, form.Status(), "validation must not change the status")
			assert.Equal(t, 0, submitter.Calls(), "no request should be issued")
			assert.Equal(t, tc.input, form.Values())
		})
	}
}

func TestSubmitSuccessClearsFields(t *testing.T) {
	submitter := &countingSubmitter{}
	form := New(submitter, testText)
	form.Fill(validInput)

	err := form.Submit(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, StatusSucceeded, form.Status())
	assert.Equal(t, Submission{}, form.Values())
	assert.Empty(t, form.FieldErrors())
	assert.Equal(t, 1, submitter.Calls())
	assert.False(t, form.CanSubmit())
}

func TestSubmitFailureKeepsFields(t *testing.T) {
	submitter := &countingSubmitter{err: &SubmissionError{StatusCode: 429, Reason: "Rate limited"}}
	form := New(submitter, testText)
	form.Fill(validInput)

	err := form.Submit(context.Background())

	var subErr *SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, StatusFailed, form.Status())
	assert.Equal(t, "Rate limited", form.ErrorText())
	assert.Equal(t, validInput, form.Values())
	assert.True(t, form.CanSubmit(), "a failed form must stay re-submittable")
}

func TestSubmitFailureWithoutReasonUsesFallback(t *testing.T) {
	cases := []error{
		&SubmissionError{StatusCode: 500},
		&SubmissionError{Err: errors.New("connection refused")},
		errors.New("unexpected"),
	}

	for _, submitErr := range cases {
		form := New(&countingSubmitter{err: submitErr}, testText)
		form.Fill(validInput)

		form.Submit(context.Background())

		assert.Equal(t, StatusFailed, form.Status())
		assert.Equal(t, "Something went wrong.", form.ErrorText())
	}
}

func TestRetryAfterFailure(t *testing.T) {
	submitter := &countingSubmitter{err: &SubmissionError{StatusCode: 503, Reason: "Try later"}}
	form := New(submitter, testText)
	form.Fill(validInput)

	form.Submit(context.Background())
	assert.Equal(t, StatusFailed, form.Status())

	submitter.err = nil
	err := form.Submit(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, StatusSucceeded, form.Status())
	assert.Empty(t, form.ErrorText(), "error text is cleared when a new submission starts")
	assert.Equal(t, 2, submitter.Calls())
}

func TestSecondSubmitWhileInFlightIsNoop(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int32

	form := New(SubmitterFunc(func(ctx context.Context, s Submission) error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	}), testText)
	form.Fill(validInput)

	done := make(chan error)
	go func() { done <- form.Submit(context.Background()) }()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("submission never started")
	}

	assert.Equal(t, StatusSubmitting, form.Status())
	assert.False(t, form.CanSubmit())
	assert.ErrorIs(t, form.Submit(context.Background()), ErrSubmitInFlight)
	assert.False(t, form.Reset(), "reset is ignored while submitting")

	close(release)
	assert.Nil(t, <-done)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, StatusSucceeded, form.Status())
}

func TestSendAnotherMessage(t *testing.T) {
	submitter := &countingSubmitter{}
	form := New(submitter, testText)
	form.Fill(validInput)
	require.Nil(t, form.Submit(context.Background()))

	assert.ErrorIs(t, form.Submit(context.Background()), ErrAlreadySent)
	assert.Equal(t, 1, submitter.Calls())

	assert.True(t, form.Reset())
	assert.Equal(t, StatusIdle, form.Status())
	assert.Equal(t, Submission{}, form.Values())
	assert.True(t, form.CanSubmit())
}

func TestValidationAfterFailureKeepsFailedStatus(t *testing.T) {
	form := New(&countingSubmitter{err: &SubmissionError{StatusCode: 500, Reason: "Down"}}, testText)
	form.Fill(validInput)
	form.Submit(context.Background())

	form.Set(FieldEmail, "broken")
	err := form.Submit(context.Background())

	var verrs ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Equal(t, StatusFailed, form.Status())
	assert.Equal(t, "Invalid email address.", form.FieldErrors()[FieldEmail])
}
