package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxErrorBodyBytes = 64 << 10

// HTTPSubmitter posts submissions as JSON to the contact endpoint.
type HTTPSubmitter struct {
	Endpoint string
	// Locale is sent as Accept-Language so the server localizes its reasons.
	Locale string
	Client *http.Client
}

func NewHTTPSubmitter(endpoint, locale string) *HTTPSubmitter {
	return &HTTPSubmitter{
		Endpoint: endpoint,
		Locale:   locale,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (hs *HTTPSubmitter) Submit(ctx context.Context, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return &SubmissionError{Err: fmt.Errorf("json.Marshal: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hs.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &SubmissionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if hs.Locale != "" {
		req.Header.Set("Accept-Language", hs.Locale)
	}

	client := hs.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	subErr := &SubmissionError{StatusCode: resp.StatusCode}

	payload := errorBody{}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if json.Unmarshal(raw, &payload) == nil {
		subErr.Reason = payload.Error
	}

	return subErr
}
