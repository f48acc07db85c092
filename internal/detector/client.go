package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"veritas-backend/internal/report"
)

const analyzePath = "/analyze-document"

// Client calls the external document detection service. The service is an
// opaque HTTP endpoint; its payload is normalized defensively on receipt.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a detection service client. No request timeout is
// enforced unless DETECTOR_TIMEOUT_SECONDS is set; the transport default
// applies otherwise.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("DETECTOR_URL is required")
	}
	var timeout time.Duration
	if raw := strings.TrimSpace(os.Getenv("DETECTOR_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Analyze submits document text to the detection service and returns the
// resulting report. Empty text and a missing token fail locally before any
// network traffic. The call blocks until the service responds; there is no
// retry.
func (c *Client) Analyze(ctx context.Context, text, authToken string) (report.Report, error) {
	if strings.TrimSpace(text) == "" {
		return report.Report{}, ErrEmptyText
	}
	if strings.TrimSpace(authToken) == "" {
		return report.Report{}, ErrNoToken
	}

	payload, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return report.Report{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(payload))
	if err != nil {
		return report.Report{}, err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return report.Report{}, &AnalysisError{Detail: connectivityFailureDetail, cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return report.Report{}, &AnalysisError{StatusCode: resp.StatusCode, Detail: connectivityFailureDetail, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return report.Report{}, &AnalysisError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}

	if !json.Valid(body) {
		return report.Report{}, &AnalysisError{StatusCode: resp.StatusCode, Detail: genericFailureDetail}
	}
	rep, ok := report.Normalize(body)
	if !ok {
		return report.Report{}, &AnalysisError{StatusCode: resp.StatusCode, Detail: genericFailureDetail}
	}
	return rep, nil
}

func errorDetail(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if detail := strings.TrimSpace(parsed.Detail); detail != "" {
			return detail
		}
	}
	return genericFailureDetail
}
