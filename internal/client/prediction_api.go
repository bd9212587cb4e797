package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/checkfox/go_carprice/internal/logger"
	"github.com/checkfox/go_carprice/internal/models"
)

const predictPath = "/predict_car_price"

// PredictionAPIClient handles communication with the car price prediction backend
type PredictionAPIClient struct {
	baseURL        string
	httpClient     *http.Client
	optionsTimeout time.Duration
	predictTimeout time.Duration
}

// ClientConfig holds settings for the prediction backend client
type ClientConfig struct {
	BaseURL string
	// OptionsTimeout bounds each reference list request; zero means no bound
	OptionsTimeout time.Duration
	// PredictTimeout bounds the prediction request; zero means no bound
	PredictTimeout time.Duration
	HTTPClient     *http.Client
}

// NewPredictionAPIClient creates a new prediction backend client
func NewPredictionAPIClient(config ClientConfig) *PredictionAPIClient {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &PredictionAPIClient{
		baseURL:        strings.TrimRight(config.BaseURL, "/"),
		httpClient:     httpClient,
		optionsTimeout: config.OptionsTimeout,
		predictTimeout: config.PredictTimeout,
	}
}

// PredictionResponse represents a successful response from the prediction endpoint
type PredictionResponse struct {
	StatusCode     int
	EstimatedPrice float64
	RequestID      string
}

// FetchList loads one reference list.
// A body without the list key yields an empty list; the error, when set, is a *models.ReferenceLoadError.
func (c *PredictionAPIClient) FetchList(ctx context.Context, list models.ReferenceList) ([]string, error) {
	if !list.IsValid() {
		return nil, models.NewReferenceLoadError(list, 0, "unknown reference list", nil)
	}

	ctx, cancel := withOptionalTimeout(ctx, c.optionsTimeout)
	defer cancel()

	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+list.Path(), nil)
	if err != nil {
		return nil, models.NewReferenceLoadError(list, 0, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	logger.Debug(ctx, "Fetching reference list", "list", list.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewReferenceLoadError(list, 0, "network error", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewReferenceLoadError(list, resp.StatusCode, "failed to read response body", err)
	}

	if !isSuccessStatusCode(resp.StatusCode) {
		return nil, models.NewReferenceLoadError(list, resp.StatusCode, string(bodyBytes), nil)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return nil, models.NewReferenceLoadError(list, resp.StatusCode, "malformed response body", err)
	}

	raw, ok := body[list.JSONKey()]
	if !ok || string(raw) == "null" {
		return []string{}, nil
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, models.NewReferenceLoadError(list, resp.StatusCode,
			fmt.Sprintf("%q is not a list of strings", list.JSONKey()), err)
	}

	return values, nil
}

// PredictPrice sends the draft to the prediction endpoint as a multipart form.
// Values are copied verbatim; the error, when set, is a *models.SubmissionError.
func (c *PredictionAPIClient) PredictPrice(ctx context.Context, draft models.FormDraft) (*PredictionResponse, error) {
	body, contentType, err := EncodeDraft(draft)
	if err != nil {
		return nil, models.NewSubmissionError(0, models.MessageEstimationFailed, err)
	}

	ctx, cancel := withOptionalTimeout(ctx, c.predictTimeout)
	defer cancel()

	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, body)
	if err != nil {
		return nil, models.NewSubmissionError(0, models.MessageEstimationFailed, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	logger.LogSlowOperation(ctx, "predict_car_price", time.Since(startTime))
	if err != nil {
		if isTimeout(err) {
			return nil, models.NewTimeoutSubmissionError(err)
		}
		return nil, models.NewNetworkSubmissionError(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, models.NewTimeoutSubmissionError(err)
		}
		return nil, models.NewSubmissionError(resp.StatusCode, models.MessageEstimationFailed, err)
	}

	if !isSuccessStatusCode(resp.StatusCode) {
		return nil, models.NewSubmissionError(resp.StatusCode, errorMessage(bodyBytes, resp.StatusCode), nil)
	}

	var result struct {
		EstimatedPrice *float64 `json:"estimated_price"`
	}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, models.NewSubmissionError(resp.StatusCode, models.MessageInvalidPrice, err)
	}
	if result.EstimatedPrice == nil {
		return nil, models.NewSubmissionError(resp.StatusCode, models.MessageInvalidPrice, nil)
	}

	return &PredictionResponse{
		StatusCode:     resp.StatusCode,
		EstimatedPrice: *result.EstimatedPrice,
		RequestID:      requestID,
	}, nil
}

// EncodeDraft builds the multipart body for a prediction request.
// Fields are written in form order with their raw string values.
func EncodeDraft(draft models.FormDraft) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range models.AllFields() {
		if err := writer.WriteField(field.FormKey(), draft.Get(field)); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", field.FormKey(), err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

// errorMessage returns the backend's error text, falling back to a generic HTTP message
func errorMessage(body []byte, statusCode int) string {
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error != "" {
		return errBody.Error
	}
	return models.GenericHTTPErrorMessage(statusCode)
}

func isSuccessStatusCode(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
