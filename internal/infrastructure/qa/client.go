// Package qa is the typed client for the external document-processing and
// question-answering backend. This service never reimplements any of that
// functionality; it only pings the backend for readiness and carries the
// wire contract the frontend relies on.
package qa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
)

const (
	askTimeout    = 10 * time.Second
	uploadTimeout = 50 * time.Second

	// Upload is the only retried call: at most two extra attempts, network
	// failures only. An HTTP error response or a cancelled context is final.
	uploadRetries = 2
	retryBackoff  = 2 * time.Second

	// MaxFileSize is the per-file cap enforced before anything is sent.
	MaxFileSize = 10 << 20
)

var ErrFileTooLarge = errors.New("file exceeds 10 MiB limit")

// File is one PDF to upload.
type File struct {
	Name string
	Data []byte
}

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health reports whether the QA backend answers its health endpoint with
// status "healthy".
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("qa health: %w", err)
	}
	defer resp.Body.Close()

	var hr healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return fmt.Errorf("qa health: %w", err)
	}
	if hr.Status != "healthy" {
		return fmt.Errorf("qa health: status %q", hr.Status)
	}
	return nil
}

type askRequest struct {
	Question string           `json:"question"`
	History  []domain.Message `json:"chat_history,omitempty"`
}

type askResponse struct {
	History []domain.Message `json:"chat_history"`
}

// Ask sends a question plus prior history and returns the updated history.
// One attempt, 10s deadline, no retry.
func (c *Client) Ask(ctx context.Context, question string, history []domain.Message) ([]domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	body, err := json.Marshal(askRequest{Question: question, History: history})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ask", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qa ask: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qa ask: unexpected status %d", resp.StatusCode)
	}

	var ar askResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("qa ask: %w", err)
	}
	return ar.History, nil
}

// Upload sends PDF files as multipart form data. Files over MaxFileSize are
// rejected before any bytes leave the process. Network failures are retried
// up to uploadRetries times with a fixed backoff; an explicit server error
// is never retried.
func (c *Client) Upload(ctx context.Context, files []File) error {
	for _, f := range files {
		if len(f.Data) > MaxFileSize {
			return fmt.Errorf("%w: %s", ErrFileTooLarge, f.Name)
		}
	}

	body, contentType, err := multipartBody(files)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt <= uploadRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn().Err(lastErr).Int("attempt", attempt).Msg("retrying upload")
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = c.uploadOnce(ctx, body, contentType)
		if lastErr == nil {
			return nil
		}
		// An HTTP-level error means the server saw the request; retrying
		// would just duplicate the work. Same for caller cancellation.
		var se *serverError
		if errors.As(lastErr, &se) || errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}
	}
	return lastErr
}

type serverError struct {
	status int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("qa upload: unexpected status %d", e.status)
}

func (c *Client) uploadOnce(ctx context.Context, body []byte, contentType string) error {
	attemptCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+"/api/upload", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("qa upload: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &serverError{status: resp.StatusCode}
	}
	return nil
}

func multipartBody(files []File) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// Reset clears the backend's document index.
func (c *Client) Reset(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reset", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("qa reset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qa reset: unexpected status %d", resp.StatusCode)
	}
	return nil
}
