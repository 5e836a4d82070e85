// Package client talks to the remote extraction service over HTTP: liveness
// probe, multipart document submission, and artifact downloads. Extraction
// itself is the service's job; this side only uploads and decodes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rakapratama/permit-extractor/constants"
	"github.com/rakapratama/permit-extractor/internal/common"
	"github.com/rakapratama/permit-extractor/internal/entity"
)

const maxErrorBody = 2048

// Client is a thin client for the extraction API. At most one extraction
// submission is in flight at a time; a second concurrent submit fails with
// ErrSubmissionInFlight instead of queueing.
type Client struct {
	cfg        common.APIConfig
	httpClient *http.Client
	log        *slog.Logger
	inFlight   atomic.Bool
}

func NewClient(cfg common.APIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		log:        logger,
	}
}

// Health probes GET /health. Any transport failure or non-2xx marks the
// service offline; callers should disable submission until it passes.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/health"), nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("client.health.unreachable", "error", err)
		return fmt.Errorf("%w: %v", common.ErrServiceUnavailable, err)
	}
	defer closeBody(resp.Body, c.log)

	if resp.StatusCode/100 != 2 {
		c.log.Warn("client.health.bad_status", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", common.ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}

// Extract submits a single document to POST /extract.
func (c *Client) Extract(ctx context.Context, path string, dt constants.DocumentType) (*entity.BatchResult, error) {
	return c.submit(ctx, "/extract", []string{path}, dt, nil)
}

// ExtractBatch submits multiple documents to POST /extract-batch.
func (c *Client) ExtractBatch(ctx context.Context, paths []string, dt constants.DocumentType) (*entity.BatchResult, error) {
	return c.submit(ctx, "/extract-batch", paths, dt, nil)
}

// ExtractWithRename submits documents to POST /extract-with-rename. The
// response additionally carries renamed_files and a ZIP download link.
func (c *Client) ExtractWithRename(ctx context.Context, paths []string, dt constants.DocumentType, useName, usePassport bool) (*entity.BatchResult, error) {
	fields := map[string]string{
		"use_name_for_rename":     fmt.Sprintf("%t", useName),
		"use_passport_for_rename": fmt.Sprintf("%t", usePassport),
	}
	return c.submit(ctx, "/extract-with-rename", paths, dt, fields)
}

func (c *Client) submit(ctx context.Context, endpoint string, paths []string, dt constants.DocumentType, fields map[string]string) (*entity.BatchResult, error) {
	if len(paths) == 0 {
		return nil, common.NewAppError("SUBMIT_ERROR", "no files to submit", common.ErrInvalidInput)
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, common.ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	reqID := uuid.New().String()
	start := time.Now()

	body, contentType, err := buildMultipart(paths, dt, fields)
	if err != nil {
		c.log.Error("client.extract.encode_error", "req_id", reqID, "error", err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ExtractTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	c.log.Info("client.extract.request",
		"req_id", reqID,
		"endpoint", endpoint,
		"document_type", string(dt),
		"files", len(paths),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = classifyTransport(err)
		c.log.Error("client.extract.send_error",
			"req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}
	defer closeBody(resp.Body, c.log)

	raw, _ := io.ReadAll(resp.Body)

	c.log.Info("client.extract.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, &common.HTTPError{Status: resp.StatusCode, Body: truncate(string(raw), maxErrorBody)}
	}

	if err := ValidateJSONAgainstSchema(BuildBatchResultSchema(), raw); err != nil {
		c.log.Error("client.extract.schema_validation_failed", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("batch payload validation: %w", err)
	}

	var batch entity.BatchResult
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("decode batch result: %w", err)
	}
	if err := batch.Validate(); err != nil {
		c.log.Error("client.extract.inconsistent_batch", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("inconsistent batch result: %w", err)
	}

	c.log.Info("client.extract.ok",
		"req_id", reqID,
		"total", batch.TotalFiles,
		"processed", batch.ProcessedFiles,
		"failed", batch.FailedFiles,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &batch, nil
}

func buildMultipart(paths []string, dt constants.DocumentType, fields map[string]string) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	for _, p := range paths {
		part, err := w.CreateFormFile("files", filepath.Base(p))
		if err != nil {
			return nil, "", fmt.Errorf("create form file: %w", err)
		}
		f, err := os.Open(p)
		if err != nil {
			return nil, "", fmt.Errorf("open %s: %w", p, err)
		}
		_, err = io.Copy(part, f)
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", p, err)
		}
	}

	if err := w.WriteField("document_type", string(dt)); err != nil {
		return nil, "", fmt.Errorf("write document_type: %w", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// classifyTransport sorts fetch-level failures into the timeout vs network
// buckets of the error taxonomy.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrRequestTimeout, err)
	}
	return fmt.Errorf("%w: %v", common.ErrNetworkFailure, err)
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func closeBody(body io.ReadCloser, log *slog.Logger) {
	if err := body.Close(); err != nil {
		log.Warn("client.response_body_close_error", "error", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
