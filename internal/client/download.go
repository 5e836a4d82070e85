package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rakapratama/permit-extractor/internal/common"
	"github.com/rakapratama/permit-extractor/internal/entity"
)

// DownloadExcel fetches the generated spreadsheet for a batch, if the
// service produced one.
func (c *Client) DownloadExcel(ctx context.Context, batch *entity.BatchResult) ([]byte, error) {
	if batch == nil || batch.DownloadLinks.ExcelPath == "" {
		return nil, common.NewAppError("DOWNLOAD_ERROR", "batch has no excel link", common.ErrNotFound)
	}
	return c.download(ctx, batch.DownloadLinks.ExcelPath, c.cfg.ExcelTimeout)
}

// DownloadZip fetches the renamed-files archive for a batch, if the service
// produced one.
func (c *Client) DownloadZip(ctx context.Context, batch *entity.BatchResult) ([]byte, error) {
	if batch == nil || batch.DownloadLinks.ZipPath == "" {
		return nil, common.NewAppError("DOWNLOAD_ERROR", "batch has no zip link", common.ErrNotFound)
	}
	return c.download(ctx, batch.DownloadLinks.ZipPath, c.cfg.ZipTimeout)
}

// download fetches a server-relative artifact path. Not-found and
// network-class failures get up to DownloadRetries additional sequential
// attempts with a fixed delay; everything else is terminal immediately.
func (c *Client) download(ctx context.Context, rel string, timeout time.Duration) ([]byte, error) {
	reqID := uuid.New().String()
	attempts := c.cfg.DownloadRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		data, err := c.fetch(ctx, rel, timeout)
		if err == nil {
			c.log.Info("client.download.ok",
				"req_id", reqID, "path", rel, "bytes", len(data), "attempt", attempt)
			return data, nil
		}
		lastErr = err

		if !common.IsRetryableDownload(err) || attempt == attempts {
			break
		}
		c.log.Warn("client.download.retry",
			"req_id", reqID, "path", rel, "attempt", attempt, "error", err)
		select {
		case <-time.After(c.cfg.RetryDelay):
		case <-ctx.Done():
			// An interrupt is a cancellation, not a timeout.
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %v", common.ErrRequestTimeout, ctx.Err())
			}
			return nil, ctx.Err()
		}
	}

	c.log.Error("client.download.failed", "req_id", reqID, "path", rel, "error", lastErr)
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, rel string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(rel), nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer closeBody(resp.Body, c.log)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetworkFailure, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, &common.HTTPError{Status: resp.StatusCode, Body: truncate(string(raw), maxErrorBody)}
	}
	if len(raw) == 0 {
		return nil, common.ErrEmptyArtifact
	}
	return raw, nil
}
