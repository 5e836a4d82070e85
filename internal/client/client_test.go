package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakapratama/permit-extractor/constants"
	"github.com/rakapratama/permit-extractor/internal/common"
	"github.com/rakapratama/permit-extractor/internal/entity"
)

func testConfig(baseURL string) common.APIConfig {
	return common.APIConfig{
		BaseURL:         baseURL,
		HealthTimeout:   2 * time.Second,
		ExtractTimeout:  5 * time.Second,
		ExcelTimeout:    2 * time.Second,
		ZipTimeout:      2 * time.Second,
		DownloadRetries: 2,
		RetryDelay:      10 * time.Millisecond,
	}
}

func writeTempPDFs(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4 test"), 0644))
		paths = append(paths, p)
	}
	return paths
}

func okBatchJSON() string {
	b := entity.BatchResult{
		TotalFiles:     1,
		ProcessedFiles: 1,
		FailedFiles:    0,
		Items: []entity.ResultItem{
			{
				Filename: "budi.pdf",
				Status:   constants.StatusSuccess,
				Record:   entity.ExtractionRecord{"Name": "BUDI", "Passport No": "A123"},
			},
		},
	}
	raw, _ := json.Marshal(b)
	return string(raw)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	assert.NoError(t, c.Health(context.Background()))
}

func TestHealthNon2xxMarksOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	err := c.Health(context.Background())
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestHealthUnreachableMarksOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	c := NewClient(testConfig(srv.URL), nil)
	err := c.Health(context.Background())
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestExtractBatchSendsMultipartForm(t *testing.T) {
	var gotFiles int
	var gotType, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotFiles = len(r.MultipartForm.File["files"])
		gotType = r.FormValue("document_type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_files": 2, "processed_files": 2, "failed_files": 0,
			"results": [
				{"filename": "a.pdf", "status": "success", "data": {"Name": "A"}},
				{"filename": "b.pdf", "status": "success", "data": {"Name": "B"}}
			]
		}`))
	}))
	defer srv.Close()

	paths := writeTempPDFs(t, "a.pdf", "b.pdf")
	c := NewClient(testConfig(srv.URL), nil)

	batch, err := c.ExtractBatch(context.Background(), paths, constants.ITAS)
	require.NoError(t, err)

	assert.Equal(t, "/extract-batch", gotPath)
	assert.Equal(t, 2, gotFiles)
	assert.Equal(t, "ITAS", gotType)
	assert.Equal(t, 2, batch.ProcessedFiles)
	require.Len(t, batch.Items, 2)
}

func TestExtractWithRenameSendsFlags(t *testing.T) {
	var useName, usePassport string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/extract-with-rename", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))
		useName = r.FormValue("use_name_for_rename")
		usePassport = r.FormValue("use_passport_for_rename")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBatchJSON()))
	}))
	defer srv.Close()

	paths := writeTempPDFs(t, "budi.pdf")
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.ExtractWithRename(context.Background(), paths, constants.EVLN, true, false)
	require.NoError(t, err)
	assert.Equal(t, "true", useName)
	assert.Equal(t, "false", usePassport)
}

func TestExtractRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_files": "three", "results": []}`))
	}))
	defer srv.Close()

	paths := writeTempPDFs(t, "a.pdf")
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.Extract(context.Background(), paths[0], constants.SKTT)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestExtractRejectsInconsistentCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_files": 1, "processed_files": 2, "failed_files": 1, "results": []}`))
	}))
	defer srv.Close()

	paths := writeTempPDFs(t, "a.pdf")
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.Extract(context.Background(), paths[0], constants.SKTT)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inconsistent")
}

func TestExtractNon2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	paths := writeTempPDFs(t, "a.pdf")
	c := NewClient(testConfig(srv.URL), nil)

	_, err := c.Extract(context.Background(), paths[0], constants.SKTT)
	var he *common.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadGateway, he.Status)
}

func TestExtractTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(okBatchJSON()))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ExtractTimeout = 50 * time.Millisecond
	c := NewClient(cfg, nil)

	paths := writeTempPDFs(t, "a.pdf")
	_, err := c.Extract(context.Background(), paths[0], constants.SKTT)
	assert.ErrorIs(t, err, common.ErrRequestTimeout)
}

func TestSingleSubmissionInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			close(entered)
			<-release
		})
		_, _ = w.Write([]byte(okBatchJSON()))
	}))
	defer srv.Close()

	paths := writeTempPDFs(t, "a.pdf", "b.pdf")
	c := NewClient(testConfig(srv.URL), nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.Extract(context.Background(), paths[0], constants.EVLN)
		done <- err
	}()

	<-entered
	_, err := c.Extract(context.Background(), paths[1], constants.EVLN)
	assert.True(t, errors.Is(err, common.ErrSubmissionInFlight), "second submit must be refused, got %v", err)

	close(release)
	require.NoError(t, <-done)

	// guard is released once the first submission completes
	_, err = c.Extract(context.Background(), paths[1], constants.EVLN)
	require.NoError(t, err)
}

func TestSubmitRequiresFiles(t *testing.T) {
	c := NewClient(testConfig("http://localhost:1"), nil)
	_, err := c.ExtractBatch(context.Background(), nil, constants.EVLN)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
