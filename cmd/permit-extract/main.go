package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rakapratama/permit-extractor/constants"
	"github.com/rakapratama/permit-extractor/internal/client"
	"github.com/rakapratama/permit-extractor/internal/common"
	"github.com/rakapratama/permit-extractor/internal/entity"
	"github.com/rakapratama/permit-extractor/internal/export"
	"github.com/rakapratama/permit-extractor/internal/ingest"
	"github.com/rakapratama/permit-extractor/internal/projector"
	"github.com/rakapratama/permit-extractor/internal/render"
	"github.com/rakapratama/permit-extractor/internal/session"
)

func main() {
	var (
		dir         = pflag.String("dir", "", "directory to collect PDF files from")
		files       = pflag.StringSlice("files", nil, "explicit PDF files to submit")
		docType     = pflag.String("type", "", "document type: "+strings.Join(constants.AsStringSlice(), ", "))
		rename      = pflag.Bool("rename", false, "ask the service to rename files and build a ZIP archive")
		useName     = pflag.Bool("use-name", true, "rename mode: include the holder name in new filenames")
		usePassport = pflag.Bool("use-passport", true, "rename mode: include the passport number in new filenames")
		search      = pflag.String("search", "", "filter displayed rows by case-insensitive substring")
		out         = pflag.String("out", "", "output directory for exports (defaults to config)")
		formats     = pflag.StringSlice("format", []string{"csv"}, "export formats: csv, json, xlsx")
		fetchExcel  = pflag.Bool("fetch-excel", false, "download the server-generated spreadsheet")
		fetchZip    = pflag.Bool("fetch-zip", false, "download the renamed-files ZIP archive")
	)
	pflag.Parse()

	if *dir == "" && len(*files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: --dir or --files is required")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = cfg.Export.OutputDir
	}

	dt, ok := constants.Canonicalize(*docType)
	if !ok {
		// Unknown tags are not fatal: the projector serves its generic
		// column profile and the raw value still goes to the service.
		logger.Warn("unrecognized document type, using generic columns", "type", *docType)
		dt = constants.DocumentType(*docType)
	}

	paths, stats, err := ingest.CollectFiles(*files, *dir)
	if err != nil {
		logger.Error("failed to collect files", "error", err)
		os.Exit(1)
	}
	logger.Info("files collected",
		"matched", stats.Matched,
		"scanned", stats.Scanned,
		"skipped", stats.Skipped)

	api := client.NewClient(cfg.API, logger)

	if err := api.Health(ctx); err != nil {
		logger.Error("extraction service is offline, submission disabled", "error", err)
		os.Exit(1)
	}

	// The session owns the batch from here on: one result per submission,
	// overwritten by the next run. Rendering, exports and downloads all
	// read from it rather than from the response value.
	sess := session.New()
	sess.Set(submit(ctx, api, paths, dt, *rename, *useName, *usePassport, logger))
	batch := sess.Current()

	rows := projector.ProjectBatch(batch, dt)
	rows = projector.FilterBySearch(rows, *search)
	render.Table(os.Stdout, dt, rows)

	if len(batch.RenamedFiles) > 0 {
		fmt.Printf("Renamed files:\n")
		for orig, renamed := range batch.RenamedFiles {
			fmt.Printf("- %s -> %s\n", orig, renamed)
		}
	}

	exporter := export.NewService(cfg.Export.SheetName, logger)
	writeExports(exporter, batch, dt, *formats, *out, logger)

	if *fetchExcel {
		saveArtifact(logger, *out, "results.xlsx", func() ([]byte, error) {
			return api.DownloadExcel(ctx, sess.Current())
		})
	}
	if *fetchZip {
		saveArtifact(logger, *out, "renamed_files.zip", func() ([]byte, error) {
			return api.DownloadZip(ctx, sess.Current())
		})
	}

	fmt.Printf("Extraction complete!\n")
	fmt.Printf("- Files submitted: %d\n", batch.TotalFiles)
	fmt.Printf("- Processed: %d\n", batch.ProcessedFiles)
	fmt.Printf("- Failed: %d\n", batch.FailedFiles)
	fmt.Printf("- Output directory: %s\n", *out)
}

func submit(ctx context.Context, api *client.Client, paths []string, dt constants.DocumentType, rename, useName, usePassport bool, logger *slog.Logger) *entity.BatchResult {
	var (
		batch *entity.BatchResult
		err   error
	)
	switch {
	case rename:
		batch, err = api.ExtractWithRename(ctx, paths, dt, useName, usePassport)
	case len(paths) == 1:
		batch, err = api.Extract(ctx, paths[0], dt)
	default:
		batch, err = api.ExtractBatch(ctx, paths, dt)
	}
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
	return batch
}

func writeExports(exporter *export.Service, batch *entity.BatchResult, dt constants.DocumentType, formats []string, outDir string, logger *slog.Logger) {
	headers, records := projector.BuildExportRecords(batch, dt)

	for _, format := range formats {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "csv":
			writeFile(logger, filepath.Join(outDir, "extraction_results.csv"), func(f *os.File) error {
				return exporter.WriteCSV(f, headers, records)
			})
		case "json":
			writeFile(logger, filepath.Join(outDir, "extraction_results.json"), func(f *os.File) error {
				return exporter.WriteJSON(f, batch)
			})
		case "xlsx":
			b, err := exporter.BuildXLSX(headers, records)
			if err != nil {
				logger.Error("failed to build xlsx", "error", err)
				continue
			}
			path := filepath.Join(outDir, "extraction_results.xlsx")
			if err := os.WriteFile(path, b, 0644); err != nil {
				logger.Error("failed to write xlsx", "path", path, "error", err)
			}
		case "", "none":
		default:
			logger.Warn("unknown export format, skipping", "format", format)
		}
	}
}

func writeFile(logger *slog.Logger, path string, fn func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		logger.Error("failed to create export file", "path", path, "error", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close export file", "path", path, "error", err)
		}
	}()
	if err := fn(f); err != nil {
		logger.Error("failed to write export file", "path", path, "error", err)
	}
}

func saveArtifact(logger *slog.Logger, outDir, name string, fetch func() ([]byte, error)) {
	data, err := fetch()
	if err != nil {
		logger.Error("artifact download failed", "artifact", name, "error", err)
		return
	}
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("failed to write artifact", "path", path, "error", err)
		return
	}
	logger.Info("artifact saved", "path", path, "bytes", len(data))
}
