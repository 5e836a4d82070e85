// reexport re-projects a previously saved batch JSON dump and writes fresh
// exports without touching the network.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rakapratama/permit-extractor/constants"
	"github.com/rakapratama/permit-extractor/internal/common"
	"github.com/rakapratama/permit-extractor/internal/entity"
	"github.com/rakapratama/permit-extractor/internal/export"
	"github.com/rakapratama/permit-extractor/internal/projector"
	"github.com/rakapratama/permit-extractor/internal/render"
)

func main() {
	var (
		in      = pflag.String("in", "", "path to a saved batch JSON dump (required)")
		docType = pflag.String("type", "", "document type: "+strings.Join(constants.AsStringSlice(), ", "))
		search  = pflag.String("search", "", "filter displayed rows by case-insensitive substring")
		out     = pflag.String("out", ".", "output directory for exports")
		format  = pflag.String("format", "csv", "export format: csv, xlsx or none")
	)
	pflag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: --in is required")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	raw, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("failed to read batch dump", "path", *in, "error", err)
		os.Exit(1)
	}

	var batch entity.BatchResult
	if err := json.Unmarshal(raw, &batch); err != nil {
		logger.Error("failed to decode batch dump", "path", *in, "error", err)
		os.Exit(1)
	}
	if err := batch.Validate(); err != nil {
		logger.Error("batch dump is inconsistent", "error", err)
		os.Exit(1)
	}

	dt, ok := constants.Canonicalize(*docType)
	if !ok {
		dt = constants.DocumentType(*docType)
	}

	rows := projector.ProjectBatch(&batch, dt)
	rows = projector.FilterBySearch(rows, *search)
	render.Table(os.Stdout, dt, rows)

	headers, records := projector.BuildExportRecords(&batch, dt)
	exporter := export.NewService(common.LoadConfig().Export.SheetName, logger)

	switch strings.ToLower(*format) {
	case "csv":
		path := filepath.Join(*out, "extraction_results.csv")
		f, err := os.Create(path)
		if err != nil {
			logger.Error("failed to create export file", "path", path, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := exporter.WriteCSV(f, headers, records); err != nil {
			logger.Error("failed to write csv", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d rows)\n", path, len(records))
	case "xlsx":
		b, err := exporter.BuildXLSX(headers, records)
		if err != nil {
			logger.Error("failed to build xlsx", "error", err)
			os.Exit(1)
		}
		path := filepath.Join(*out, "extraction_results.xlsx")
		if err := os.WriteFile(path, b, 0644); err != nil {
			logger.Error("failed to write xlsx", "path", path, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d rows)\n", path, len(records))
	case "none", "":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		os.Exit(1)
	}
}
