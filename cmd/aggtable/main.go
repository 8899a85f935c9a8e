// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Command aggtable turns a saved search response into tables, printed or
// exported to avro, parquet or sqlite.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Russellleung/dashBot/internal/domain/model"
	"github.com/Russellleung/dashBot/internal/domain/port"
	"github.com/Russellleung/dashBot/internal/infrastructure/export"
	"github.com/Russellleung/dashBot/pkg/aggtable"
	"github.com/Russellleung/dashBot/pkg/constants"
	"github.com/Russellleung/dashBot/pkg/httpclient"
	logging "github.com/Russellleung/dashBot/pkg/log"
)

func init() {
	// stdout carries the tables
	logging.InitStructureLogConfigTo(os.Stderr)
}

// options holds the parsed command line
type options struct {
	format    string
	out       string
	qualified bool
	maxDepth  int
	input     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.ErrorContext(ctx, "aggtable failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("aggtable", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.format, "format", constants.ExportFormatText, "output format: text, json, avro, parquet or sqlite")
	fs.StringVar(&opts.out, "out", "", "output directory (avro, parquet) or database file (sqlite)")
	fs.BoolVar(&opts.qualified, "qualified", false, "name columns by their full aggregation path")
	fs.IntVar(&opts.maxDepth, "max-depth", aggtable.DefaultMaxDepth, "deepest aggregation level to flatten, counted from zero at the root")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: aggtable [flags] response.json|-|URL")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, fmt.Errorf("expected exactly one input file, got %d", fs.NArg())
	}
	opts.input = fs.Arg(0)

	switch opts.format {
	case constants.ExportFormatText, constants.ExportFormatJSON:
	case constants.ExportFormatAvro, constants.ExportFormatParquet:
		if opts.out == "" {
			opts.out = "."
		}
	case constants.ExportFormatSQLite:
		if opts.out == "" {
			opts.out = "tables.db"
		}
	default:
		return opts, fmt.Errorf("unsupported format %q", opts.format)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	in, err := openInput(ctx, opts.input, stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	found, err := readResponse(in)
	if err != nil {
		return err
	}

	assembler := aggtable.Assembler{
		Flattener: aggtable.Flattener{QualifiedNames: opts.qualified},
		MaxDepth:  opts.maxDepth,
	}
	tables, err := assembler.AssembleContext(ctx, found.Aggregations)
	if err != nil {
		return fmt.Errorf("failed to assemble tables: %w", err)
	}

	result := &model.TableResult{Tables: tables, Total: found.Total}
	if found.Hits != nil {
		if docs, ok := aggtable.DocumentsTable(found.Hits); ok {
			result.Documents = &docs
		}
	}

	slog.DebugContext(ctx, "tables assembled",
		"input", opts.input,
		"tables", len(result.Tables),
		"empty", result.Empty(),
	)

	switch opts.format {
	case constants.ExportFormatText:
		return writeText(stdout, result)
	case constants.ExportFormatJSON:
		return writeJSON(stdout, result)
	}

	exporter := newExporter(opts)
	all := append(aggtable.Tables{}, result.Tables...)
	if result.Documents != nil {
		all = append(all, *result.Documents)
	}
	if err := exporter.Export(ctx, all); err != nil {
		return fmt.Errorf("failed to export tables: %w", err)
	}
	slog.InfoContext(ctx, "tables exported",
		"format", opts.format,
		"out", opts.out,
		"tables", len(all),
	)
	return nil
}

func newExporter(opts options) port.TableExporter {
	switch opts.format {
	case constants.ExportFormatAvro:
		return export.NewAvroExporter(opts.out)
	case constants.ExportFormatParquet:
		return export.NewParquetExporter(opts.out)
	default:
		return export.NewSQLiteExporter(opts.out)
	}
}

// openInput opens a file, "-" for stdin, or an http(s) URL
func openInput(ctx context.Context, input string, stdin io.Reader) (io.ReadCloser, error) {
	switch {
	case input == "-":
		return io.NopCloser(stdin), nil
	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		body, err := httpclient.NewClient(httpclient.DefaultConfig()).Fetch(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch input: %w", err)
		}
		return io.NopCloser(bytes.NewReader(body)), nil
	default:
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		return f, nil
	}
}

// readResponse accepts a whole search response or a bare aggregations object
func readResponse(r io.Reader) (*model.SearchResult, error) {
	decoded, err := aggtable.DecodeReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}
	obj, ok := decoded.(*aggtable.Object)
	if !ok {
		return nil, fmt.Errorf("input must be a JSON object")
	}

	_, hasAggs := obj.Get("aggregations")
	_, hasHits := obj.Get("hits")
	if hasAggs || hasHits {
		return model.NewSearchResult(obj), nil
	}
	return &model.SearchResult{Aggregations: obj}, nil
}
