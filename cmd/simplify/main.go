// Command simplify runs one lab report through the configured generation backend
// and prints the plain-language result.
//
//	simplify -file report.pdf -text "extra notes" -format csv -out report.csv
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"labsimplify/internal/config"
	"labsimplify/internal/domain"
	"labsimplify/internal/export"
	"labsimplify/internal/extractor"
	"labsimplify/internal/llm"
	_ "labsimplify/internal/llm/all" // registers every generation provider
	"labsimplify/internal/logging"
	"labsimplify/internal/service"
	"labsimplify/internal/simplifier"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	filePath := flag.String("file", "", "Path to a lab report PDF")
	text := flag.String("text", "", "Pasted report text, or - to read stdin")
	formatName := flag.String("format", "json", "Output format: json, csv or xlsx")
	outPath := flag.String("out", "", "Write the result to this path instead of stdout")
	flag.Parse()

	_ = godotenv.Load()

	format, err := domain.ParseExportFormat(strings.ToLower(strings.TrimSpace(*formatName)))
	if err != nil {
		return fmt.Errorf("%w: %q", err, *formatName)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// Logs go to stderr so stdout carries only the rendered report.
	log := logging.NewWithOutput(cfg.Log, os.Stderr)

	if err := cfg.Generator.Validate(); err != nil {
		return err
	}

	input, err := readInput(*filePath, *text)
	if err != nil {
		return err
	}

	ctx := context.Background()
	backend, err := llm.NewBackend(ctx, &cfg.Generator, llm.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", cfg.Generator.Provider, err)
	}
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}

	simp := simplifier.New(backend,
		simplifier.WithGeneratorConfig(&cfg.Generator),
		simplifier.WithLogger(log),
	)
	svc := service.NewReportService(extractor.NewPDFExtractor(), simp, cfg.Upload.MaxBytes(), nil, log)

	report, err := svc.Simplify(ctx, input)
	if err != nil {
		return err
	}

	if *outPath == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := export.Write(w, format, report); err != nil {
			return fmt.Errorf("rendering %s: %w", format, err)
		}
		return w.Flush()
	}

	f, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *outPath, err)
	}
	if err := export.Write(f, format, report); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	return f.Close()
}

// readInput loads the document at path (if any) and the pasted text, reading stdin
// when text is "-".
func readInput(path, text string) (domain.ReportInput, error) {
	var input domain.ReportInput

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return input, fmt.Errorf("reading %s: %w", path, err)
		}
		input.Document = data
		input.DocumentName = filepath.Base(path)
	}

	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return input, fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	input.Text = text

	return input, nil
}
