// Command pdf2json extracts MCQ questions from an exam PDF into questions.json.
//
// Usage:
//
//	pdf2json [path/to/exam.pdf]
//
// The only argument is the input path; everything else comes from the
// CONVERTER section of config.yaml or MCQ_CONVERTER_* variables.
// Extraction is best effort: the raw text is always saved next to the output so
// the question file can be finished by hand.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mcq-server/config"
	"mcq-server/db"
	"mcq-server/ingestion"
	"mcq-server/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := utils.SetupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, newConverter(cfg.Converter, logger), os.Args[1:], publishURL(cfg), logger, os.Stdout, os.Stderr)
	logger.Sync()
	os.Exit(code)
}

func newConverter(cc config.ConverterConfig, logger *zap.Logger) *ingestion.Converter {
	return &ingestion.Converter{
		Extractor:    ingestion.ChainExtractor{ingestion.GoPDFExtractor{}, ingestion.PdftotextExtractor{Binary: cc.PdfToText}},
		Log:          logger,
		DefaultInput: cc.DefaultInput,
		RawTextPath:  cc.RawTextPath,
		OutputPath:   cc.OutputPath,
	}
}

// publishURL is the database to load results into, or "" to skip publishing.
func publishURL(cfg *config.Config) string {
	if !cfg.Converter.Publish {
		return ""
	}
	return cfg.DatabaseURL
}

// run converts the PDF named by the first argument (or the configured default)
// and returns the process exit status: 1 when the input is missing, 0 otherwise,
// including failed conversions. Arguments are never parsed as flags.
func run(ctx context.Context, cv *ingestion.Converter, args []string, databaseURL string, logger *zap.Logger, stdout, stderr io.Writer) int {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	report, err := cv.Convert(ctx, arg)
	if errors.Is(err, ingestion.ErrInputNotFound) {
		fmt.Fprintf(stderr, "PDF file not found at: %s\n", report.InputPath)
		fmt.Fprintf(stderr, "Provide a valid path, e.g. pdf2json path/to/file.pdf\n")
		return 1
	}
	if err != nil {
		logger.Error("error converting PDF", zap.Error(err))
		fmt.Fprintf(stdout, "\nPlease convert the PDF manually using the layout of %s\n", cv.OutputPath)
		return 0
	}

	printGuidance(stdout, report)

	if databaseURL != "" && report.Written {
		if err := publishReport(ctx, databaseURL, report, logger); err != nil {
			logger.Error("failed to publish questions", zap.Error(err))
		}
	}
	return 0
}

func printGuidance(w io.Writer, report *ingestion.Report) {
	fmt.Fprintf(w, "Raw text saved to: %s\n", report.RawTextPath)
	fmt.Fprintln(w, "\nMANUAL CONVERSION REQUIRED")
	fmt.Fprintln(w, "Due to complex PDF formatting, automatic extraction may not work perfectly.")
	fmt.Fprintf(w, "1. Review the raw text in %s\n", report.RawTextPath)
	fmt.Fprintln(w, "2. Manually format questions into the JSON structure")
	fmt.Fprintf(w, "3. Save the result as %s\n", report.OutputPath)

	if !report.Written {
		fmt.Fprintln(w, "\nAutomatic parsing failed. Please convert manually.")
		return
	}
	fmt.Fprintf(w, "\nFound %d potential questions (%d candidates, %d issues).\n",
		len(report.Questions), report.Candidates, len(report.Issues))
	for _, issue := range report.Issues {
		fmt.Fprintf(w, "  line %d [%s] %s\n      fix: %s\n", issue.Line, issue.Severity, issue.Message, issue.SuggestedFix)
	}
	fmt.Fprintf(w, "Saved to: %s\n", report.OutputPath)
}

func publishReport(ctx context.Context, databaseURL string, report *ingestion.Report, logger *zap.Logger) error {
	pool, err := db.InitDB(ctx, databaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	return ingestion.Publish(ctx, pool, report, logger)
}
