package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/ledongthuc/pdf"
)

var ErrNoExtractor = errors.New("no text extractor configured")

// Extractor pulls the plain text out of a PDF file.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
	Name() string
}

// GoPDFExtractor reads the PDF with the pure-Go ledongthuc/pdf reader.
type GoPDFExtractor struct{}

func (GoPDFExtractor) Name() string { return "ledongthuc/pdf" }

func (GoPDFExtractor) Extract(_ context.Context, path string) (text string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panicked: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return buf.String(), nil
}

// PdftotextExtractor shells out to poppler's pdftotext.
type PdftotextExtractor struct {
	Binary string // defaults to "pdftotext"
}

func (e PdftotextExtractor) Name() string { return "pdftotext" }

func (e PdftotextExtractor) Extract(ctx context.Context, path string) (string, error) {
	bin := e.Binary
	if bin == "" {
		bin = "pdftotext"
	}
	cmd := exec.CommandContext(ctx, bin, "-layout", path, "-")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("pdftotext failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(output), nil
}

// ChainExtractor tries each extractor in order and returns the first
// non-blank text. When all of them fail, every failure is reported.
type ChainExtractor []Extractor

func (c ChainExtractor) Name() string {
	names := make([]string, 0, len(c))
	for _, e := range c {
		names = append(names, e.Name())
	}
	return strings.Join(names, " -> ")
}

func (c ChainExtractor) Extract(ctx context.Context, path string) (string, error) {
	if len(c) == 0 {
		return "", ErrNoExtractor
	}
	var result *multierror.Error
	for _, e := range c {
		text, err := e.Extract(ctx, path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			result = multierror.Append(result, fmt.Errorf("%s: no text found", e.Name()))
			continue
		}
		return text, nil
	}
	return "", result.ErrorOrNil()
}

// DefaultExtractor is the chain used by the converter CLI.
func DefaultExtractor() Extractor {
	return ChainExtractor{GoPDFExtractor{}, PdftotextExtractor{}}
}
