package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mcq-server/config"
	"mcq-server/ingestion"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Name() string { return "stub" }

func (s stubExtractor) Extract(context.Context, string) (string, error) { return s.text, s.err }

func newTestConverter(t *testing.T, ex ingestion.Extractor) (*ingestion.Converter, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exam.pdf"), []byte("%PDF"), 0o644))
	return &ingestion.Converter{
		Extractor:    ex,
		Log:          zap.NewNop(),
		BaseDir:      dir,
		DefaultInput: "exam.pdf",
		RawTextPath:  "pdf-raw-text.txt",
		OutputPath:   "public/questions.json",
	}, dir
}

func TestRun(t *testing.T) {
	t.Parallel()

	text := "1. Unit of charge?\na) Coulomb\nb) Volt\nc) Ohm\nd) Tesla\nAnswer: a\n2. Broken?\na) x\n"

	tests := []struct {
		name       string
		ex         ingestion.Extractor
		args       []string
		wantCode   int
		wantStdout []string
		wantStderr string
	}{
		{
			name:       "converted",
			ex:         stubExtractor{text: text},
			wantStdout: []string{"MANUAL CONVERSION REQUIRED", "Found 1 potential questions (2 candidates, 1 issues)", "Saved to:"},
		},
		{
			name:       "nothing parsed",
			ex:         stubExtractor{text: "no questions here"},
			wantStdout: []string{"Automatic parsing failed. Please convert manually."},
		},
		{
			name:       "extraction failed",
			ex:         stubExtractor{err: errors.New("encrypted")},
			wantStdout: []string{"Please convert the PDF manually"},
		},
		{
			name:       "missing input",
			ex:         stubExtractor{text: text},
			args:       []string{"missing.pdf"},
			wantCode:   1,
			wantStderr: "PDF file not found at:",
		},
		{
			name:       "dash-prefixed path is not a flag",
			ex:         stubExtractor{text: text},
			args:       []string{"-x.pdf"},
			wantCode:   1,
			wantStderr: "PDF file not found at:",
		},
		{
			name:       "explicit path",
			ex:         stubExtractor{text: text},
			args:       []string{"exam.pdf", "ignored"},
			wantStdout: []string{"Saved to:"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cv, _ := newTestConverter(t, tt.ex)
			var stdout, stderr bytes.Buffer

			code := run(context.Background(), cv, tt.args, "", zap.NewNop(), &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code)
			for _, want := range tt.wantStdout {
				assert.Contains(t, stdout.String(), want)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestNewConverter(t *testing.T) {
	t.Parallel()

	cv := newConverter(config.ConverterConfig{
		DefaultInput: "in.pdf",
		RawTextPath:  "raw.txt",
		OutputPath:   "out/questions.json",
		PdfToText:    "/opt/poppler/pdftotext",
	}, zap.NewNop())

	assert.Equal(t, "in.pdf", cv.DefaultInput)
	assert.Equal(t, "raw.txt", cv.RawTextPath)
	assert.Equal(t, "out/questions.json", cv.OutputPath)
	chain, ok := cv.Extractor.(ingestion.ChainExtractor)
	require.True(t, ok)
	require.Len(t, chain, 2)
	assert.Equal(t, ingestion.PdftotextExtractor{Binary: "/opt/poppler/pdftotext"}, chain[1])
}

func TestPublishURL(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{DatabaseURL: "postgres://localhost/mcq"}
	assert.Empty(t, publishURL(cfg))

	cfg.Converter.Publish = true
	assert.Equal(t, "postgres://localhost/mcq", publishURL(cfg))

	cfg.DatabaseURL = ""
	assert.Empty(t, publishURL(cfg))
}
