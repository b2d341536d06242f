package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mcq-server/db"
	"mcq-server/models"
	"mcq-server/store"
)

const previewLength = 500

var ErrInputNotFound = errors.New("pdf file not found")

// Converter turns an exam PDF into questions.json.
type Converter struct {
	Extractor    Extractor
	Log          *zap.Logger
	BaseDir      string // relative paths resolve against it; "" means the working directory
	DefaultInput string
	RawTextPath  string
	OutputPath   string
}

// Report summarizes one conversion run.
type Report struct {
	InputPath   string
	RawTextPath string
	OutputPath  string
	TextLength  int
	Candidates  int
	Questions   []models.Question
	Issues      []models.Issue
	Written     bool // false when nothing could be parsed and no JSON was written
}

// ResolveInput picks the positional argument, or the default input, and makes
// a relative path absolute against BaseDir.
func (cv *Converter) ResolveInput(arg string) string {
	p := arg
	if p == "" {
		p = cv.DefaultInput
	}
	return cv.resolve(p)
}

func (cv *Converter) resolve(p string) string {
	if filepath.IsAbs(p) || cv.BaseDir == "" {
		return p
	}
	return filepath.Join(cv.BaseDir, p)
}

// Convert extracts, parses, and writes the raw text and the question JSON.
// It fails with ErrInputNotFound before doing anything else when the PDF is missing.
func (cv *Converter) Convert(ctx context.Context, arg string) (*Report, error) {
	report := &Report{
		InputPath:   cv.ResolveInput(arg),
		RawTextPath: cv.resolve(cv.RawTextPath),
		OutputPath:  cv.resolve(cv.OutputPath),
	}
	if _, err := os.Stat(report.InputPath); err != nil {
		return report, fmt.Errorf("%w: %s: %w", ErrInputNotFound, report.InputPath, err)
	}
	if cv.Extractor == nil {
		return report, ErrNoExtractor
	}

	cv.Log.Info("reading PDF", zap.String("path", report.InputPath), zap.String("extractor", cv.Extractor.Name()))
	text, err := cv.Extractor.Extract(ctx, report.InputPath)
	if err != nil {
		return report, fmt.Errorf("failed to extract text from %s: %w", report.InputPath, err)
	}
	report.TextLength = len(text)
	cv.Log.Info("extracted text", zap.Int("length", report.TextLength), zap.String("preview", preview(text, previewLength)))

	if err := writeFile(report.RawTextPath, []byte(text)); err != nil {
		return report, fmt.Errorf("failed to save raw text: %w", err)
	}
	cv.Log.Info("raw text saved", zap.String("path", report.RawTextPath))

	parsed := ParseQuestions(text)
	report.Candidates = parsed.Candidates
	report.Questions = parsed.Questions
	report.Issues = parsed.Issues
	for _, issue := range report.Issues {
		cv.Log.Warn("conversion issue",
			zap.Int("line", issue.Line),
			zap.String("severity", string(issue.Severity)),
			zap.String("field", issue.Field),
			zap.String("message", issue.Message),
			zap.String("suggested_fix", issue.SuggestedFix))
	}

	if len(report.Questions) == 0 {
		cv.Log.Warn("automatic parsing found no questions", zap.Int("candidates", report.Candidates))
		return report, nil
	}

	data, err := store.EncodeQuestions(report.Questions)
	if err != nil {
		return report, err
	}
	if err := writeFile(report.OutputPath, data); err != nil {
		return report, fmt.Errorf("failed to save questions: %w", err)
	}
	report.Written = true
	cv.Log.Info("questions saved",
		zap.String("path", report.OutputPath),
		zap.Int("questions", len(report.Questions)),
		zap.Int("candidates", report.Candidates))
	return report, nil
}

// Publish replaces the questions table with the report's questions and records its issues.
func Publish(ctx context.Context, pool *pgxpool.Pool, report *Report, log *zap.Logger) error {
	if err := db.CreateSchema(ctx, pool); err != nil {
		return err
	}
	if err := store.ValidateQuestions(report.Questions); err != nil {
		return fmt.Errorf("refusing to publish: %w", err)
	}
	if err := db.ReplaceQuestions(ctx, pool, report.Questions); err != nil {
		return err
	}
	for _, issue := range report.Issues {
		db.LogImportIssue(ctx, pool, log, report.InputPath, issue)
	}
	log.Info("questions published to database", zap.Int("questions", len(report.Questions)), zap.Int("issues", len(report.Issues)))
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func preview(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n])
}
