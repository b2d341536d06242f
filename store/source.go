package store

//go:generate mockgen -source=source.go -destination=mock/source_mock.go

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"mcq-server/db"
	"mcq-server/models"
)

// Source fetches the raw question list once.
type Source interface {
	Fetch(ctx context.Context) ([]models.Question, error)
	Describe() string
}

// FileSource reads a questions.json file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context) ([]models.Question, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return DecodeQuestions(data)
}

func (s FileSource) Describe() string { return "file " + s.Path }

// HTTPSource fetches questions.json from a URL.
type HTTPSource struct {
	URL    string
	client *req.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	client := req.C().
		SetTimeout(timeout).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)
	return &HTTPSource{URL: url, client: client}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.Question, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Cache-Control", "no-cache").
		Get(s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.URL, err)
	}
	if resp.GetStatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", s.URL, resp.GetStatusCode())
	}
	data, err := resp.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", s.URL, err)
	}
	return DecodeQuestions(data)
}

func (s *HTTPSource) Describe() string { return "http " + s.URL }

// DBSource reads the questions table.
type DBSource struct {
	Pool *pgxpool.Pool
}

func (s DBSource) Fetch(ctx context.Context) ([]models.Question, error) {
	return db.LoadQuestions(ctx, s.Pool)
}

func (s DBSource) Describe() string { return "postgres questions table" }

// DecodeQuestions parses a questions.json payload. The top level must be an array.
func DecodeQuestions(data []byte) ([]models.Question, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of questions", ErrMalformed)
	}
	var questions []models.Question
	if err := json.Unmarshal(trimmed, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return questions, nil
}

// EncodeQuestions renders questions in the questions.json layout with a 2-space indent.
func EncodeQuestions(questions []models.Question) ([]byte, error) {
	if questions == nil {
		questions = []models.Question{}
	}
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}
	return append(data, '\n'), nil
}
