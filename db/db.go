package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mcq-server/models"
)

// InitDB initializes the PostgreSQL connection pool and verifies it with a ping.
func InitDB(ctx context.Context, connString string, log *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("connected to PostgreSQL")
	return pool, nil
}

// CreateSchema sets up the question bank tables.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS questions (
		id INT PRIMARY KEY,
		position INT NOT NULL,
		question_text TEXT NOT NULL,
		options TEXT[] NOT NULL CHECK (cardinality(options) = 4),
		answer_index INT NOT NULL CHECK (answer_index BETWEEN 0 AND 3),
		imported_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS import_issues (
		id SERIAL PRIMARY KEY,
		timestamp TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		source_file TEXT NOT NULL,
		line_number INT,
		severity VARCHAR(16) NOT NULL,
		field_name TEXT,
		error_message TEXT NOT NULL,
		suggested_fix TEXT
	);
	`
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}
	return nil
}

// LoadQuestions returns the stored questions in their import order.
func LoadQuestions(ctx context.Context, pool *pgxpool.Pool) ([]models.Question, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, question_text, options, answer_index
		FROM questions
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Options, &q.AnswerIndex); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	return questions, nil
}

// ReplaceQuestions swaps the whole question bank in one transaction.
func ReplaceQuestions(ctx context.Context, pool *pgxpool.Pool, questions []models.Question) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if _, err := tx.Exec(ctx, "DELETE FROM questions"); err != nil {
		return fmt.Errorf("failed to clear questions: %w", err)
	}

	batch := &pgx.Batch{}
	for i, q := range questions {
		batch.Queue(`
			INSERT INTO questions (id, position, question_text, options, answer_index)
			VALUES ($1, $2, $3, $4, $5)
		`, q.ID, i, q.Question, q.Options, q.AnswerIndex)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert questions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit questions: %w", err)
	}
	return nil
}

// LogImportIssue adds an entry to the import_issues table. Failures are only logged.
func LogImportIssue(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger, sourceFile string, issue models.Issue) {
	_, err := pool.Exec(ctx, `
		INSERT INTO import_issues (source_file, line_number, severity, field_name, error_message, suggested_fix)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sourceFile, issue.Line, string(issue.Severity), issue.Field, issue.Message, issue.SuggestedFix)
	if err != nil {
		log.Error("failed to record import issue",
			zap.Error(err),
			zap.String("source_file", sourceFile),
			zap.Int("line", issue.Line),
			zap.String("issue", issue.Message))
	}
}
