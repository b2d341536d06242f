package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"mcq-server/models"
)

var (
	ErrMalformed      = errors.New("malformed question payload")
	ErrInvalidRecords = errors.New("invalid question records")
)

// State of the one-shot question load.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateEmpty   State = "empty"
	StateFailed  State = "failed"
)

// Snapshot is a consistent view of the store.
type Snapshot struct {
	State     State
	Questions []models.Question
	Err       error
}

// Count is the number of loaded questions.
func (s Snapshot) Count() int { return len(s.Questions) }

// Store holds the question list after it has been loaded once.
// Questions never change after the load finishes.
type Store struct {
	source Source
	log    *zap.Logger

	once sync.Once
	done chan struct{}

	mu        sync.RWMutex
	state     State
	questions []models.Question
	err       error
}

func New(source Source, log *zap.Logger) *Store {
	return &Store{
		source: source,
		log:    log,
		done:   make(chan struct{}),
		state:  StateLoading,
	}
}

// Load fetches and validates the questions. Only the first call does any work;
// later calls wait for it and return the same result.
func (s *Store) Load(ctx context.Context) error {
	s.once.Do(func() {
		defer close(s.done)
		s.publish(s.fetch(ctx))
	})
	<-s.done
	return s.Snapshot().Err
}

// LoadAsync starts Load in the background and returns immediately.
func (s *Store) LoadAsync(ctx context.Context) {
	go func() {
		_ = s.Load(ctx)
	}()
}

// Done is closed once the load has finished, whatever its outcome.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

func (s *Store) fetch(ctx context.Context) ([]models.Question, error) {
	s.log.Info("loading questions", zap.String("source", s.source.Describe()))
	questions, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *Store) publish(questions []models.Question, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err != nil:
		s.state = StateFailed
		s.err = err
		s.log.Error("question load failed", zap.String("source", s.source.Describe()), zap.Error(err))
	case len(questions) == 0:
		s.state = StateEmpty
		s.log.Warn("question source is empty", zap.String("source", s.source.Describe()))
	default:
		s.state = StateReady
		s.questions = questions
		s.log.Info("questions loaded", zap.String("source", s.source.Describe()), zap.Int("count", len(questions)))
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, Questions: s.questions, Err: s.err}
}

// Questions returns the loaded list, or nil unless the store is ready.
func (s *Store) Questions() []models.Question {
	snap := s.Snapshot()
	if snap.State != StateReady {
		return nil
	}
	return snap.Questions
}
