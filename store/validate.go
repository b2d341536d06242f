package store

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"mcq-server/models"
	"mcq-server/utils"
)

// ValidateQuestions checks every record and reports all violations together.
func ValidateQuestions(questions []models.Question) error {
	var result *multierror.Error
	seen := make(map[int]int, len(questions))
	for i, q := range questions {
		if err := utils.ValidateStruct(q); err != nil {
			result = multierror.Append(result, fmt.Errorf("question #%d (id %d): %w", i+1, q.ID, err))
		}
		if first, dup := seen[q.ID]; dup {
			result = multierror.Append(result, fmt.Errorf("question #%d: duplicate id %d, first used by question #%d", i+1, q.ID, first+1))
			continue
		}
		seen[q.ID] = i
	}
	if result != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecords, result.ErrorOrNil())
	}
	return nil
}
