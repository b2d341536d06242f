package exam

import "strconv"

const (
	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
	KeyEnter     = "Enter"
)

// PressKey applies a browser key event to the current question.
// Digits pick an option, arrows move the selection, Enter submits.
// Keys are ignored once the answer is submitted, and unknown keys are ignored.
func (s *Session) PressKey(key string) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.submitted {
		return nil
	}
	optionCount := len(s.Current().Options)

	switch key {
	case "1", "2", "3", "4":
		n, _ := strconv.Atoi(key)
		if n-1 < optionCount {
			return s.SelectOption(n - 1)
		}
	case KeyArrowDown, KeyArrowUp:
		if s.selected == nil {
			return s.SelectOption(0)
		}
		next := *s.selected
		if key == KeyArrowDown {
			next = min(next+1, optionCount-1)
		} else {
			next = max(next-1, 0)
		}
		return s.SelectOption(next)
	case KeyEnter:
		return s.SubmitAnswer()
	}
	return nil
}
