package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"mcq-server/models"
	"mcq-server/utils"
)

var (
	questionPattern = regexp.MustCompile(`^\d+[.)]\s+`)
	optionPattern   = regexp.MustCompile(`(?i)^[a-d][)\]]\s*`)
	answerPattern   = regexp.MustCompile(`(?i)✅?\s*Answer:\s*[a-d]`)
	answerLetter    = regexp.MustCompile(`(?i)Answer:\s*([a-d])`)
)

// ParseResult is what the line heuristic recovered from the extracted text.
type ParseResult struct {
	Questions  []models.Question
	Issues     []models.Issue
	Candidates int // question starts seen, kept or not
}

type candidate struct {
	question  models.Question
	line      int
	hasAnswer bool
}

// ParseQuestions applies the line heuristic to extracted PDF text.
//
// Each trimmed, non-blank line is classified in priority order: a numbered
// line ("12. ", "12) ") opens a new question; with a question open, "a)".."d)"
// (or "a]") adds an option and "Answer: x" sets the answer; anything else is
// appended to the question text until the first option, then to the last
// option. Candidate ids count from 1 in order of appearance, and only
// candidates with exactly four options are kept, so ids can have gaps.
func ParseQuestions(text string) ParseResult {
	var (
		res     ParseResult
		current *candidate
		nextID  = 1
	)

	closeCandidate := func() {
		if current == nil {
			return
		}
		res.Issues = append(res.Issues, current.issues()...)
		if len(current.question.Options) == models.OptionsPerQuestion {
			res.Questions = append(res.Questions, current.question)
		}
		current = nil
	}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 1

		switch {
		case questionPattern.MatchString(line):
			closeCandidate()
			res.Candidates++
			current = &candidate{
				question: models.Question{
					ID:       nextID,
					Question: questionPattern.ReplaceAllString(line, ""),
					Options:  []string{},
				},
				line: lineNo,
			}
			nextID++
		case current != nil && optionPattern.MatchString(line):
			current.question.Options = append(current.question.Options, optionPattern.ReplaceAllString(line, ""))
		case current != nil && answerPattern.MatchString(line):
			if m := answerLetter.FindStringSubmatch(line); m != nil {
				current.question.AnswerIndex = utils.LetterIndex(m[1])
				current.hasAnswer = true
			}
		case current != nil:
			q := &current.question
			if n := len(q.Options); n == 0 {
				q.Question = strings.TrimSpace(q.Question + " " + line)
			} else {
				q.Options[n-1] = strings.TrimSpace(q.Options[n-1] + " " + line)
			}
		}
	}
	closeCandidate()

	return res
}

func (c *candidate) issues() []models.Issue {
	id := c.question.ID
	if n := len(c.question.Options); n != models.OptionsPerQuestion {
		return []models.Issue{{
			Line:         c.line,
			Severity:     models.SeverityError,
			Field:        "options",
			Message:      fmt.Sprintf("question %d has %d options, expected %d; dropped", id, n, models.OptionsPerQuestion),
			SuggestedFix: "Put each option on its own line starting with a), b), c) or d), then add the question to questions.json by hand",
		}}
	}
	if !c.hasAnswer {
		return []models.Issue{{
			Line:         c.line,
			Severity:     models.SeverityWarning,
			Field:        "answerIndex",
			Message:      fmt.Sprintf("question %d has no Answer line; answerIndex defaults to 0 (option A)", id),
			SuggestedFix: `Add a line such as "Answer: b" after the options, or fix answerIndex in questions.json`,
		}}
	}
	return nil
}
