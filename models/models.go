package models

// QuestionStatus is the per-question answer state shown in the navigator grid.
type QuestionStatus string

const (
	StatusUnanswered QuestionStatus = "unanswered"
	StatusCorrect    QuestionStatus = "correct"
	StatusWrong      QuestionStatus = "wrong"
	StatusSkipped    QuestionStatus = "skipped"
)

// OptionsPerQuestion is the fixed option count of every question in the store.
const OptionsPerQuestion = 4

// Question struct represents one multiple-choice question as served in questions.json.
type Question struct {
	ID          int      `json:"id"`
	Question    string   `json:"question" validate:"required"`
	Options     []string `json:"options" validate:"len=4,dive,required"`
	AnswerIndex int      `json:"answerIndex" validate:"min=0,max=3"` // zero-based index into Options
}

// UserAnswer struct represents the recorded response (or skip) for one question.
type UserAnswer struct {
	QuestionID    int            `json:"questionId"`
	SelectedIndex *int           `json:"selectedIndex"` // nil when skipped
	IsCorrect     *bool          `json:"isCorrect"`     // nil when skipped
	Status        QuestionStatus `json:"status"`
}

// ExamStats struct is derived on demand from the recorded answers.
type ExamStats struct {
	TotalQuestions    int     `json:"totalQuestions"`
	Answered          int     `json:"answered"`
	Correct           int     `json:"correct"`
	Wrong             int     `json:"wrong"`
	Skipped           int     `json:"skipped"`
	PercentageCorrect float64 `json:"percentageCorrect"`
}

// ExamMeta struct holds the optional exam.yaml that sits next to the question list.
type ExamMeta struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Author      string `yaml:"author" json:"author,omitempty"`
	Link        string `yaml:"link" json:"link,omitempty"`
}

// Phase is the coarse session state.
type Phase string

const (
	PhaseIntro      Phase = "intro"
	PhaseInProgress Phase = "in_progress"
	PhaseCompleted  Phase = "completed"
)

// GridCell is one button of the question navigator.
type GridCell struct {
	Index      int            `json:"index"`
	Number     int            `json:"number"`
	QuestionID int            `json:"questionId"`
	Status     QuestionStatus `json:"status"`
	Current    bool           `json:"current"`
}

// SessionView struct is everything the presentation layer needs to render one screen.
type SessionView struct {
	Phase           Phase       `json:"phase"`
	Meta            ExamMeta    `json:"meta"`
	Index           int         `json:"index"`
	Number          int         `json:"number"`
	Total           int         `json:"total"`
	Question        Question    `json:"question"`
	Selected        *int        `json:"selected"`
	Submitted       bool        `json:"submitted"`
	Answer          *UserAnswer `json:"answer,omitempty"`        // recorded answer for the current question
	CorrectOption   string      `json:"correctOption,omitempty"` // set only after a wrong submit
	QuitPending     bool        `json:"quitPending"`
	IsLast          bool        `json:"isLast"`
	Stats           ExamStats   `json:"stats"`
	ProgressPercent float64     `json:"progressPercent"`
	Grid            []GridCell  `json:"grid"`
}

// SelectRequest for choosing an option.
type SelectRequest struct {
	Index *int `json:"index" form:"index" binding:"required,min=0"`
}

// NavigateRequest for jumping to a question from the navigator grid.
type NavigateRequest struct {
	Index *int `json:"index" form:"index" binding:"required,min=0"`
}

// KeyRequest carries a keyboard key name as reported by the browser (e.g. "1", "ArrowDown", "Enter").
type KeyRequest struct {
	Key string `json:"key" form:"key" binding:"required,max=16"`
}

// StoreStatusResponse for GET /api/v1/store
type StoreStatusResponse struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
	Count int    `json:"count"`
}

// Severity of a conversion issue.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue represents one problem the converter found in the extracted text.
type Issue struct {
	Line         int      `json:"line"`
	Severity     Severity `json:"severity"`
	Field        string   `json:"field,omitempty"`
	Message      string   `json:"message"`
	SuggestedFix string   `json:"suggested_fix,omitempty"`
}
