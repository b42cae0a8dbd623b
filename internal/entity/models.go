package entity

import "time"

// DefaultRecentWindow is how many records the history view shows by default
const DefaultRecentWindow = 5

// QARecord is one question and the text shown as its answer.
// Records are never mutated after they are appended to a session log.
type QARecord struct {
	Question string
	Answer   string
}

// AnswerKind tags the outcome of a single ask
type AnswerKind string

const (
	AnswerKindOK           AnswerKind = "ok"
	AnswerKindValidation   AnswerKind = "validation"   // Question too short, no outbound call made
	AnswerKindCredential   AnswerKind = "credential"   // Invalid or missing API key
	AnswerKindQuota        AnswerKind = "quota"        // Usage limit exceeded
	AnswerKindRateLimited  AnswerKind = "rate_limited" // Too many requests
	AnswerKindUnclassified AnswerKind = "unclassified" // Any other endpoint failure
)

// AnswerResult is either a model answer (Kind == AnswerKindOK) or a rejection
// whose Text is the human readable message to display instead.
type AnswerResult struct {
	Kind AnswerKind
	Text string
}

func (r AnswerResult) OK() bool {
	return r.Kind == AnswerKindOK
}

// String returns the text to show the user
func (r AnswerResult) String() string {
	return r.Text
}

// SessionSnapshot is a read-only view of a session used by presentation layers
type SessionSnapshot struct {
	ID              string
	CurrentQuestion string
	CurrentAnswer   string
	HistorySize     int
	CreatedAt       time.Time
}

// NumberedRecord is a history entry labelled with its 1-based position in the full log
type NumberedRecord struct {
	Number int
	QARecord
}
