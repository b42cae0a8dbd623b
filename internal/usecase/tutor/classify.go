package tutor

import (
	"fmt"
	"strings"

	"github.com/futig/ai-tutor/internal/entity"
)

// errorClass maps a marker found in an endpoint error message to the text shown instead.
// Order matters: the first marker found wins.
type errorClass struct {
	marker  string
	kind    entity.AnswerKind
	message string
}

var errorClasses = []errorClass{
	{marker: "API_KEY", kind: entity.AnswerKindCredential, message: MsgCredentialError},
	{marker: "QUOTA", kind: entity.AnswerKindQuota, message: MsgQuotaExceeded},
	{marker: "RATE", kind: entity.AnswerKindRateLimited, message: MsgRateLimited},
}

// Classify turns an endpoint failure into the rejection shown to the user.
// Matching is a case-insensitive substring search over err.Error().
func Classify(err error) entity.AnswerResult {
	raw := err.Error()
	upper := strings.ToUpper(raw)

	for _, c := range errorClasses {
		if strings.Contains(upper, c.marker) {
			return entity.AnswerResult{Kind: c.kind, Text: c.message}
		}
	}

	return entity.AnswerResult{
		Kind: entity.AnswerKindUnclassified,
		Text: fmt.Sprintf(msgUnclassifiedFormat, raw),
	}
}
