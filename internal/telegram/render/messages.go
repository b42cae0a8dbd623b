package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/futig/ai-tutor/internal/entity"
)

// MaxMessageLength is the Telegram limit for a single text message (in UTF-16 code units)
const MaxMessageLength = 4096

// previewLength is how much of a question the history list shows
const previewLength = 50

const (
	// Welcome messages
	MsgWelcome = `🎓 Hi! I'm your AI Tutor.

Send me any question: a concept you are stuck on, a problem to solve step by step or code you want explained.

/history - your recent questions
/pdf - download the last answer as a PDF
/clear - clear your history
/new - start a fresh session
/help - show this help`

	MsgHelp = `🤖 Commands:

/start - Welcome message
/help - Show this help
/history - Show your last 5 questions
/pdf - Download the current question and answer as a PDF
/clear - Clear your question history
/new - End this session and start a new one

Anything else you send is treated as a question.`

	MsgHistoryEmpty   = "📭 No questions yet. Send me one!"
	MsgHistoryHeader  = "📚 Previous Questions:"
	MsgHistoryCleared = "🧹 History cleared."
	MsgNewSession     = "✨ New session started. Ask away!"
	MsgNoCurrent      = "📄 Nothing to export yet. Ask a question first."
	MsgPreparingPDF   = "📄 Preparing your PDF..."
	MsgTextOnly       = "✍️ Please send your question as text."
	MsgUnknownCommand = "❌ Unknown command. Use /help"
)

const (
	// Error messages
	ErrGeneric            = "❌ Something went wrong. Please try again."
	ErrSessionNotFound    = "❌ Session not found. Use /new to start again."
	ErrExport             = "❌ Could not create the document. Please try again."
	ErrTimeout            = "⏱ The request took too long. Please try again."
	ErrNetworkIssue       = "🌐 Network problem. Please check your connection and try again."
	ErrServiceUnavailable = "🔧 The service is temporarily unavailable. Please try again later."
)

// FormatHistory renders the recent window, newest first, labelling each
// entry with its position in the full history
func FormatHistory(items []entity.NumberedRecord) string {
	if len(items) == 0 {
		return MsgHistoryEmpty
	}

	var b strings.Builder
	b.WriteString(MsgHistoryHeader)
	for _, item := range items {
		fmt.Fprintf(&b, "\n\n%d. %s\n💬 %s", item.Number, Preview(item.Question), item.Answer)
	}
	return b.String()
}

// Preview shortens question to the first previewLength characters followed by an ellipsis
func Preview(question string) string {
	if utf8.RuneCountInString(question) <= previewLength {
		return question
	}
	return string([]rune(question)[:previewLength]) + "..."
}

// SplitMessage cuts text into parts that fit into one Telegram message.
// Length is measured in UTF-16 code units, the way Telegram counts it.
// It prefers to cut at paragraph or line breaks.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 || utf16Len(text) <= limit {
		return []string{text}
	}

	var parts []string
	for utf16Len(text) > limit {
		head := fitPrefix(text, limit)
		cut := lastBreak(text[:head])
		if cut <= 0 {
			cut = head
		}
		parts = append(parts, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// fitPrefix returns the byte length of the longest prefix of s that takes at
// most limit UTF-16 code units. It always consumes at least one rune.
func fitPrefix(s string, limit int) int {
	units := 0
	for i, r := range s {
		units += utf16.RuneLen(r)
		if units > limit {
			if i == 0 {
				_, size := utf8.DecodeRuneInString(s)
				return size
			}
			return i
		}
	}
	return len(s)
}

func lastBreak(s string) int {
	if i := strings.LastIndex(s, "\n\n"); i > 0 {
		return i
	}
	if i := strings.LastIndex(s, "\n"); i > 0 {
		return i
	}
	return -1
}

// ClassifyError analyzes an error and returns an appropriate user-friendly message
func ClassifyError(err error) string {
	if err == nil {
		return ErrGeneric
	}

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, entity.ErrNoCurrentAnswer):
		return MsgNoCurrent
	case errors.Is(err, entity.ErrExportFailed), errors.Is(err, entity.ErrInvalidFormat):
		return ErrExport
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	if strings.Contains(err.Error(), "connection refused") {
		return ErrServiceUnavailable
	}

	return ErrGeneric
}
