package render_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/telegram/render"
	"github.com/m-mizutani/gt"
)

func TestFormatHistory(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		gt.Value(t, render.FormatHistory(nil)).Equal(render.MsgHistoryEmpty)
	})

	t.Run("numbered newest first", func(t *testing.T) {
		got := render.FormatHistory([]entity.NumberedRecord{
			{Number: 7, QARecord: entity.QARecord{Question: "What is a monad?", Answer: "A monoid."}},
			{Number: 6, QARecord: entity.QARecord{Question: "What is Go?", Answer: "A language."}},
		})

		want := render.MsgHistoryHeader +
			"\n\n7. What is a monad?\n💬 A monoid." +
			"\n\n6. What is Go?\n💬 A language."
		gt.Value(t, got).Equal(want)
	})
}

func TestPreview(t *testing.T) {
	short := "Explain recursion"
	gt.Value(t, render.Preview(short)).Equal(short)

	long := strings.Repeat("ж", 60)
	got := render.Preview(long)
	gt.Value(t, got).Equal(strings.Repeat("ж", 50) + "...")
}

func TestSplitMessage(t *testing.T) {
	t.Run("short text is one part", func(t *testing.T) {
		gt.Array(t, render.SplitMessage("hello", 10)).Length(1)
	})

	t.Run("cuts at paragraph breaks", func(t *testing.T) {
		text := "first paragraph\n\nsecond paragraph"
		parts := render.SplitMessage(text, 20)
		gt.Array(t, parts).Length(2).Required()
		gt.Value(t, parts[0]).Equal("first paragraph")
		gt.Value(t, parts[1]).Equal("second paragraph")
	})

	t.Run("hard cut without breaks", func(t *testing.T) {
		text := strings.Repeat("a", 25)
		parts := render.SplitMessage(text, 10)
		gt.Array(t, parts).Length(3).Required()
		for _, p := range parts {
			gt.Bool(t, utf8.RuneCountInString(p) <= 10).True()
		}
		gt.Value(t, strings.Join(parts, "")).Equal(text)
	})

	t.Run("counts emoji as two units", func(t *testing.T) {
		text := strings.Repeat("😀", 30)
		parts := render.SplitMessage(text, 10)
		gt.Array(t, parts).Length(6).Required()
		for _, p := range parts {
			gt.Bool(t, len(utf16.Encode([]rune(p))) <= 10).True()
			gt.Bool(t, utf8.ValidString(p)).True()
		}
		gt.Value(t, strings.Join(parts, "")).Equal(text)
	})

	t.Run("emoji answer near the telegram limit", func(t *testing.T) {
		text := strings.Repeat("🧠 ", 2000)
		gt.Number(t, utf8.RuneCountInString(text)).Equal(4000)

		parts := render.SplitMessage(text, render.MaxMessageLength)
		gt.Array(t, parts).Length(2).Required()
		for _, p := range parts {
			gt.Bool(t, len(utf16.Encode([]rune(p))) <= render.MaxMessageLength).True()
		}
	})
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, render.ErrGeneric},
		{"session", fmt.Errorf("get: %w", entity.ErrSessionNotFound), render.ErrSessionNotFound},
		{"no current", entity.ErrNoCurrentAnswer, render.MsgNoCurrent},
		{"export", fmt.Errorf("%w: boom", entity.ErrExportFailed), render.ErrExport},
		{"deadline", context.DeadlineExceeded, render.ErrTimeout},
		{"refused", errors.New("dial tcp: connection refused"), render.ErrServiceUnavailable},
		{"other", errors.New("boom"), render.ErrGeneric},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, render.ClassifyError(tc.err)).Equal(tc.want)
		})
	}
}
