package keyboard

import (
	"slices"

	"github.com/futig/ai-tutor/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback actions
const (
	ActionDownload = "dl"
	ActionHistory  = "history"
	ActionClear    = "clear"
)

var formatLabels = map[entity.ResultFormat]string{
	entity.FormatPDF:      "📄 PDF",
	entity.FormatDOCX:     "📝 DOCX",
	entity.FormatMarkdown: "Ⓜ️ Markdown",
}

// Builder creates inline keyboards
type Builder struct {
	formats []entity.ResultFormat
}

// NewBuilder creates a keyboard builder offering downloads in formats
func NewBuilder(formats []entity.ResultFormat) *Builder {
	return &Builder{formats: formats}
}

// Offers reports whether the download buttons include format
func (b *Builder) Offers(format entity.ResultFormat) bool {
	return slices.Contains(b.formats, format)
}

// AnswerKeyboard is attached under every answer
func (b *Builder) AnswerKeyboard() tgbotapi.InlineKeyboardMarkup {
	var downloads []tgbotapi.InlineKeyboardButton
	for _, f := range b.formats {
		label, ok := formatLabels[f]
		if !ok {
			continue
		}
		downloads = append(downloads, tgbotapi.NewInlineKeyboardButtonData(label, EncodeCallback(ActionDownload, string(f))))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(downloads...),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 History", EncodeCallback(ActionHistory, "")),
			tgbotapi.NewInlineKeyboardButtonData("🧹 Clear", EncodeCallback(ActionClear, "")),
		),
	)
}
