package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/futig/ai-tutor/internal/entity"
)

const (
	baseTitle        = "AI Tutor Session Summary"
	questionHeading  = "Question Asked:"
	answerHeading    = "AI Tutor Response:"
	paragraphDivider = "\n\n"
)

// Formatter renders one question and its answer into a downloadable document
type Formatter interface {
	Format(question, answer string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// Factory hands out formatters for the enabled formats
type Factory struct {
	formats []entity.ResultFormat
}

// NewFactory enables PDF and Markdown. DOCX is added only when docxEnabled:
// unioffice refuses to save a document until a license key has been applied.
func NewFactory(docxEnabled bool) *Factory {
	formats := []entity.ResultFormat{entity.FormatPDF}
	if docxEnabled {
		formats = append(formats, entity.FormatDOCX)
	}
	formats = append(formats, entity.FormatMarkdown)
	return &Factory{formats: formats}
}

// Formats lists the enabled formats in the order they are offered to users
func (f *Factory) Formats() []entity.ResultFormat {
	return slices.Clone(f.formats)
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	if !slices.Contains(f.formats, format) {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// splitParagraphs breaks answer on blank lines, trimming each chunk and dropping empty ones
func splitParagraphs(answer string) []string {
	var paragraphs []string
	for _, p := range strings.Split(answer, paragraphDivider) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
