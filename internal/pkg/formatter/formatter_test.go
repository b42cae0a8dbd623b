package formatter

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/m-mizutani/gt"
)

func TestSplitParagraphs(t *testing.T) {
	got := splitParagraphs("  first line\nstill first  \n\n\n\nsecond\n\n   \n\nthird ")
	gt.Value(t, got).Equal([]string{"first line\nstill first", "second", "third"})

	gt.Array(t, splitParagraphs("")).Length(0)
	gt.Array(t, splitParagraphs("\n\n  \n\n")).Length(0)
}

func TestFactoryCreate(t *testing.T) {
	f := NewFactory(true)
	gt.Value(t, f.Formats()).Equal([]entity.ResultFormat{entity.FormatPDF, entity.FormatDOCX, entity.FormatMarkdown})

	for format, ext := range map[entity.ResultFormat]string{
		entity.FormatPDF:      ".pdf",
		entity.FormatDOCX:     ".docx",
		entity.FormatMarkdown: ".md",
	} {
		fmtr, err := f.Create(format)
		gt.NoError(t, err).Required()
		gt.Value(t, fmtr.FileExtension()).Equal(ext)
	}

	_, err := f.Create(entity.ResultFormat("html"))
	gt.Value(t, err).NotNil()
}

func TestFactoryWithoutDOCX(t *testing.T) {
	f := NewFactory(false)
	gt.Value(t, f.Formats()).Equal([]entity.ResultFormat{entity.FormatPDF, entity.FormatMarkdown})

	_, err := f.Create(entity.FormatDOCX)
	gt.Value(t, err).NotNil()

	fmtr, err := f.Create(entity.FormatPDF)
	gt.NoError(t, err).Required()
	gt.Value(t, fmtr.FileExtension()).Equal(".pdf")

	// callers get a copy
	formats := f.Formats()
	formats[0] = entity.FormatDOCX
	gt.Value(t, f.Formats()[0]).Equal(entity.FormatPDF)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format("Explain recursion", "Recursion is...\n\nA function calls itself.\n\n")
	gt.NoError(t, err).Required()

	want := "# AI Tutor Session Summary\n\n" +
		"## Question Asked:\n\nExplain recursion\n\n" +
		"## AI Tutor Response:\n\n" +
		"Recursion is...\n\n" +
		"A function calls itself.\n"
	gt.Value(t, string(out)).Equal(want)
}

// pdfText is how gofpdf writes s into a content stream for an embedded UTF-8 font
func pdfText(s string) string {
	var b strings.Builder
	for _, u := range utf16.Encode([]rune(s)) {
		b.WriteByte(byte(u >> 8))
		b.WriteByte(byte(u))
	}
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r", `\r`).Replace(b.String())
}

func TestPDFFormatter(t *testing.T) {
	fmtr := &PDFFormatter{compress: false}

	out, err := fmtr.Format("Explain recursion", "Recursion is...\n\nA function calls itself.")
	gt.NoError(t, err).Required()
	gt.Bool(t, bytes.HasPrefix(out, []byte("%PDF-"))).True()

	text := string(out)
	for _, want := range []string{"AI Tutor Session Summary", "Question Asked:", "Explain recursion", "AI Tutor Response:", "Recursion is...", "A function calls itself."} {
		gt.Bool(t, strings.Contains(text, pdfText(want))).True()
	}
	gt.String(t, text).Contains("/FontFile2")
	gt.String(t, text).Contains("/Encoding /Identity-H")
	gt.Value(t, fmtr.ContentType()).Equal("application/pdf")
}

func TestPDFFormatterKeepsNonLatinText(t *testing.T) {
	fmtr := &PDFFormatter{compress: false}

	question := "Что такое рекурсия? Ελληνικά (日本語)"
	answer := "Рекурсия: функция вызывает саму себя.\n\n⚠️ **Quota Exceeded** 💡"
	out, err := fmtr.Format(question, answer)
	gt.NoError(t, err).Required()
	gt.Bool(t, bytes.HasPrefix(out, []byte("%PDF-"))).True()

	text := string(out)
	for _, want := range []string{question, "Рекурсия: функция вызывает саму себя.", "⚠️ **Quota Exceeded** \uFFFD"} {
		gt.Bool(t, strings.Contains(text, pdfText(want))).True()
	}
	gt.Bool(t, strings.Contains(text, "(... ..... ........?")).False()
}

func TestPDFFormatterDoesNotDependOnWorkingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := NewPDFFormatter().Format("Что такое рекурсия?", "Ответ.")
	gt.NoError(t, err).Required()
	gt.Bool(t, bytes.HasPrefix(out, []byte("%PDF-"))).True()
	gt.Bool(t, bytes.Contains(out, []byte("/FontFile2"))).True()
}

func TestPDFFormatterLongAnswerPaginates(t *testing.T) {
	fmtr := &PDFFormatter{compress: false}

	answer := strings.Repeat("A long paragraph about recursion that keeps going and going.\n\n", 200)
	out, err := fmtr.Format("Explain recursion", answer)
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Count(string(out), "/Type /Page\n") > 1).True()
}
