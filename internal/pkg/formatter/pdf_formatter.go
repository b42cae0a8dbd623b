package formatter

import (
	"bytes"
	_ "embed"
	"strings"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Letter page with one inch side and top margins
	pdfMargin       = 72.0
	pdfBottomMargin = 18.0
)

// The fonts ship inside the binary so exports do not depend on the working directory.
var (
	//go:embed ttf/DejaVuSans.ttf
	dejaVuSans []byte

	//go:embed ttf/DejaVuSans-Bold.ttf
	dejaVuSansBold []byte
)

type PDFFormatter struct {
	compress bool
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{compress: true}
}

func (mf *PDFFormatter) Format(question, answer string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfBottomMargin)
	pdf.SetCompression(mf.compress)
	pdf.AddUTF8FontFromBytes(pdfFontName, "", dejaVuSans)
	pdf.AddUTF8FontFromBytes(pdfFontName, "B", dejaVuSansBold)
	pdf.AddPage()

	heading := func(text string, size float64) {
		pdf.SetFont(pdfFontName, "B", size)
		pdf.MultiCell(0, size*1.2, basicPlane(text), "", "L", false)
		pdf.Ln(size / 2)
	}
	paragraph := func(text string, spaceAfter float64) {
		pdf.SetFont(pdfFontName, "", 11)
		_, lineHeight := pdf.GetFontSize()
		pdf.MultiCell(0, lineHeight*1.4, basicPlane(text), "", "L", false)
		pdf.Ln(spaceAfter)
	}

	heading(baseTitle, 20)
	pdf.Ln(12)
	heading(questionHeading, 14)
	paragraph(question, 12)
	heading(answerHeading, 14)
	for _, p := range splitParagraphs(answer) {
		paragraph(p, 6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// basicPlane replaces characters above U+FFFF, which gofpdf cannot encode
// (most emoji), with the replacement character.
func basicPlane(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return utf8.RuneError
		}
		return r
	}, s)
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
