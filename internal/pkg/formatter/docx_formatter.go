package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(question, answer string) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	addStyled(doc, "Title", baseTitle)
	addStyled(doc, "Heading2", questionHeading)
	addStyled(doc, "", question)
	addStyled(doc, "Heading2", answerHeading)
	for _, p := range splitParagraphs(answer) {
		addStyled(doc, "", p)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addStyled(doc *document.Document, style, text string) {
	par := doc.AddParagraph()
	if style != "" {
		par.SetStyle(style)
	}
	par.AddRun().AddText(text)
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
