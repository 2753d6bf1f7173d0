// Package export renders concepts into downloadable documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"gameforge-server/internal/models"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// ConceptPDF renders a concept as a two-page A4 document: brief and
// narrative on page one, characters and locations on page two.
func ConceptPDF(concept *models.Concept) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(fmt.Sprintf("%s (%s)", concept.Title, concept.Genre)), "", "L", false)
	pdf.Ln(2)

	writeField(pdf, tr, "Ambiance", concept.Ambiance)
	writeField(pdf, tr, "Mots-clés", concept.Keywords)
	writeField(pdf, tr, "Références", concept.References)
	pdf.Ln(4)

	writeSection(pdf, tr, "Univers", concept.UniverseText)
	writeSection(pdf, tr, "Scénario - Acte I", concept.Act1Text)
	writeSection(pdf, tr, "Scénario - Acte II", concept.Act2Text)
	writeSection(pdf, tr, "Scénario - Acte III", concept.Act3Text)
	writeSection(pdf, tr, "Twist", concept.TwistText)

	pdf.AddPage()
	writeList(pdf, tr, "Personnages", concept.Characters)
	pdf.Ln(4)
	writeList(pdf, tr, "Lieux", concept.Locations)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render concept PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// writeField prints a one-line labeled brief field, with "-" for blanks.
func writeField(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	if value == "" {
		value = "-"
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(35, lineHeight, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, lineHeight, tr(value), "", "L", false)
}

// writeSection prints a titled narrative block with wrapped body text.
func writeSection(pdf *fpdf.Fpdf, tr func(string) string, title, body string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, tr(title), "", "L", false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, lineHeight, tr(body), "", "L", false)
	pdf.Ln(3)
}

// writeList prints a titled bullet list.
func writeList(pdf *fpdf.Fpdf, tr func(string) string, title string, items []string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, tr(title), "", "L", false)
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.MultiCell(0, lineHeight, tr("- "+item), "", "L", false)
	}
}
