package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/labstack/gommon/log"
	"github.com/nsip/otf-marksheet/internal/grade"
	"github.com/nsip/otf-marksheet/internal/photo"
	"github.com/pkg/errors"
)

const pdfMIME = "application/pdf"

// page geometry, in mm
const (
	pageMargin   = 20.0
	contentWidth = 210.0 - 2*pageMargin
	photoEdge    = 38.1 // 1.5in
	panelPad     = 3.5
	cardGap      = 2.0
	cardHeight   = 26.0
)

type rgb struct{ r, g, b int }

var (
	navy      = rgb{0x1a, 0x23, 0x7e}
	indigo    = rgb{0x5c, 0x6b, 0xc0}
	ink       = rgb{0x42, 0x42, 0x42}
	panelGrey = rgb{0xf5, 0xf5, 0xf5}
	gridGrey  = rgb{0xe0, 0xe0, 0xe0}
	white     = rgb{0xff, 0xff, 0xff}
)

var (
	tableHeaders = []string{"Subject", "Obtained", "Total", "Percentage", "Grade"}
	tableWidths  = []float64{60, 28, 28, 28, 26}
)

//
// PDF renders the printable result card: title, identity
// panel with optional photo, subject table and an overall
// performance summary.
//
type PDF struct {
	// thumbnail edge in pixels for the embedded photo
	PhotoSize int
	// leave page streams uncompressed
	Uncompressed bool
	// document creation time, now when zero
	CreatedAt time.Time
}

func (*PDF) Format() string { return "pdf" }

func (p *PDF) Export(r Report) (Payload, error) {

	results, overall := grade.ComputeResults(r.Subjects)
	filename := Filename(r.Identity.RollNo, p.Format())

	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.SetCompression(!p.Uncompressed)
	doc.SetCreationDate(created)
	doc.SetTitle("Student Result Card", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()

	setText(doc, navy)
	doc.SetFont("Helvetica", "B", 24)
	doc.CellFormat(0, 12, tr("STUDENT RESULT CARD"), "", 1, "C", false, 0, "")
	doc.Ln(8)

	p.identityPanel(doc, tr, r, filename)
	doc.Ln(8)

	sectionHeader(doc, tr("Academic Performance"))
	subjectTable(doc, tr, results)
	doc.Ln(8)

	sectionHeader(doc, tr("Overall Performance"))
	overallCards(doc, tr, overall)
	doc.Ln(8)

	setText(doc, navy)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Remarks:"), "", 1, "L", false, 0, "")
	setText(doc, ink)
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, tr(overall.Remarks), "", 1, "L", false, 0, "")

	buf := new(bytes.Buffer)
	if err := doc.Output(buf); err != nil {
		return Payload{}, errors.Wrap(err, "cannot build pdf result")
	}

	return Payload{
		Data:     buf.Bytes(),
		Filename: filename,
		MIMEType: pdfMIME,
	}, nil
}

//
// grey panel with the photo on the left (when there is a usable
// one) and the identity lines beside it. a photo that cannot be
// decoded is logged and left out.
//
func (p *PDF) identityPanel(doc *fpdf.Fpdf, tr func(string) string, r Report, filename string) {

	x, y := doc.GetXY()
	panelHeight := photoEdge + 2*panelPad

	setFill(doc, panelGrey)
	doc.Rect(x, y, contentWidth, panelHeight, "F")

	textX := x + panelPad
	if len(r.Photo) > 0 {
		if p.embedPhoto(doc, r.Photo, x+panelPad, y+panelPad, filename) {
			textX = x + photoEdge + 3*panelPad
		}
	}

	doc.SetXY(textX, y+panelPad+2)
	setText(doc, navy)
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 9, tr(strings.ToUpper(r.Identity.Name)), "", 2, "L", false, 0, "")

	setText(doc, ink)
	doc.SetFont("Helvetica", "", 14)
	for _, line := range []string{
		"Roll Number: " + r.Identity.RollNo,
		"Class: " + r.Identity.Class,
		"Academic Year: " + r.Identity.AcademicYear,
	} {
		doc.CellFormat(0, 8, tr(line), "", 2, "L", false, 0, "")
	}

	doc.SetXY(x, y+panelHeight)
}

func (p *PDF) embedPhoto(doc *fpdf.Fpdf, blob []byte, x, y float64, filename string) bool {

	thumb, err := photo.Normalize(blob, p.PhotoSize)
	if err != nil {
		log.Warnf("%s: photo omitted: %v", filename, err)
		return false
	}

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	doc.RegisterImageOptionsReader("photo", opts, bytes.NewReader(thumb))
	if !doc.Ok() {
		log.Warnf("%s: photo omitted: %v", filename, doc.Error())
		doc.ClearError()
		return false
	}
	doc.ImageOptions("photo", x, y, photoEdge, photoEdge, false, opts, 0, "")

	return true
}

func subjectTable(doc *fpdf.Fpdf, tr func(string) string, results []grade.SubjectResult) {

	setDraw(doc, gridGrey)
	doc.SetLineWidth(0.2)

	setFill(doc, navy)
	setText(doc, white)
	doc.SetFont("Helvetica", "B", 12)
	for i, h := range tableHeaders {
		doc.CellFormat(tableWidths[i], 10, tr(h), "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	setText(doc, ink)
	doc.SetFont("Helvetica", "", 10)
	for n, res := range results {
		if n%2 == 0 {
			setFill(doc, panelGrey)
		} else {
			setFill(doc, white)
		}
		row := []string{
			res.Subject,
			formatMarks(res.ObtainedMarks),
			formatMarks(res.TotalMarks),
			fmt.Sprintf("%.1f%%", res.Percentage),
			res.Grade,
		}
		for i, cell := range row {
			doc.CellFormat(tableWidths[i], 9, tr(cell), "1", 0, "C", true, 0, "")
		}
		doc.Ln(-1)
	}
}

func overallCards(doc *fpdf.Fpdf, tr func(string) string, overall grade.OverallResult) {

	cards := []struct{ label, value string }{
		{"Total Score", formatMarks(overall.TotalObtained) + "/" + formatMarks(overall.TotalMarks)},
		{"Percentage", fmt.Sprintf("%.1f%%", overall.Percentage)},
		{"Grade", overall.Grade},
	}

	x, y := doc.GetXY()
	w := (contentWidth - 2*cardGap) / float64(len(cards))

	for i, c := range cards {
		cx := x + float64(i)*(w+cardGap)

		setFill(doc, panelGrey)
		doc.Rect(cx, y, w, cardHeight, "F")

		doc.SetXY(cx, y+4)
		setText(doc, navy)
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(w, 7, tr(c.label), "", 2, "C", false, 0, "")

		doc.SetXY(cx, y+14)
		setText(doc, ink)
		doc.SetFont("Helvetica", "", 14)
		doc.CellFormat(w, 8, tr(c.value), "", 0, "C", false, 0, "")
	}

	doc.SetXY(x, y+cardHeight)
}

func sectionHeader(doc *fpdf.Fpdf, title string) {
	setText(doc, indigo)
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, title, "", 1, "L", false, 0, "")
	doc.Ln(2)
}

func setText(doc *fpdf.Fpdf, c rgb) { doc.SetTextColor(c.r, c.g, c.b) }
func setFill(doc *fpdf.Fpdf, c rgb) { doc.SetFillColor(c.r, c.g, c.b) }
func setDraw(doc *fpdf.Fpdf, c rgb) { doc.SetDrawColor(c.r, c.g, c.b) }
