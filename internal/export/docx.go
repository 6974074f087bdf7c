package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/nsip/otf-marksheet/internal/grade"
	"github.com/pkg/errors"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// zip entry times are pinned so identical reports give identical files
var docxModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// letter width less 1in margins, in twentieths of a point
const docxTextWidth = 12240 - 2*1440

var docxHeaders = []string{"Subject", "Obtained Marks", "Total Marks", "Percentage", "Grade"}

//
// DOCX writes the word-processing version of the marksheet:
// identity lines, a grid table of subjects and the overall
// result. The photo is not used in this format.
//
type DOCX struct{}

func (DOCX) Format() string { return "docx" }

func (d DOCX) Export(r Report) (Payload, error) {

	results, overall := grade.ComputeResults(r.Subjects)

	body := &docxBody{}
	body.paragraph("Title", "Student Result")

	body.paragraph("Heading1", "Student Information")
	body.paragraph("", "Name: "+r.Identity.Name)
	body.paragraph("", "Roll Number: "+r.Identity.RollNo)
	body.paragraph("", "Class: "+r.Identity.Class)
	body.paragraph("", "Academic Year: "+r.Identity.AcademicYear)

	body.paragraph("Heading1", "Subject Wise Results")
	rows := [][]string{docxHeaders}
	for _, res := range results {
		rows = append(rows, []string{
			res.Subject,
			formatMarks(res.ObtainedMarks),
			formatMarks(res.TotalMarks),
			fmt.Sprintf("%.2f%%", res.Percentage),
			res.Grade,
		})
	}
	body.table(rows)

	body.paragraph("Heading1", "Overall Result")
	body.paragraph("", "Total Marks: "+formatMarks(overall.TotalObtained)+"/"+formatMarks(overall.TotalMarks))
	body.paragraph("", fmt.Sprintf("Overall Percentage: %.2f%%", overall.Percentage))
	body.paragraph("", "Overall Grade: "+overall.Grade)
	body.paragraph("", "Remarks: "+overall.Remarks)

	data, err := packageDocx(body.document())
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		Data:     data,
		Filename: Filename(r.Identity.RollNo, d.Format()),
		MIMEType: docxMIME,
	}, nil
}

//
// accumulates WordprocessingML body content
//
type docxBody struct {
	buf bytes.Buffer
}

func (b *docxBody) text(s string) {
	b.buf.WriteString(`<w:r><w:t xml:space="preserve">`)
	// writes to a bytes.Buffer cannot fail
	_ = xml.EscapeText(&b.buf, []byte(s))
	b.buf.WriteString(`</w:t></w:r>`)
}

func (b *docxBody) paragraph(style, s string) {
	b.buf.WriteString(`<w:p>`)
	if style != "" {
		fmt.Fprintf(&b.buf, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	}
	b.text(s)
	b.buf.WriteString(`</w:p>`)
}

// first row is the header row; every row must have the same width
func (b *docxBody) table(rows [][]string) {
	cols := len(rows[0])
	colWidth := docxTextWidth / cols

	b.buf.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/><w:tblLook w:val="04A0"/></w:tblPr><w:tblGrid>`)
	for i := 0; i < cols; i++ {
		fmt.Fprintf(&b.buf, `<w:gridCol w:w="%d"/>`, colWidth)
	}
	b.buf.WriteString(`</w:tblGrid>`)

	for _, row := range rows {
		b.buf.WriteString(`<w:tr>`)
		for _, cell := range row {
			fmt.Fprintf(&b.buf, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/></w:tcPr><w:p>`, colWidth)
			b.text(cell)
			b.buf.WriteString(`</w:p></w:tc>`)
		}
		b.buf.WriteString(`</w:tr>`)
	}
	b.buf.WriteString(`</w:tbl>`)
}

func (b *docxBody) document() []byte {
	var doc bytes.Buffer
	doc.WriteString(xml.Header)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	doc.Write(b.buf.Bytes())
	doc.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`)
	doc.WriteString(`</w:body></w:document>`)
	return doc.Bytes()
}

//
// zips the document part together with the fixed package
// parts word needs to open it
//
func packageDocx(document []byte) ([]byte, error) {

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(docxContentTypes)},
		{"_rels/.rels", []byte(docxRootRels)},
		{"word/_rels/document.xml.rels", []byte(docxDocumentRels)},
		{"word/styles.xml", []byte(docxStyles)},
		{"word/document.xml", document},
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: docxModTime,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "cannot add %s to docx", p.name)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, errors.Wrapf(err, "cannot write %s to docx", p.name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "cannot finish docx package")
	}

	return buf.Bytes(), nil
}

const docxContentTypes = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const docxRootRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const docxDocumentRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const docxStyles = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="200" w:line="276" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:pBdr><w:bottom w:val="single" w:sz="8" w:space="4" w:color="4F81BD"/></w:pBdr><w:spacing w:after="300"/></w:pPr>` +
	`<w:rPr><w:color w:val="17365D"/><w:spacing w:val="5"/><w:kern w:val="28"/><w:sz w:val="52"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="480" w:after="0"/><w:outlineLvl w:val="0"/></w:pPr>` +
	`<w:rPr><w:b/><w:color w:val="365F91"/><w:sz w:val="28"/></w:rPr></w:style>` +
	`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/>` +
	`<w:tblPr><w:tblInd w:w="0" w:type="dxa"/><w:tblCellMar><w:top w:w="0" w:type="dxa"/><w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>` +
	`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:basedOn w:val="TableNormal"/>` +
	`<w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr>` +
	`<w:tblPr><w:tblBorders><w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/></w:tblBorders></w:tblPr></w:style>` +
	`</w:styles>`
