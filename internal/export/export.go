//
// Package export renders a student's marksheet into downloadable
// documents. Each format is an independent Exporter over the same
// Report; none of them depends on another.
//
package export

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/nsip/otf-marksheet/internal/grade"
	"github.com/pkg/errors"
)

//
// the student's identity fields, passed through
// verbatim to every format
//
type Identity struct {
	Name         string `json:"name"`
	RollNo       string `json:"roll_no"`
	Class        string `json:"class"`
	AcademicYear string `json:"academic_year"`
}

//
// everything an exporter needs for one student.
// Photo is optional raw image bytes and is only read.
//
type Report struct {
	Identity Identity
	Subjects []grade.SubjectEntry
	Photo    []byte
}

//
// a rendered document ready for download
//
type Payload struct {
	Data     []byte
	Filename string
	MIMEType string
}

type Exporter interface {
	// short format name, also used as the file extension
	Format() string
	Export(r Report) (Payload, error)
}

var ErrUnknownFormat = errors.New("unknown export format")

//
// Registry resolves exporters by format name
//
type Registry struct {
	exporters map[string]Exporter
}

func NewRegistry(exporters ...Exporter) *Registry {
	r := &Registry{exporters: make(map[string]Exporter, len(exporters))}
	for _, e := range exporters {
		r.exporters[e.Format()] = e
	}
	return r
}

//
// the standard pdf, docx and json exporters; photoSize is the
// edge in pixels of the thumbnail embedded in the pdf
//
func DefaultRegistry(photoSize int) *Registry {
	return NewRegistry(
		&PDF{PhotoSize: photoSize},
		&DOCX{},
		&JSON{},
	)
}

func (r *Registry) Lookup(format string) (Exporter, error) {
	e, ok := r.exporters[format]
	if !ok {
		return nil, errors.Wrap(ErrUnknownFormat, format)
	}
	return e, nil
}

func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.exporters))
	for f := range r.exporters {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// result_<roll_no>.<ext>
func Filename(rollNo, ext string) string {
	return fmt.Sprintf("result_%s.%s", rollNo, ext)
}

// marks in their shortest form: 45, 45.5
func formatMarks(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
