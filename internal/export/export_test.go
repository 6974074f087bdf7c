package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/nsip/otf-marksheet/internal/grade"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ashaReport() Report {
	return Report{
		Identity: Identity{
			Name:         "Asha Rao",
			RollNo:       "12",
			Class:        "10A",
			AcademicYear: "2024-25",
		},
		Subjects: []grade.SubjectEntry{
			{Subject: "Math", ObtainedMarks: 45, TotalMarks: 50},
			{Subject: "Science", ObtainedMarks: 38, TotalMarks: 50},
			{Subject: "English", ObtainedMarks: 30, TotalMarks: 50},
		},
	}
}

func testPhoto(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 20, G: 120, B: 200, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

// asserts each needle occurs in haystack, in the given order
func assertInOrder(t *testing.T, haystack []byte, needles ...string) {
	t.Helper()
	last := -1
	for _, n := range needles {
		i := bytes.Index(haystack, []byte(n))
		if !assert.GreaterOrEqual(t, i, 0, "missing %q", n) {
			continue
		}
		assert.Greater(t, i, last, "%q out of order", n)
		last = i
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "result_12.pdf", Filename("12", "pdf"))
	assert.Equal(t, "result_.json", Filename("", "json"))
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry(0)
	assert.Equal(t, []string{"docx", "json", "pdf"}, reg.Formats())

	for _, f := range reg.Formats() {
		e, err := reg.Lookup(f)
		require.NoError(t, err)
		assert.Equal(t, f, e.Format())
	}

	_, err := reg.Lookup("xlsx")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestExportersShareContract(t *testing.T) {
	wantMIME := map[string]string{
		"pdf":  "application/pdf",
		"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"json": "application/json",
	}

	reg := DefaultRegistry(0)
	for _, f := range reg.Formats() {
		e, err := reg.Lookup(f)
		require.NoError(t, err)

		r := ashaReport()
		r.Photo = testPhoto(t)
		subjectsBefore := append([]grade.SubjectEntry(nil), r.Subjects...)
		photoBefore := append([]byte(nil), r.Photo...)

		p, err := e.Export(r)
		require.NoError(t, err, f)
		assert.NotEmpty(t, p.Data, f)
		assert.Equal(t, "result_12."+f, p.Filename)
		assert.Equal(t, wantMIME[f], p.MIMEType)

		assert.Equal(t, subjectsBefore, r.Subjects, f)
		assert.Equal(t, photoBefore, r.Photo, f)
	}
}

func TestExportersAcceptEmptySubjects(t *testing.T) {
	reg := DefaultRegistry(0)
	for _, f := range reg.Formats() {
		e, err := reg.Lookup(f)
		require.NoError(t, err)

		r := ashaReport()
		r.Subjects = nil
		_, err = e.Export(r)
		assert.NoError(t, err, f)
	}
}
