package export

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/nsip/otf-marksheet/internal/grade"
	"github.com/pkg/errors"
)

const jsonMIME = "application/json"

//
// JSON writes the structured data file. Subjects are written
// as entered, without per-subject percentage or grade; only
// the overall result carries derived values.
//
type JSON struct{}

type jsonDocument struct {
	StudentInfo   Identity             `json:"student_info"`
	Subjects      []grade.SubjectEntry `json:"subjects"`
	OverallResult jsonOverall          `json:"overall_result"`
}

type jsonOverall struct {
	TotalObtained     int64          `json:"total_obtained"`
	TotalMarks        int64          `json:"total_marks"`
	OverallPercentage twoPlacePercent `json:"overall_percentage"`
	OverallGrade      string         `json:"overall_grade"`
	Remarks           string         `json:"remarks"`
}

//
// a percentage rounded to two decimal places, written
// with at least one fractional digit (50.0, 75.33)
//
type twoPlacePercent float64

func (p twoPlacePercent) MarshalJSON() ([]byte, error) {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.New("percentage is not a finite number")
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}

func roundTwoPlaces(f float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	if err != nil {
		return 0
	}
	return r
}

func (JSON) Format() string { return "json" }

func (j JSON) Export(r Report) (Payload, error) {

	_, overall := grade.ComputeResults(r.Subjects)

	subjects := make([]grade.SubjectEntry, len(r.Subjects))
	copy(subjects, r.Subjects)

	doc := jsonDocument{
		StudentInfo: r.Identity,
		Subjects:    subjects,
		OverallResult: jsonOverall{
			TotalObtained:     int64(overall.TotalObtained),
			TotalMarks:        int64(overall.TotalMarks),
			OverallPercentage: twoPlacePercent(roundTwoPlaces(overall.Percentage)),
			OverallGrade:      overall.Grade,
			Remarks:           overall.Remarks,
		},
	}

	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return Payload{}, errors.Wrap(err, "cannot encode json result")
	}

	return Payload{
		Data:     bytes.TrimSuffix(buf.Bytes(), []byte("\n")),
		Filename: Filename(r.Identity.RollNo, j.Format()),
		MIMEType: jsonMIME,
	}, nil
}
