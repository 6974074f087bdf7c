package otfmarksheet

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/nsip/otf-marksheet/internal/export"
	"github.com/nsip/otf-marksheet/internal/grade"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

//
// reads a marksheet request of the form
//
//	{
//	  "student_info": {"name": .., "roll_no": .., "class": .., "academic_year": ..},
//	  "subjects": [{"subject": .., "obtained_marks": .., "total_marks": ..}, ...],
//	  "photo": "<base64 image bytes, optional>"
//	}
//
// identity fields are taken as given. marks may be numbers or
// numeric strings, anything else reads as 0 so the grade engine
// treats it as a degenerate entry rather than the request failing.
//
func parseReport(body []byte, maxPhotoBytes int) (export.Report, error) {

	var r export.Report

	if !gjson.ValidBytes(body) {
		return r, errors.New("request body is not valid json")
	}
	req := gjson.ParseBytes(body)
	if !req.IsObject() {
		return r, errors.New("request body must be a json object")
	}

	info := req.Get("student_info")
	r.Identity = export.Identity{
		Name:         info.Get("name").String(),
		RollNo:       info.Get("roll_no").String(),
		Class:        info.Get("class").String(),
		AcademicYear: info.Get("academic_year").String(),
	}

	subjects := req.Get("subjects")
	if subjects.Exists() && !subjects.IsArray() {
		return r, errors.New("subjects must be a json array")
	}
	r.Subjects = []grade.SubjectEntry{}
	subjects.ForEach(func(_, s gjson.Result) bool {
		r.Subjects = append(r.Subjects, grade.SubjectEntry{
			Subject:       s.Get("subject").String(),
			ObtainedMarks: marks(s.Get("obtained_marks")),
			TotalMarks:    marks(s.Get("total_marks")),
		})
		return true
	})

	if p := req.Get("photo"); p.Exists() && p.String() != "" {
		if p.Type != gjson.String {
			return r, errors.New("photo must be a base64 encoded string")
		}
		if base64.StdEncoding.DecodedLen(len(p.Str)) > maxPhotoBytes+2 {
			return r, errors.Errorf("photo exceeds %d bytes", maxPhotoBytes)
		}
		blob, err := base64.StdEncoding.DecodeString(p.Str)
		if err != nil {
			return r, errors.Wrap(err, "photo is not valid base64")
		}
		if len(blob) > maxPhotoBytes {
			return r, errors.Errorf("photo exceeds %d bytes", maxPhotoBytes)
		}
		r.Photo = blob
	}

	return r, nil
}

func marks(v gjson.Result) float64 {
	switch v.Type {
	case gjson.Number:
		return v.Num
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
