package grade

import (
	"math"
	"strconv"
	"strings"
)

//
// a single subject as entered by the user,
// obtained marks are expected within [0, total]
// and total marks > 0 but nothing here enforces that.
//
type SubjectEntry struct {
	Subject       string  `json:"subject" validate:"required"`
	ObtainedMarks float64 `json:"obtained_marks" validate:"gte=0,ltefield=TotalMarks"`
	TotalMarks    float64 `json:"total_marks" validate:"gt=0"`
}

//
// a subject entry with its derived percentage and
// letter grade
//
type SubjectResult struct {
	SubjectEntry
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
}

//
// aggregate result across all subjects, the percentage
// is taken from the summed marks
//
type OverallResult struct {
	TotalObtained float64 `json:"total_obtained"`
	TotalMarks    float64 `json:"total_marks"`
	Percentage    float64 `json:"overall_percentage"`
	Grade         string  `json:"overall_grade"`
	Remarks       string  `json:"remarks"`
}

// grade bands, highest first; lower bounds are inclusive
var bands = []struct {
	min     float64
	letter  string
	remarks string
}{
	{90, "A+", "Outstanding"},
	{80, "A", "Excellent"},
	{70, "B", "Very Good"},
	{60, "C", "Good"},
	{50, "D", "Satisfactory"},
}

const (
	failLetter  = "F"
	failRemarks = "Fail"
)

//
// returns obtained as a percentage of total.
// degenerate input (zero total, NaN or infinite values)
// yields 0.0 rather than an error.
//
func Percentage(obtained, total float64) float64 {
	if total == 0 || !finite(obtained) || !finite(total) {
		return 0.0
	}
	p := (obtained / total) * 100
	if !finite(p) {
		return 0.0
	}
	return p
}

//
// as Percentage, but for marks that arrive as text.
// anything that does not parse as a number yields 0.0
//
func ParsePercentage(obtained, total string) float64 {
	o, err := strconv.ParseFloat(strings.TrimSpace(obtained), 64)
	if err != nil {
		return 0.0
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(total), 64)
	if err != nil {
		return 0.0
	}
	return Percentage(o, t)
}

//
// maps a percentage onto its letter grade and remarks.
// boundary values belong to the higher band, so exactly
// 90 is an A+.
//
func GradeAndRemarks(percentage float64) (letter, remarks string) {
	for _, b := range bands {
		if percentage >= b.min {
			return b.letter, b.remarks
		}
	}
	return failLetter, failRemarks
}

//
// derives the per-subject results (in input order) and
// the overall result for a list of subjects.
// subjects is only read, never modified.
//
func ComputeResults(subjects []SubjectEntry) ([]SubjectResult, OverallResult) {

	results := make([]SubjectResult, 0, len(subjects))
	var obtained, total float64

	for _, s := range subjects {
		p := Percentage(s.ObtainedMarks, s.TotalMarks)
		letter, _ := GradeAndRemarks(p)
		results = append(results, SubjectResult{
			SubjectEntry: s,
			Percentage:   p,
			Grade:        letter,
		})
		obtained += s.ObtainedMarks
		total += s.TotalMarks
	}

	overall := OverallResult{
		TotalObtained: obtained,
		TotalMarks:    total,
		Percentage:    Percentage(obtained, total),
	}
	overall.Grade, overall.Remarks = GradeAndRemarks(overall.Percentage)

	return results, overall
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
