package grade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		obtained, total float64
	}{
		{45, 50},
		{0, 50},
		{50, 50},
		{1, 3},
		{72.5, 80},
	}
	for _, c := range cases {
		p := Percentage(c.obtained, c.total)
		assert.InDelta(t, c.obtained/c.total*100, p, 1e-9)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 100.0)
	}
}

func TestPercentageDegenerateInput(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(45, 0))
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(-3, 0))
	assert.Equal(t, 0.0, Percentage(math.NaN(), 50))
	assert.Equal(t, 0.0, Percentage(10, math.Inf(1)))
	assert.Equal(t, 0.0, Percentage(math.Inf(-1), 10))
}

func TestParsePercentage(t *testing.T) {
	assert.InDelta(t, 90.0, ParsePercentage("45", "50"), 1e-9)
	assert.InDelta(t, 90.0, ParsePercentage(" 45 ", "50.0"), 1e-9)
	assert.Equal(t, 0.0, ParsePercentage("abc", "50"))
	assert.Equal(t, 0.0, ParsePercentage("45", ""))
	assert.Equal(t, 0.0, ParsePercentage("45", "0"))
}

func TestGradeAndRemarksBands(t *testing.T) {
	cases := []struct {
		p       float64
		letter  string
		remarks string
	}{
		{100, "A+", "Outstanding"},
		{90.0, "A+", "Outstanding"},
		{89.999, "A", "Excellent"},
		{80, "A", "Excellent"},
		{79.99, "B", "Very Good"},
		{70, "B", "Very Good"},
		{60, "C", "Good"},
		{50, "D", "Satisfactory"},
		{49.9, "F", "Fail"},
		{0, "F", "Fail"},
		{-5, "F", "Fail"},
		{math.NaN(), "F", "Fail"},
	}
	for _, c := range cases {
		letter, remarks := GradeAndRemarks(c.p)
		assert.Equal(t, c.letter, letter, "percentage %v", c.p)
		assert.Equal(t, c.remarks, remarks, "percentage %v", c.p)
	}
}

func TestGradeAndRemarksMonotonic(t *testing.T) {
	rank := map[string]int{"F": 0, "D": 1, "C": 2, "B": 3, "A": 4, "A+": 5}
	prev := -1
	for p := 0.0; p <= 100.0; p += 0.25 {
		letter, _ := GradeAndRemarks(p)
		r, ok := rank[letter]
		require.True(t, ok, "unexpected letter %q", letter)
		require.GreaterOrEqual(t, r, prev, "grade dropped at %v", p)
		prev = r
	}
}

func TestComputeResultsScenario(t *testing.T) {
	subjects := []SubjectEntry{
		{Subject: "Math", ObtainedMarks: 45, TotalMarks: 50},
		{Subject: "Science", ObtainedMarks: 38, TotalMarks: 50},
		{Subject: "English", ObtainedMarks: 30, TotalMarks: 50},
	}

	results, overall := ComputeResults(subjects)
	require.Len(t, results, 3)

	want := []struct {
		subject string
		pct     float64
		grade   string
	}{
		{"Math", 90, "A+"},
		{"Science", 76, "B"},
		{"English", 60, "C"},
	}
	for i, w := range want {
		assert.Equal(t, w.subject, results[i].Subject)
		assert.InDelta(t, w.pct, results[i].Percentage, 1e-9)
		assert.Equal(t, w.grade, results[i].Grade)
	}

	assert.Equal(t, 113.0, overall.TotalObtained)
	assert.Equal(t, 150.0, overall.TotalMarks)
	assert.InDelta(t, 75.333333, overall.Percentage, 1e-5)
	assert.Equal(t, "B", overall.Grade)
	assert.Equal(t, "Very Good", overall.Remarks)
}

func TestComputeResultsUsesSummedMarks(t *testing.T) {
	_, overall := ComputeResults([]SubjectEntry{
		{Subject: "A", ObtainedMarks: 50, TotalMarks: 50},
		{Subject: "B", ObtainedMarks: 0, TotalMarks: 50},
	})
	assert.InDelta(t, 50.0, overall.Percentage, 1e-9)

	// an average of per-subject percentages would give 50 here
	_, overall = ComputeResults([]SubjectEntry{
		{Subject: "A", ObtainedMarks: 100, TotalMarks: 100},
		{Subject: "B", ObtainedMarks: 0, TotalMarks: 200},
	})
	assert.InDelta(t, 100.0/300.0*100, overall.Percentage, 1e-9)
	assert.Equal(t, "F", overall.Grade)
}

func TestComputeResultsEmpty(t *testing.T) {
	results, overall := ComputeResults(nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Equal(t, OverallResult{Grade: "F", Remarks: "Fail"}, overall)
}

func TestComputeResultsDoesNotMutateInput(t *testing.T) {
	subjects := []SubjectEntry{
		{Subject: "Math", ObtainedMarks: 45, TotalMarks: 50},
		{Subject: "Math", ObtainedMarks: 20, TotalMarks: 0},
	}
	before := append([]SubjectEntry(nil), subjects...)

	first, o1 := ComputeResults(subjects)
	second, o2 := ComputeResults(subjects)

	assert.Equal(t, before, subjects)
	assert.Equal(t, first, second)
	assert.Equal(t, o1, o2)
	assert.Equal(t, 0.0, first[1].Percentage)
	assert.Equal(t, "F", first[1].Grade)
}
