package grading

import (
	"fmt"

	"school_reports_backend/internal/model"
)

// Empty is printed for slots and averages without grades.
const Empty = "-"

// Average returns the mean of the valid grades with one decimal, or "-"
// when none is valid.
func Average(values []model.Grade) string {
	var sum float64
	n := 0
	for _, g := range values {
		if !g.Valid {
			continue
		}
		sum += g.Value
		n++
	}
	if n == 0 {
		return Empty
	}
	return fmt.Sprintf("%.1f", sum/float64(n))
}

// AverageOf parses loose values (numbers, numeric strings, nil, "-") before
// averaging.
func AverageOf(values ...interface{}) string {
	grades := make([]model.Grade, len(values))
	for i, v := range values {
		grades[i] = model.ParseGrade(v)
	}
	return Average(grades)
}

// AnnualAverage is the mean of the two semester averages, not of the raw
// grades.
func AnnualAverage(first, second string) string {
	return AverageOf(first, second)
}
