// Package grading maps numeric grades to concept bands and computes the
// semester and annual averages printed on report cards.
package grading

import (
	"strconv"
	"strings"
)

// Band is a concept letter with the lowest score that earns it.
type Band struct {
	Letter    string
	Threshold float64
}

// Bands is ordered from the highest threshold down.
var Bands = []Band{
	{Letter: "MB", Threshold: 70},
	{Letter: "B", Threshold: 50},
	{Letter: "S", Threshold: 40},
	{Letter: "I", Threshold: 30},
}

const (
	MinGrade = 10
	MaxGrade = 70
)

// ToConceptLetter returns the highest band whose threshold v reaches. Values
// under every threshold are returned unchanged as text.
func ToConceptLetter(v float64) string {
	for _, b := range Bands {
		if v >= b.Threshold {
			return b.Letter
		}
	}
	return FormatNumber(v)
}

// ToNumeric is the inverse used when a concept grade is written back to the
// school API. Unknown letters map to 0.
func ToNumeric(letter string) float64 {
	l := strings.ToUpper(strings.TrimSpace(letter))
	for _, b := range Bands {
		if b.Letter == l {
			return b.Threshold
		}
	}
	return 0
}

// ValidEntry reports whether a typed grade is inside [MinGrade, MaxGrade].
func ValidEntry(v float64) bool {
	return v >= MinGrade && v <= MaxGrade
}

// FormatNumber prints v in its shortest decimal form ("10", "25.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
