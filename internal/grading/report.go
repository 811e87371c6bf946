package grading

import (
	"school_reports_backend/internal/model"
)

// SlotRange is an inclusive 1-based range of grade slots.
type SlotRange struct {
	From int
	To   int
}

func (r SlotRange) Len() int {
	return r.To - r.From + 1
}

// Printed windows of each semester. Slots outside them are kept by the school
// API but never shown on the report card.
var (
	FirstSemester  = SlotRange{From: 1, To: 8}
	SecondSemester = SlotRange{From: 12, To: 19}
)

// Row is one subject line of a report card.
type Row struct {
	Subject       string
	Concept       bool
	First         []string
	FirstAverage  string
	Second        []string
	SecondAverage string
	AnnualAverage string
}

// Cells flattens the row in printed column order.
func (r Row) Cells() []string {
	cells := make([]string, 0, 1+len(r.First)+1+len(r.Second)+2)
	cells = append(cells, r.Subject)
	cells = append(cells, r.First...)
	cells = append(cells, r.FirstAverage)
	cells = append(cells, r.Second...)
	cells = append(cells, r.SecondAverage, r.AnnualAverage)
	return cells
}

// BuildRow computes averages for one subject and renders every cell, mapping
// numbers to concept letters for concept subjects.
func BuildRow(sg model.SubjectGrades) Row {
	first := sg.Window(FirstSemester.From, FirstSemester.To)
	second := sg.Window(SecondSemester.From, SecondSemester.To)

	firstAvg := Average(first)
	secondAvg := Average(second)
	annual := AnnualAverage(firstAvg, secondAvg)

	return Row{
		Subject:       sg.Subject.Name,
		Concept:       sg.Subject.Concept,
		First:         formatSlots(first, sg.Subject.Concept),
		FirstAverage:  formatAverage(firstAvg, sg.Subject.Concept),
		Second:        formatSlots(second, sg.Subject.Concept),
		SecondAverage: formatAverage(secondAvg, sg.Subject.Concept),
		AnnualAverage: formatAverage(annual, sg.Subject.Concept),
	}
}

// BuildRows builds a row per subject that has at least one grade.
func BuildRows(subjects []model.SubjectGrades) []Row {
	rows := make([]Row, 0, len(subjects))
	for _, sg := range subjects {
		if !sg.HasGrades() {
			continue
		}
		rows = append(rows, BuildRow(sg))
	}
	return rows
}

func formatSlots(grades []model.Grade, concept bool) []string {
	out := make([]string, len(grades))
	for i, g := range grades {
		switch {
		case !g.Valid:
			out[i] = Empty
		case concept:
			out[i] = ToConceptLetter(g.Value)
		default:
			out[i] = FormatNumber(g.Value)
		}
	}
	return out
}

func formatAverage(avg string, concept bool) string {
	if !concept || avg == Empty {
		return avg
	}
	g := model.ParseGrade(avg)
	if !g.Valid {
		return avg
	}
	return ToConceptLetter(g.Value)
}
