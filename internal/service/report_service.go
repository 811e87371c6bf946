package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"school_reports_backend/internal/document"
	"school_reports_backend/internal/grading"
	"school_reports_backend/internal/model"
	"school_reports_backend/internal/repository"
	"school_reports_backend/internal/util"
	"school_reports_backend/pkg/logger"
	"school_reports_backend/pkg/monitoring"
	"school_reports_backend/pkg/timeouts"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type ReportService struct {
	source      repository.Source
	layouts     *document.Registry
	templates   *TemplateService
	archiver    *Archiver
	headTeacher string
	now         func() time.Time
}

func NewReportService(source repository.Source, layouts *document.Registry, templates *TemplateService, archiver *Archiver, headTeacher string) *ReportService {
	return &ReportService{
		source:      source,
		layouts:     layouts,
		templates:   templates,
		archiver:    archiver,
		headTeacher: headTeacher,
		now:         time.Now,
	}
}

// sortSubjects orders subjects by their configured order, then by name in
// Spanish collation.
func sortSubjects(subjects []model.SubjectGrades) {
	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(subjects, func(i, j int) bool {
		a, b := subjects[i].Subject, subjects[j].Subject
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return col.CompareString(a.Name, b.Name) < 0
	})
}

func dateFields(prefix string, t time.Time, fields map[string]string) {
	fields[prefix+"_day"] = t.Format("02")
	fields[prefix+"_month"] = t.Format("01")
	fields[prefix+"_year"] = t.Format("2006")
}

// fileSafe keeps ASCII letters, digits and dashes, collapsing everything
// else into single underscores.
func fileSafe(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// StudentReportCard prints the grades of one student over the report card
// template.
func (s *ReportService) StudentReportCard(ctx context.Context, studentID uint, userID uint) (*Document, error) {
	start := time.Now()
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), logger.Log, "student report card")
	defer cancel()

	student, err := s.source.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	subjects, err := s.source.ListStudentGrades(ctx, studentID)
	if err != nil {
		return nil, err
	}
	sortSubjects(subjects)

	rows := grading.BuildRows(subjects)
	if len(rows) == 0 {
		return nil, util.ErrNoData
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = row.Cells()
	}

	layout, err := s.layouts.Get(document.LayoutReportCard)
	if err != nil {
		return nil, err
	}
	template, err := s.templates.Load(ctx, document.LayoutReportCard)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fields := map[string]string{
		"student_name": student.FullName(),
		"student_rut":  student.RUT,
		"course":       student.CourseName,
		"year":         now.Format("2006"),
		"head_teacher": s.headTeacher,
	}
	dateFields("issue", now, fields)

	data, err := document.Compose(layout, template, document.Content{Fields: fields, Rows: cells})
	if err != nil {
		return nil, fmt.Errorf("report card of student %d: %w", studentID, err)
	}

	ref := student.RUT
	if ref == "" {
		ref = idString(student.ID)
	}
	doc := &Document{
		Filename:    "informe_notas_" + fileSafe(ref) + ".pdf",
		ContentType: util.MimePDF,
		Data:        data,
	}
	s.archiver.Archive(ctx, util.KindReportCard, idString(studentID), userID, doc)
	monitoring.ObserveReport(util.KindReportCard, start)
	return doc, nil
}

// CourseGradesWorkbook exports one row per student and subject with every
// printed slot and the averages.
func (s *ReportService) CourseGradesWorkbook(ctx context.Context, courseID uint, userID uint) (*Document, error) {
	start := time.Now()
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), logger.Log, "course grades workbook")
	defer cancel()

	students, err := s.source.ListCourseStudents(ctx, courseID)
	if err != nil {
		return nil, err
	}
	subjects, err := s.source.ListCourseGrades(ctx, courseID)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uint][]model.SubjectGrades)
	for _, sg := range subjects {
		byStudent[sg.StudentID] = append(byStudent[sg.StudentID], sg)
	}

	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(students, func(i, j int) bool {
		a, b := students[i], students[j]
		if c := col.CompareString(a.FatherSurname, b.FatherSurname); c != 0 {
			return c < 0
		}
		if c := col.CompareString(a.MotherSurname, b.MotherSurname); c != 0 {
			return c < 0
		}
		return col.CompareString(a.Names, b.Names) < 0
	})

	header := []string{"RUT", "Estudiante", "Asignatura"}
	for i := grading.FirstSemester.From; i <= grading.FirstSemester.To; i++ {
		header = append(header, fmt.Sprintf("S1 N%d", i-grading.FirstSemester.From+1))
	}
	header = append(header, "Prom. S1")
	for i := grading.SecondSemester.From; i <= grading.SecondSemester.To; i++ {
		header = append(header, fmt.Sprintf("S2 N%d", i-grading.SecondSemester.From+1))
	}
	header = append(header, "Prom. S2", "Prom. final")

	var rows [][]interface{}
	courseName := ""
	for _, st := range students {
		if courseName == "" {
			courseName = st.CourseName
		}
		list := byStudent[st.ID]
		sortSubjects(list)
		for _, row := range grading.BuildRows(list) {
			line := []interface{}{st.RUT, st.FullName()}
			for _, cell := range row.Cells() {
				line = append(line, cell)
			}
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, util.ErrNoData
	}

	name := courseName
	if name == "" {
		name = "Curso " + idString(courseID)
	}
	data, err := document.WriteWorkbook(document.Sheet{Name: name, Header: header, Rows: rows})
	if err != nil {
		return nil, fmt.Errorf("grades workbook of course %d: %w", courseID, err)
	}

	doc := &Document{
		Filename:    "notas_curso_" + fileSafe(idString(courseID)+"_"+name) + ".xlsx",
		ContentType: util.MimeXLSX,
		Data:        data,
	}
	s.archiver.Archive(ctx, util.KindCourseGrades, idString(courseID), userID, doc)
	monitoring.ObserveReport(util.KindCourseGrades, start)
	return doc, nil
}
