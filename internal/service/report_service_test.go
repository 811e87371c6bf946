package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"school_reports_backend/internal/model"
	"school_reports_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func reportFixture(t *testing.T) (*ReportService, *fakeSource, *StorageService) {
	t.Helper()
	src := newFakeSource()
	src.students[1] = model.Student{ID: 1, RUT: "11.111.111-1", Names: "Ana", FatherSurname: "Bravo", CourseID: 3, CourseName: "3° Medio A"}
	src.students[2] = model.Student{ID: 2, RUT: "22.222.222-2", Names: "Óscar", FatherSurname: "Álvarez", CourseID: 3, CourseName: "3° Medio A"}
	src.students[3] = model.Student{ID: 3, Names: "Sin", FatherSurname: "Notas", CourseID: 4}
	src.grades[1] = []model.SubjectGrades{
		subject(1, 2, "Matemática", 1, map[int]float64{1: 55, 2: 60, 12: 70}),
		subject(1, 1, "Lenguaje", 1, map[int]float64{1: 65}),
		subject(1, 9, "Artes", 5, nil),
	}
	src.grades[2] = []model.SubjectGrades{
		subject(2, 1, "Lenguaje", 1, map[int]float64{1: 40, 13: 50}),
	}

	storage := localStorage(t)
	svc := NewReportService(src, registry(t), NewTemplateService(storage, "templates"), nil, "Marta Rojas")
	svc.now = func() time.Time { return time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC) }
	return svc, src, storage
}

func TestStudentReportCard(t *testing.T) {
	svc, _, _ := reportFixture(t)

	doc, err := svc.StudentReportCard(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.Equal(t, util.MimePDF, doc.ContentType)
	assert.Equal(t, "informe_notas_11_111_111-1.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	assert.Empty(t, doc.URL)
}

func TestStudentReportCard_NoGrades(t *testing.T) {
	svc, _, _ := reportFixture(t)

	_, err := svc.StudentReportCard(context.Background(), 3, 9)
	assert.ErrorIs(t, err, util.ErrNoData)

	_, err = svc.StudentReportCard(context.Background(), 99, 9)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestStudentReportCard_Archived(t *testing.T) {
	svc, _, storage := reportFixture(t)
	svc.archiver = NewArchiver(storage, nil, "reports")

	doc, err := svc.StudentReportCard(context.Background(), 1, 9)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(doc.URL, "/uploads/reports/report_card/"))

	stored, err := os.ReadFile(filepath.Join(storage.Provider.(*LocalStorageProvider).Config.LocalPath, strings.TrimPrefix(doc.URL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, doc.Data, stored)
}

func TestStudentReportCard_BrokenTemplate(t *testing.T) {
	svc, _, storage := reportFixture(t)
	_, err := storage.UploadBytes(context.Background(), "templates/report_card.pdf", []byte("%PDF-1.4 truncated"), util.MimePDF)
	require.NoError(t, err)

	_, err = svc.StudentReportCard(context.Background(), 1, 9)
	assert.ErrorIs(t, err, util.ErrTemplate)
}

func TestSortSubjects(t *testing.T) {
	subjects := []model.SubjectGrades{
		{Subject: model.Subject{Name: "Música", Order: 2}},
		{Subject: model.Subject{Name: "Biología", Order: 1}},
		{Subject: model.Subject{Name: "Álgebra", Order: 1}},
		{Subject: model.Subject{Name: "educación física", Order: 1}},
	}
	sortSubjects(subjects)

	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = s.Subject.Name
	}
	assert.Equal(t, []string{"Álgebra", "Biología", "educación física", "Música"}, names)
}

func TestCourseGradesWorkbook(t *testing.T) {
	svc, _, _ := reportFixture(t)

	doc, err := svc.CourseGradesWorkbook(context.Background(), 3, 9)
	require.NoError(t, err)
	assert.Equal(t, util.MimeXLSX, doc.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("3° Medio A")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Prom. final", rows[0][len(rows[0])-1])
	// Álvarez sorts before Bravo
	assert.Equal(t, "Óscar Álvarez", rows[1][1])
	assert.Equal(t, "Lenguaje", rows[1][2])
	assert.Equal(t, "45.0", rows[1][21])
	assert.Equal(t, "Ana Bravo", rows[2][1])
	assert.Equal(t, "Lenguaje", rows[2][2])
	assert.Equal(t, "Matemática", rows[3][2])
	assert.Equal(t, "57.5", rows[3][11])

	_, err = svc.CourseGradesWorkbook(context.Background(), 4, 9)
	assert.ErrorIs(t, err, util.ErrNoData)
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "3_Medio_A", fileSafe("3° Medio A"))
	assert.Equal(t, "11_111_111-1", fileSafe("11.111.111-1"))
}
