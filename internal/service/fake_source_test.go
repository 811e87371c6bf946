package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"school_reports_backend/internal/config"
	"school_reports_backend/internal/document"
	"school_reports_backend/internal/model"
	"school_reports_backend/internal/util"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory Source.
type fakeSource struct {
	mu        sync.Mutex
	students  map[uint]model.Student
	grades    map[uint][]model.SubjectGrades
	tardies   map[uint][]model.TardyEvent
	electives map[uint]*model.Elective
	saved     []model.AccidentReport

	tardyCalls []model.TardyQuery
	enrollErr  error
	saveErr    error
	remote     int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		students:  make(map[uint]model.Student),
		grades:    make(map[uint][]model.SubjectGrades),
		tardies:   make(map[uint][]model.TardyEvent),
		electives: make(map[uint]*model.Elective),
	}
}

func (f *fakeSource) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", util.ErrStudentNotFound, id)
	}
	return &s, nil
}

func (f *fakeSource) ListCourseStudents(ctx context.Context, courseID uint) ([]model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Student
	for id := uint(1); id <= 1000; id++ {
		if s, ok := f.students[id]; ok && s.CourseID == courseID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSource) ListStudentGrades(ctx context.Context, studentID uint) ([]model.SubjectGrades, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.students[studentID]; !ok {
		return nil, util.ErrStudentNotFound
	}
	return append([]model.SubjectGrades(nil), f.grades[studentID]...), nil
}

func (f *fakeSource) ListCourseGrades(ctx context.Context, courseID uint) ([]model.SubjectGrades, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SubjectGrades
	for id, s := range f.students {
		if s.CourseID == courseID {
			out = append(out, f.grades[id]...)
		}
	}
	return out, nil
}

func (f *fakeSource) ListTardies(ctx context.Context, q model.TardyQuery) ([]model.TardyEvent, error) {
	f.mu.Lock()
	f.tardyCalls = append(f.tardyCalls, q)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.CourseID == 0 {
		var all []model.TardyEvent
		for id := uint(1); id <= 100; id++ {
			all = append(all, f.tardies[id]...)
		}
		return all, nil
	}
	events, ok := f.tardies[q.CourseID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", util.ErrCourseNotFound, q.CourseID)
	}
	return events, nil
}

func (f *fakeSource) SaveAccident(ctx context.Context, report model.AccidentReport) (*model.AccidentReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	report.ID = uint(len(f.saved) + 1)
	f.saved = append(f.saved, report)
	return &report, nil
}

func (f *fakeSource) GetElective(ctx context.Context, id uint) (*model.Elective, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.electives[id]
	if !ok {
		return nil, util.ErrElectiveNotFound
	}
	cp := *e
	cp.Enrolled = append([]uint(nil), e.Enrolled...)
	return &cp, nil
}

func (f *fakeSource) Enroll(ctx context.Context, electiveID, studentID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remote++
	if f.enrollErr != nil {
		return f.enrollErr
	}
	e := f.electives[electiveID]
	if e.CuposAvailable <= 0 {
		return util.ErrNoCupos
	}
	e.CuposAvailable--
	e.Enrolled = append(e.Enrolled, studentID)
	return nil
}

func (f *fakeSource) Unenroll(ctx context.Context, electiveID, studentID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remote++
	e := f.electives[electiveID]
	for i, id := range e.Enrolled {
		if id == studentID {
			e.Enrolled = append(e.Enrolled[:i], e.Enrolled[i+1:]...)
			e.CuposAvailable++
			return nil
		}
	}
	return util.ErrNotEnrolled
}

func subject(studentID, id uint, name string, order int, values map[int]float64) model.SubjectGrades {
	sg := model.SubjectGrades{StudentID: studentID, Subject: model.Subject{ID: id, Name: name, Order: order}}
	for slot, v := range values {
		sg.Slots[slot-1] = model.NewGrade(v)
	}
	return sg
}

func localStorage(t *testing.T) *StorageService {
	t.Helper()
	return &StorageService{Provider: &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}}
}

// templatePDF is a one-page PDF usable as a document background.
func templatePDF(t *testing.T) []byte {
	t.Helper()
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(40, 40, "LICEO")
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func registry(t *testing.T) *document.Registry {
	t.Helper()
	reg, err := document.NewRegistry("")
	require.NoError(t, err)
	return reg
}
