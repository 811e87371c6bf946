package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"school_reports_backend/internal/model"
	"school_reports_backend/internal/util"
)

// Dump is a JSON export of the school API responses, used to print
// documents offline.
type Dump struct {
	Students  []model.Student       `json:"estudiantes"`
	Grades    []model.SubjectGrades `json:"calificaciones"`
	Tardies   []model.TardyEvent    `json:"atrasos"`
	Electives []model.Elective      `json:"electivos"`
}

// DumpSource serves a Dump. Accidents are kept in memory; enrollments are
// refused.
type DumpSource struct {
	mu        sync.Mutex
	dump      Dump
	accidents []model.AccidentReport
}

func LoadDump(r io.Reader) (*DumpSource, error) {
	var d Dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	return &DumpSource{dump: d}, nil
}

func (s *DumpSource) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	for _, st := range s.dump.Students {
		if st.ID == id {
			st := st
			return &st, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", util.ErrStudentNotFound, id)
}

func (s *DumpSource) ListCourseStudents(ctx context.Context, courseID uint) ([]model.Student, error) {
	var out []model.Student
	for _, st := range s.dump.Students {
		if st.CourseID == courseID {
			out = append(out, st)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %d", util.ErrCourseNotFound, courseID)
	}
	return out, nil
}

func (s *DumpSource) ListStudentGrades(ctx context.Context, studentID uint) ([]model.SubjectGrades, error) {
	var out []model.SubjectGrades
	for _, g := range s.dump.Grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *DumpSource) ListCourseGrades(ctx context.Context, courseID uint) ([]model.SubjectGrades, error) {
	inCourse := make(map[uint]bool)
	for _, st := range s.dump.Students {
		if st.CourseID == courseID {
			inCourse[st.ID] = true
		}
	}
	var out []model.SubjectGrades
	for _, g := range s.dump.Grades {
		if inCourse[g.StudentID] {
			out = append(out, g)
		}
	}
	return out, nil
}

// ListTardies filters like the API: course 0 is every course and the date
// bounds are inclusive.
func (s *DumpSource) ListTardies(ctx context.Context, q model.TardyQuery) ([]model.TardyEvent, error) {
	var out []model.TardyEvent
	for _, e := range s.dump.Tardies {
		if q.CourseID != 0 && e.CourseID != q.CourseID {
			continue
		}
		if q.From != "" && e.Date < q.From {
			continue
		}
		if q.To != "" && e.Date > q.To {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *DumpSource) SaveAccident(ctx context.Context, report model.AccidentReport) (*model.AccidentReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if report.ID == 0 {
		report.ID = uint(len(s.accidents) + 1)
	}
	s.accidents = append(s.accidents, report)
	return &report, nil
}

func (s *DumpSource) GetElective(ctx context.Context, id uint) (*model.Elective, error) {
	for _, e := range s.dump.Electives {
		if e.ID == id {
			e := e
			e.Enrolled = append([]uint(nil), e.Enrolled...)
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", util.ErrElectiveNotFound, id)
}

func (s *DumpSource) Enroll(ctx context.Context, electiveID, studentID uint) error {
	return util.ErrReadOnlySource
}

func (s *DumpSource) Unenroll(ctx context.Context, electiveID, studentID uint) error {
	return util.ErrReadOnlySource
}
