package controller

import (
	"context"

	"school_reports_backend/internal/model"
	"school_reports_backend/internal/util"
)

// stubSource serves fixed records.
type stubSource struct {
	students  map[uint]model.Student
	grades    map[uint][]model.SubjectGrades
	tardies   map[uint][]model.TardyEvent
	electives map[uint]*model.Elective
	err       error
}

func newStubSource() *stubSource {
	s := &stubSource{
		students: map[uint]model.Student{
			7: {ID: 7, RUT: "12.345.678-5", Names: "Ana", FatherSurname: "Pérez", CourseID: 1, CourseName: "3° Medio A"},
			8: {ID: 8, RUT: "9.876.543-2", Names: "Beto", FatherSurname: "Soto", CourseID: 1, CourseName: "3° Medio A"},
		},
		grades:    map[uint][]model.SubjectGrades{},
		tardies:   map[uint][]model.TardyEvent{},
		electives: map[uint]*model.Elective{3: {ID: 3, Name: "Teatro", SubjectID: 30, CuposTotal: 1, CuposAvailable: 1}},
	}
	math := model.SubjectGrades{StudentID: 7, Subject: model.Subject{ID: 1, Name: "Matemática", Order: 1}}
	math.Slots[0] = model.NewGrade(60)
	math.Slots[1] = model.NewGrade(70)
	s.grades[7] = []model.SubjectGrades{math}

	s.tardies[1] = []model.TardyEvent{
		{ID: 1, CourseID: 1, CourseName: "1° A", Date: "2024-03-05", Time: "09:15", Type: util.TardyDuring},
		{ID: 2, CourseID: 1, CourseName: "1° A", Date: "2024-03-05", Time: "08:05", Type: util.TardyArrival},
	}
	s.tardies[2] = []model.TardyEvent{
		{ID: 3, CourseID: 2, CourseName: "2° B", Date: "2024-03-06", Time: "08:20", Type: util.TardyArrival},
	}
	return s
}

func (s *stubSource) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	st, ok := s.students[id]
	if !ok {
		return nil, util.ErrStudentNotFound
	}
	return &st, nil
}

func (s *stubSource) ListCourseStudents(ctx context.Context, courseID uint) ([]model.Student, error) {
	var out []model.Student
	for _, id := range []uint{7, 8} {
		if st := s.students[id]; st.CourseID == courseID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *stubSource) ListStudentGrades(ctx context.Context, studentID uint) ([]model.SubjectGrades, error) {
	if _, ok := s.students[studentID]; !ok {
		return nil, util.ErrStudentNotFound
	}
	return s.grades[studentID], nil
}

func (s *stubSource) ListCourseGrades(ctx context.Context, courseID uint) ([]model.SubjectGrades, error) {
	var out []model.SubjectGrades
	for _, id := range []uint{7, 8} {
		if s.students[id].CourseID == courseID {
			out = append(out, s.grades[id]...)
		}
	}
	return out, nil
}

func (s *stubSource) ListTardies(ctx context.Context, q model.TardyQuery) ([]model.TardyEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tardies[q.CourseID], nil
}

func (s *stubSource) SaveAccident(ctx context.Context, report model.AccidentReport) (*model.AccidentReport, error) {
	report.ID = 41
	return &report, nil
}

func (s *stubSource) GetElective(ctx context.Context, id uint) (*model.Elective, error) {
	e, ok := s.electives[id]
	if !ok {
		return nil, util.ErrElectiveNotFound
	}
	cp := *e
	cp.Enrolled = append([]uint(nil), e.Enrolled...)
	return &cp, nil
}

func (s *stubSource) Enroll(ctx context.Context, electiveID, studentID uint) error {
	e := s.electives[electiveID]
	if e.CuposAvailable == 0 {
		return util.ErrNoCupos
	}
	e.CuposAvailable--
	e.Enrolled = append(e.Enrolled, studentID)
	return nil
}

func (s *stubSource) Unenroll(ctx context.Context, electiveID, studentID uint) error {
	e := s.electives[electiveID]
	for i, id := range e.Enrolled {
		if id == studentID {
			e.Enrolled = append(e.Enrolled[:i], e.Enrolled[i+1:]...)
			e.CuposAvailable++
			return nil
		}
	}
	return util.ErrNotEnrolled
}
