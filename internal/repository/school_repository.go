package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"school_reports_backend/internal/model"
	"school_reports_backend/internal/util"

	"gorm.io/gorm"
)

// SchoolRepository reads school records from the replica database. The
// replica is read only: writes belong to the school API.
type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) courseNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var courses []model.Course
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, err
	}
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (r *SchoolRepository) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.WithContext(ctx).First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrStudentNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	names, err := r.courseNames(ctx, []uint{student.CourseID})
	if err != nil {
		return nil, err
	}
	student.CourseName = names[student.CourseID]
	return &student, nil
}

func (r *SchoolRepository) ListCourseStudents(ctx context.Context, courseID uint) ([]model.Student, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).First(&course, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrCourseNotFound, courseID)
	}
	if err != nil {
		return nil, err
	}

	var students []model.Student
	err = r.DB.WithContext(ctx).
		Where("id_curso = ?", courseID).
		Order("apellido_paterno, apellido_materno, nombres").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	for i := range students {
		students[i].CourseName = course.Name
	}
	return students, nil
}

// subjectGrades reshapes one-row-per-slot records into SubjectGrades, ordered
// by student, then subject order.
func (r *SchoolRepository) subjectGrades(ctx context.Context, records []model.GradeRecord) ([]model.SubjectGrades, error) {
	if len(records) == 0 {
		return nil, nil
	}

	subjectIDs := make([]uint, 0)
	seen := make(map[uint]bool)
	for _, rec := range records {
		if !seen[rec.SubjectID] {
			seen[rec.SubjectID] = true
			subjectIDs = append(subjectIDs, rec.SubjectID)
		}
	}
	var subjects []model.Subject
	if err := r.DB.WithContext(ctx).Where("id IN ?", subjectIDs).Find(&subjects).Error; err != nil {
		return nil, err
	}
	bySubject := make(map[uint]model.Subject, len(subjects))
	for _, s := range subjects {
		bySubject[s.ID] = s
	}

	type key struct{ student, subject uint }
	index := make(map[key]int)
	var out []model.SubjectGrades
	for _, rec := range records {
		if rec.Slot < 1 || rec.Slot > model.SlotCount {
			continue
		}
		k := key{rec.StudentID, rec.SubjectID}
		i, ok := index[k]
		if !ok {
			subject, found := bySubject[rec.SubjectID]
			if !found {
				subject = model.Subject{ID: rec.SubjectID}
			}
			out = append(out, model.SubjectGrades{StudentID: rec.StudentID, Subject: subject})
			i = len(out) - 1
			index[k] = i
		}
		out[i].Slots[rec.Slot-1] = model.ParseGrade(rec.Value)
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].StudentID != out[b].StudentID {
			return out[a].StudentID < out[b].StudentID
		}
		if out[a].Subject.Order != out[b].Subject.Order {
			return out[a].Subject.Order < out[b].Subject.Order
		}
		return out[a].Subject.ID < out[b].Subject.ID
	})
	return out, nil
}

func (r *SchoolRepository) ListStudentGrades(ctx context.Context, studentID uint) ([]model.SubjectGrades, error) {
	if _, err := r.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	var records []model.GradeRecord
	if err := r.DB.WithContext(ctx).Where("id_estudiante = ?", studentID).Find(&records).Error; err != nil {
		return nil, err
	}
	return r.subjectGrades(ctx, records)
}

func (r *SchoolRepository) ListCourseGrades(ctx context.Context, courseID uint) ([]model.SubjectGrades, error) {
	students, err := r.ListCourseStudents(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, nil
	}
	ids := make([]uint, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}

	var records []model.GradeRecord
	if err := r.DB.WithContext(ctx).Where("id_estudiante IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	return r.subjectGrades(ctx, records)
}

func (r *SchoolRepository) ListTardies(ctx context.Context, q model.TardyQuery) ([]model.TardyEvent, error) {
	query := r.DB.WithContext(ctx).Model(&model.TardyEvent{})
	if q.CourseID != 0 {
		query = query.Where("id_curso = ?", q.CourseID)
	}
	if q.From != "" {
		query = query.Where("fecha >= ?", q.From)
	}
	if q.To != "" {
		query = query.Where("fecha <= ?", q.To)
	}

	var events []model.TardyEvent
	if err := query.Order("fecha, hora, id").Find(&events).Error; err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return events, nil
	}

	studentIDs := make([]uint, 0, len(events))
	courseIDs := make([]uint, 0)
	seenCourse := make(map[uint]bool)
	for _, e := range events {
		studentIDs = append(studentIDs, e.StudentID)
		if !seenCourse[e.CourseID] {
			seenCourse[e.CourseID] = true
			courseIDs = append(courseIDs, e.CourseID)
		}
	}

	var students []model.Student
	if err := r.DB.WithContext(ctx).Where("id IN ?", studentIDs).Find(&students).Error; err != nil {
		return nil, err
	}
	studentNames := make(map[uint]string, len(students))
	for _, s := range students {
		studentNames[s.ID] = s.FullName()
	}
	courseNames, err := r.courseNames(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	for i := range events {
		events[i].StudentName = studentNames[events[i].StudentID]
		events[i].CourseName = courseNames[events[i].CourseID]
	}
	return events, nil
}

func (r *SchoolRepository) GetElective(ctx context.Context, id uint) (*model.Elective, error) {
	var elective model.Elective
	err := r.DB.WithContext(ctx).First(&elective, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrElectiveNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	err = r.DB.WithContext(ctx).Model(&model.ElectiveEnrollment{}).
		Where("id_electivo = ?", id).
		Order("id_estudiante").
		Pluck("id_estudiante", &elective.Enrolled).Error
	if err != nil {
		return nil, err
	}
	return &elective, nil
}

func (r *SchoolRepository) SaveAccident(ctx context.Context, report model.AccidentReport) (*model.AccidentReport, error) {
	return nil, util.ErrReadOnlySource
}

func (r *SchoolRepository) Enroll(ctx context.Context, electiveID, studentID uint) error {
	return util.ErrReadOnlySource
}

func (r *SchoolRepository) Unenroll(ctx context.Context, electiveID, studentID uint) error {
	return util.ErrReadOnlySource
}

// Ping checks the replica connection.
func (r *SchoolRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
