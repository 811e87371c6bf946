package repository

import (
	"context"

	"school_reports_backend/internal/model"
)

// Source is where school records come from: the REST API client or the read
// replica, optionally behind CachedSource.
type Source interface {
	GetStudent(ctx context.Context, id uint) (*model.Student, error)
	ListCourseStudents(ctx context.Context, courseID uint) ([]model.Student, error)
	ListStudentGrades(ctx context.Context, studentID uint) ([]model.SubjectGrades, error)
	ListCourseGrades(ctx context.Context, courseID uint) ([]model.SubjectGrades, error)
	ListTardies(ctx context.Context, q model.TardyQuery) ([]model.TardyEvent, error)
	SaveAccident(ctx context.Context, report model.AccidentReport) (*model.AccidentReport, error)
	GetElective(ctx context.Context, id uint) (*model.Elective, error)
	Enroll(ctx context.Context, electiveID, studentID uint) error
	Unenroll(ctx context.Context, electiveID, studentID uint) error
}
