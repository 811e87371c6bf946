package util

import "errors"

var (
	ErrNoData           = errors.New("no data to print")
	ErrTemplate         = errors.New("report template unavailable")
	ErrStudentNotFound  = errors.New("student not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrElectiveNotFound = errors.New("elective not found")
	ErrNoCupos          = errors.New("no cupos available")
	ErrAlreadyEnrolled  = errors.New("student already enrolled")
	ErrNotEnrolled      = errors.New("student not enrolled")
	ErrReadOnlySource   = errors.New("source is read only")
	ErrInvalidGrade     = errors.New("grade out of range")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidQuery     = errors.New("invalid query")
)
