package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	SourceAPI      = "api"
	SourceDatabase = "database"
)

// Content types of generated documents
const (
	MimePDF         = "application/pdf"
	MimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeOctetStream = "application/octet-stream"
)

// Document kinds, also used as metric labels and archive prefixes
const (
	KindReportCard   = "report_card"
	KindAccident     = "accident"
	KindCourseGrades = "course_grades"
	KindTardies      = "tardies"
)

// Tardy types reported by the school API
const (
	TardyArrival = "llegada"
	TardyDuring  = "jornada"
)

var TardyKinds = []string{TardyArrival, TardyDuring}
