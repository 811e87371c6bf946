package model

// TardyEvent is an atraso. "llegada" is a late arrival, "jornada" a late
// return during the school day.
// swagger:model TardyEvent
type TardyEvent struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	StudentID   uint   `gorm:"column:id_estudiante;index" json:"id_estudiante"`
	StudentName string `gorm:"-" json:"nombre_estudiante"`
	CourseID    uint   `gorm:"column:id_curso;index" json:"id_curso"`
	CourseName  string `gorm:"-" json:"nombre_curso"`
	Date        string `gorm:"column:fecha;size:10;index" json:"fecha"`
	Time        string `gorm:"column:hora;size:5" json:"hora"`
	Type        string `gorm:"column:tipo;size:10" json:"tipo"`
	Justified   bool   `gorm:"column:justificado" json:"justificado"`
}

func (TardyEvent) TableName() string {
	return "atrasos"
}

// TardyQuery filters tardies of one course (0 = every course) between two
// inclusive YYYY-MM-DD dates. Empty bounds are open.
type TardyQuery struct {
	CourseID uint
	From     string
	To       string
}
