package model

// Elective is an elective course offering with its cupos.
// swagger:model Elective
type Elective struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"column:nombre;size:100" json:"nombre"`
	SubjectID      uint   `gorm:"column:id_asignatura" json:"id_asignatura"`
	CuposTotal     int    `gorm:"column:cupos_totales" json:"cupos_totales"`
	CuposAvailable int    `gorm:"column:cupos_disponibles" json:"cupos_disponibles"`
	Enrolled       []uint `gorm:"-" json:"inscritos"`
}

func (Elective) TableName() string {
	return "electivos"
}

type ElectiveEnrollment struct {
	ElectiveID uint `gorm:"primaryKey;column:id_electivo"`
	StudentID  uint `gorm:"primaryKey;column:id_estudiante"`
}

func (ElectiveEnrollment) TableName() string {
	return "electivo_inscripciones"
}
