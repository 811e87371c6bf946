package model

import "strings"

// swagger:model Student
type Student struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	RUT            string `gorm:"column:rut;size:12;index" json:"rut"`
	Names          string `gorm:"column:nombres;size:100" json:"nombres"`
	FatherSurname  string `gorm:"column:apellido_paterno;size:60" json:"apellido_paterno"`
	MotherSurname  string `gorm:"column:apellido_materno;size:60" json:"apellido_materno"`
	CourseID       uint   `gorm:"column:id_curso;index" json:"id_curso"`
	CourseName     string `gorm:"-" json:"nombre_curso"`
	Address        string `gorm:"column:direccion;size:200" json:"direccion,omitempty"`
	GuardianName   string `gorm:"column:nombre_apoderado;size:120" json:"nombre_apoderado,omitempty"`
	GuardianPhone  string `gorm:"column:telefono_apoderado;size:20" json:"telefono_apoderado,omitempty"`
	EnrollmentYear int    `gorm:"column:anio" json:"anio,omitempty"`
}

func (Student) TableName() string {
	return "estudiantes"
}

// FullName returns "Names FatherSurname MotherSurname" without gaps for
// missing parts.
func (s Student) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Names, s.FatherSurname, s.MotherSurname} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// swagger:model Course
type Course struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:nombre_curso;size:60" json:"nombre_curso"`
	Year int    `gorm:"column:anio" json:"anio"`
}

func (Course) TableName() string {
	return "cursos"
}

// Subject is an asignatura. Concept subjects (religion, orientation) print
// letter bands instead of numbers.
// swagger:model Subject
type Subject struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"column:nombre_asignatura;size:100" json:"nombre_asignatura"`
	Concept bool   `gorm:"column:es_concepto" json:"es_concepto"`
	Order   int    `gorm:"column:orden" json:"orden"`
}

func (Subject) TableName() string {
	return "asignaturas"
}
