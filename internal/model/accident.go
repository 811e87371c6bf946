package model

// AccidentReport is the school accident declaration filled by inspectoría.
// swagger:model AccidentReport
type AccidentReport struct {
	ID           uint   `json:"id,omitempty"`
	StudentID    uint   `json:"id_estudiante" validate:"required"`
	StudentName  string `json:"nombre_estudiante"`
	StudentRUT   string `json:"rut_estudiante"`
	CourseName   string `json:"nombre_curso"`
	Date         string `json:"fecha" validate:"required,datetime=2006-01-02"`
	Time         string `json:"hora" validate:"required,datetime=15:04"`
	Place        string `json:"lugar" validate:"required,max=200"`
	Kind         string `json:"tipo" validate:"required,oneof=escolar trayecto"`
	Circumstance string `json:"circunstancia" validate:"required,max=2000"`
	Witnesses    string `json:"testigos" validate:"max=500"`
	ReportedBy   string `json:"informante" validate:"max=120"`
}
