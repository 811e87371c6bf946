package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SlotCount is the number of grade slots of one subject enrollment.
const SlotCount = 23

// Grade is the value of one slot. Valid is false for ungraded slots and for
// anything that is not a number.
type Grade struct {
	Value float64
	Valid bool
}

func NewGrade(v float64) Grade {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Grade{}
	}
	return Grade{Value: v, Valid: true}
}

// ParseGrade accepts numbers and numeric strings ("65", "6,5"). nil, "-",
// NaN and free text give an invalid grade.
func ParseGrade(v interface{}) Grade {
	switch x := v.(type) {
	case nil:
		return Grade{}
	case Grade:
		return x
	case *float64:
		if x == nil {
			return Grade{}
		}
		return NewGrade(*x)
	case float64:
		return NewGrade(x)
	case float32:
		return NewGrade(float64(x))
	case int:
		return NewGrade(float64(x))
	case int64:
		return NewGrade(float64(x))
	case uint:
		return NewGrade(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Grade{}
		}
		return NewGrade(f)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", ".")
		if s == "" || s == "-" {
			return Grade{}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Grade{}
		}
		return NewGrade(f)
	}
	return Grade{}
}

func (g Grade) MarshalJSON() ([]byte, error) {
	if !g.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(g.Value)
}

func (g *Grade) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*g = ParseGrade(raw)
	return nil
}

// SubjectGrades is one subject enrollment of a student with all its slots.
// The school API sends it as a flat row with calificacion1..calificacion23.
type SubjectGrades struct {
	StudentID uint
	Subject   Subject
	Slots     [SlotCount]Grade
}

// Slot returns the 1-based slot, or an invalid grade when out of range.
func (s SubjectGrades) Slot(index int) Grade {
	if index < 1 || index > SlotCount {
		return Grade{}
	}
	return s.Slots[index-1]
}

// Window returns slots from..to (1-based, inclusive).
func (s SubjectGrades) Window(from, to int) []Grade {
	if from < 1 {
		from = 1
	}
	if to > SlotCount {
		to = SlotCount
	}
	if from > to {
		return nil
	}
	out := make([]Grade, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, s.Slots[i-1])
	}
	return out
}

// HasGrades reports whether at least one slot holds a grade.
func (s SubjectGrades) HasGrades() bool {
	for _, g := range s.Slots {
		if g.Valid {
			return true
		}
	}
	return false
}

func slotKey(i int) string {
	return "calificacion" + strconv.Itoa(i)
}

func (s *SubjectGrades) UnmarshalJSON(b []byte) error {
	var head struct {
		StudentID   uint   `json:"id_estudiante"`
		SubjectID   uint   `json:"id_asignatura"`
		SubjectName string `json:"nombre_asignatura"`
		Concept     bool   `json:"es_concepto"`
		Order       int    `json:"orden"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	s.StudentID = head.StudentID
	s.Subject = Subject{ID: head.SubjectID, Name: head.SubjectName, Concept: head.Concept, Order: head.Order}
	s.Slots = [SlotCount]Grade{}
	for i := 1; i <= SlotCount; i++ {
		r, ok := raw[slotKey(i)]
		if !ok {
			continue
		}
		if err := s.Slots[i-1].UnmarshalJSON(r); err != nil {
			return fmt.Errorf("%s: %w", slotKey(i), err)
		}
	}
	return nil
}

func (s SubjectGrades) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id_estudiante":     s.StudentID,
		"id_asignatura":     s.Subject.ID,
		"nombre_asignatura": s.Subject.Name,
		"es_concepto":       s.Subject.Concept,
		"orden":             s.Subject.Order,
	}
	for i, g := range s.Slots {
		out[slotKey(i+1)] = g
	}
	return json.Marshal(out)
}

// GradeRecord is one slot as stored in the replica database.
type GradeRecord struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	StudentID uint     `gorm:"column:id_estudiante;uniqueIndex:idx_grade_slot" json:"id_estudiante"`
	SubjectID uint     `gorm:"column:id_asignatura;uniqueIndex:idx_grade_slot" json:"id_asignatura"`
	Slot      int      `gorm:"column:slot;uniqueIndex:idx_grade_slot" json:"slot"`
	Value     *float64 `gorm:"column:valor" json:"valor"`
}

func (GradeRecord) TableName() string {
	return "calificaciones"
}
