package service

import (
	"context"
	"fmt"
	"time"

	"school_reports_backend/internal/document"
	"school_reports_backend/internal/model"
	"school_reports_backend/internal/repository"
	"school_reports_backend/internal/util"
	"school_reports_backend/pkg/logger"
	"school_reports_backend/pkg/monitoring"
	"school_reports_backend/pkg/timeouts"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	AccidentSchool  = "escolar"
	AccidentCommute = "trayecto"
)

type AccidentService struct {
	source    repository.Source
	layouts   *document.Registry
	templates *TemplateService
	archiver  *Archiver
	validate  *validator.Validate
	now       func() time.Time
}

func NewAccidentService(source repository.Source, layouts *document.Registry, templates *TemplateService, archiver *Archiver) *AccidentService {
	return &AccidentService{
		source:    source,
		layouts:   layouts,
		templates: templates,
		archiver:  archiver,
		validate:  validator.New(),
		now:       time.Now,
	}
}

func mark(ok bool) string {
	if ok {
		return "X"
	}
	return ""
}

// Declare saves the accident declaration through the source and prints it.
// The save happens first: nothing is printed for a declaration the school
// API did not accept.
func (s *AccidentService) Declare(ctx context.Context, report model.AccidentReport, userID uint) (*Document, error) {
	start := time.Now()
	if err := s.validate.Struct(report); err != nil {
		return nil, err
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), logger.Log, "accident declaration")
	defer cancel()

	if report.StudentName == "" || report.StudentRUT == "" || report.CourseName == "" {
		student, err := s.source.GetStudent(ctx, report.StudentID)
		if err != nil {
			return nil, err
		}
		if report.StudentName == "" {
			report.StudentName = student.FullName()
		}
		if report.StudentRUT == "" {
			report.StudentRUT = student.RUT
		}
		if report.CourseName == "" {
			report.CourseName = student.CourseName
		}
	}

	saved, err := s.source.SaveAccident(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("save accident of student %d: %w", report.StudentID, err)
	}
	logger.Log.Info("accident declared",
		zap.Uint("id", saved.ID),
		zap.Uint("student", saved.StudentID),
		zap.String("kind", saved.Kind),
	)

	layout, err := s.layouts.Get(document.LayoutAccident)
	if err != nil {
		return nil, err
	}
	template, err := s.templates.Load(ctx, document.LayoutAccident)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		"student_name":  saved.StudentName,
		"student_rut":   saved.StudentRUT,
		"course":        saved.CourseName,
		"accident_time": saved.Time,
		"place":         saved.Place,
		"kind_school":   mark(saved.Kind == AccidentSchool),
		"kind_commute":  mark(saved.Kind == AccidentCommute),
		"reported_by":   saved.ReportedBy,
	}
	if date, err := time.Parse(util.DateFormat, saved.Date); err == nil {
		dateFields("accident", date, fields)
	}
	dateFields("issue", s.now(), fields)

	data, err := document.Compose(layout, template, document.Content{
		Fields: fields,
		Blocks: map[string]string{
			"circumstance": saved.Circumstance,
			"witnesses":    saved.Witnesses,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("accident declaration %d: %w", saved.ID, err)
	}

	ref := idString(saved.ID)
	if saved.ID == 0 {
		ref = idString(saved.StudentID) + "_" + saved.Date
	}
	doc := &Document{
		Filename:    "declaracion_accidente_" + fileSafe(ref) + ".pdf",
		ContentType: util.MimePDF,
		Data:        data,
	}
	s.archiver.Archive(ctx, util.KindAccident, ref, userID, doc)
	monitoring.ObserveReport(util.KindAccident, start)
	return doc, nil
}
