// Package client talks to the school's REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"school_reports_backend/internal/config"
	"school_reports_backend/internal/model"
	"school_reports_backend/internal/util"
	"school_reports_backend/pkg/logger"
	"school_reports_backend/pkg/timeouts"
	"school_reports_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// APIError is a non-2xx answer from the school API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("school API error (status %d): %s", e.Status, e.Body)
}

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 2048

type SchoolAPI struct {
	mu      sync.RWMutex
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewSchoolAPI(cfg config.UpstreamConfig) *SchoolAPI {
	c := &SchoolAPI{http: &http.Client{}}
	c.Reconfigure(cfg)
	return c
}

// Reconfigure swaps base URL and timeout; used on config reload.
func (c *SchoolAPI) Reconfigure(cfg config.UpstreamConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	c.timeout = cfg.Timeout
}

func (c *SchoolAPI) settings() (string, time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	timeout := c.timeout
	if timeout <= 0 {
		timeout = timeouts.Medium()
	}
	return c.baseURL, timeout
}

// do performs one request and decodes a JSON answer into out (when non-nil).
func (c *SchoolAPI) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	baseURL, timeout := c.settings()
	ctx, cancel := timeouts.WithTimeout(ctx, timeout, logger.Log, op)
	defer cancel()

	ctx, span := tracing.Tracer.Start(ctx, "upstream "+op)
	defer span.End()
	span.SetAttributes(attribute.String("http.method", method), attribute.String("http.path", path))

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	logger.Log.Debug("upstream call",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		span.SetStatus(codes.Error, apiErr.Error())
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// statusIs reports whether err carries an APIError with the given status.
func statusIs(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func (c *SchoolAPI) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := c.do(ctx, "get student", http.MethodGet, "/estudiantes/"+strconv.FormatUint(uint64(id), 10), nil, &student)
	if statusIs(err, http.StatusNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrStudentNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *SchoolAPI) ListCourseStudents(ctx context.Context, courseID uint) ([]model.Student, error) {
	var students []model.Student
	err := c.do(ctx, "list course students", http.MethodGet, "/cursos/"+strconv.FormatUint(uint64(courseID), 10)+"/estudiantes", nil, &students)
	if statusIs(err, http.StatusNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrCourseNotFound, courseID)
	}
	return students, err
}

func (c *SchoolAPI) ListStudentGrades(ctx context.Context, studentID uint) ([]model.SubjectGrades, error) {
	var grades []model.SubjectGrades
	err := c.do(ctx, "list student grades", http.MethodGet, "/estudiantes/"+strconv.FormatUint(uint64(studentID), 10)+"/calificaciones", nil, &grades)
	if statusIs(err, http.StatusNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrStudentNotFound, studentID)
	}
	return grades, err
}

func (c *SchoolAPI) ListCourseGrades(ctx context.Context, courseID uint) ([]model.SubjectGrades, error) {
	var grades []model.SubjectGrades
	err := c.do(ctx, "list course grades", http.MethodGet, "/cursos/"+strconv.FormatUint(uint64(courseID), 10)+"/calificaciones", nil, &grades)
	if statusIs(err, http.StatusNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrCourseNotFound, courseID)
	}
	return grades, err
}

func (c *SchoolAPI) ListTardies(ctx context.Context, q model.TardyQuery) ([]model.TardyEvent, error) {
	params := url.Values{}
	if q.CourseID != 0 {
		params.Set("id_curso", strconv.FormatUint(uint64(q.CourseID), 10))
	}
	if q.From != "" {
		params.Set("desde", q.From)
	}
	if q.To != "" {
		params.Set("hasta", q.To)
	}
	path := "/atrasos"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var events []model.TardyEvent
	if err := c.do(ctx, "list tardies", http.MethodGet, path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SaveAccident stores the declaration and returns it as saved (with its id).
func (c *SchoolAPI) SaveAccident(ctx context.Context, report model.AccidentReport) (*model.AccidentReport, error) {
	var saved model.AccidentReport
	if err := c.do(ctx, "save accident", http.MethodPost, "/accidentes", report, &saved); err != nil {
		return nil, err
	}
	if saved.StudentID == 0 {
		// API answered without echoing the record
		id := saved.ID
		saved = report
		saved.ID = id
	}
	return &saved, nil
}

func (c *SchoolAPI) GetElective(ctx context.Context, id uint) (*model.Elective, error) {
	var elective model.Elective
	err := c.do(ctx, "get elective", http.MethodGet, "/electivos/"+strconv.FormatUint(uint64(id), 10), nil, &elective)
	if statusIs(err, http.StatusNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrElectiveNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &elective, nil
}

func (c *SchoolAPI) Enroll(ctx context.Context, electiveID, studentID uint) error {
	body := map[string]uint{"id_estudiante": studentID}
	err := c.do(ctx, "enroll", http.MethodPost, "/electivos/"+strconv.FormatUint(uint64(electiveID), 10)+"/inscripciones", body, nil)
	switch {
	case statusIs(err, http.StatusNotFound):
		return fmt.Errorf("%w: %d", util.ErrElectiveNotFound, electiveID)
	case statusIs(err, http.StatusConflict):
		return fmt.Errorf("%w: elective %d", util.ErrNoCupos, electiveID)
	}
	return err
}

func (c *SchoolAPI) Unenroll(ctx context.Context, electiveID, studentID uint) error {
	path := fmt.Sprintf("/electivos/%d/inscripciones/%d", electiveID, studentID)
	err := c.do(ctx, "unenroll", http.MethodDelete, path, nil, nil)
	if statusIs(err, http.StatusNotFound) {
		return fmt.Errorf("%w: student %d in elective %d", util.ErrNotEnrolled, studentID, electiveID)
	}
	return err
}

// Ping checks the API answers; a 4xx still counts as reachable.
func (c *SchoolAPI) Ping(ctx context.Context) error {
	err := c.do(ctx, "ping", http.MethodGet, "/", nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		return nil
	}
	return err
}
