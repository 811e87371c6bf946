package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"school_reports_backend/internal/client"
	"school_reports_backend/internal/config"
	"school_reports_backend/internal/document"
	"school_reports_backend/internal/model"
	"school_reports_backend/internal/service"
	"school_reports_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func withUser(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 5, Role: role})
		c.Next()
	}
}

func newTestRouter(t *testing.T, src *stubSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	layouts, err := document.NewRegistry("")
	require.NoError(t, err)
	storage := &service.StorageService{Provider: &service.LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}}
	templates := service.NewTemplateService(storage, "templates")

	report := NewReportController(service.NewReportService(src, layouts, templates, nil, "Marta Rojas"))
	tardy := NewTardyController(service.NewTardyService(src, 2))
	accident := NewAccidentController(service.NewAccidentService(src, layouts, templates, nil))
	grading := NewGradingController()
	enrollment := NewEnrollmentController(service.NewEnrollmentService(src))
	tmpl := NewTemplateController(templates)

	r := gin.New()
	api := r.Group("/api", withUser(model.Admin))
	api.GET("/reports/students/:id/report-card", report.StudentReportCard)
	api.GET("/reports/courses/:id/grades.xlsx", report.CourseGrades)
	api.GET("/tardies/stats", tardy.Stats)
	api.GET("/tardies/export", tardy.Export)
	api.POST("/accidents", accident.Declare)
	api.GET("/grading/concept", grading.Concept)
	api.POST("/grading/average", grading.Average)
	api.GET("/electives/:id", enrollment.GetElective)
	api.POST("/electives/:id/enroll", enrollment.Enroll)
	api.DELETE("/electives/:id/enroll/:studentId", enrollment.Unenroll)
	api.PUT("/admin/templates/:name", tmpl.Upload)
	api.DELETE("/admin/templates/:name", tmpl.Remove)
	return r
}

func call(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGradingConcept(t *testing.T) {
	r := newTestRouter(t, newStubSource())

	w := call(r, http.MethodGet, "/api/grading/concept?value=65", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"letter":"B","numeric":50,"valid":true}`, string(decode(t, w).Data))

	w = call(r, http.MethodGet, "/api/grading/concept?value=5", nil)
	assert.JSONEq(t, `{"letter":"5","numeric":0,"valid":false}`, string(decode(t, w).Data))

	w = call(r, http.MethodGet, "/api/grading/concept?letter=mb", nil)
	assert.JSONEq(t, `{"letter":"MB","numeric":70}`, string(decode(t, w).Data))

	w = call(r, http.MethodGet, "/api/grading/concept?value=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGradingAverage(t *testing.T) {
	r := newTestRouter(t, newStubSource())

	tests := []struct {
		body string
		want string
	}{
		{`{"values":[60,null,65,"-",70]}`, "65.0"},
		{`{"values":[]}`, "-"},
		{`{"values":[null,"-","x"]}`, "-"},
		{`{"values":["6,5",6.5]}`, "6.5"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/grading/average", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, tt.body)
		assert.JSONEq(t, fmt.Sprintf(`{"average":%q}`, tt.want), string(decode(t, w).Data), tt.body)
	}
}

func TestStudentReportCard(t *testing.T) {
	src := newStubSource()
	r := newTestRouter(t, src)

	w := call(r, http.MethodGet, "/api/reports/students/7/report-card", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimePDF, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "informe_notas_12_345_678-5.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	// no grades
	w = call(r, http.MethodGet, "/api/reports/students/8/report-card", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no data to print", decode(t, w).Message)

	w = call(r, http.MethodGet, "/api/reports/students/99/report-card", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodGet, "/api/reports/students/abc/report-card", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseGrades(t *testing.T) {
	r := newTestRouter(t, newStubSource())

	w := call(r, http.MethodGet, "/api/reports/courses/1/grades.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimeXLSX, w.Header().Get("Content-Type"))

	w = call(r, http.MethodGet, "/api/reports/courses/9/grades.xlsx", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTardyStats(t *testing.T) {
	r := newTestRouter(t, newStubSource())

	w := call(r, http.MethodGet, "/api/tardies/stats?course_id=1&course_id=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Total        int     `json:"total"`
		DailyAverage float64 `json:"promedioDiario"`
		PeakDay      string  `json:"peakDay"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1.5, stats.DailyAverage)
	assert.Equal(t, "2024-03-05", stats.PeakDay)

	w = call(r, http.MethodGet, "/api/tardies/stats?course_id=1&course_id=2&course_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Equal(t, 3, stats.Total)

	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodGet, "/api/tardies/stats?course_id=x", nil).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodGet, "/api/tardies/stats?from=2024-03-10&to=2024-03-01", nil).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodGet, "/api/tardies/stats?from=ayer", nil).Code)
}

func TestTardyExport(t *testing.T) {
	src := newStubSource()
	r := newTestRouter(t, src)

	w := call(r, http.MethodGet, "/api/tardies/export?course_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimeXLSX, w.Header().Get("Content-Type"))

	src.err = &client.APIError{Status: http.StatusInternalServerError, Body: "boom"}
	w = call(r, http.MethodGet, "/api/tardies/export?course_id=1", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDeclareAccident(t *testing.T) {
	r := newTestRouter(t, newStubSource())

	report := model.AccidentReport{
		StudentID:    7,
		Date:         "2024-04-02",
		Time:         "10:30",
		Place:        "Patio central",
		Kind:         "escolar",
		Circumstance: "Resbaló en la escalera al salir del recreo.",
	}
	w := call(r, http.MethodPost, "/api/accidents", report)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, util.MimePDF, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "declaracion_accidente_41.pdf")

	report.Kind = "otro"
	w = call(r, http.MethodPost, "/api/accidents", report)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/accidents", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollment(t *testing.T) {
	r := newTestRouter(t, newStubSource())

	w := call(r, http.MethodPost, "/api/electives/3/enroll", gin.H{"studentId": 7})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result service.EnrollmentResult
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.True(t, result.Enrolled)
	assert.Equal(t, uint(30), result.SubjectID)

	w = call(r, http.MethodPost, "/api/electives/3/enroll", gin.H{"studentId": 7})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/api/electives/3/enroll", gin.H{"studentId": 8})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/api/electives/3/enroll", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPost, "/api/electives/99/enroll", gin.H{"studentId": 7})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodDelete, "/api/electives/3/enroll/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = call(r, http.MethodDelete, "/api/electives/3/enroll/7", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodGet, "/api/electives/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func templatePDF(t *testing.T) []byte {
	t.Helper()
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func upload(r *gin.Engine, name string, data []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "plantilla.pdf")
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/admin/templates/"+name, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTemplateUpload(t *testing.T) {
	r := newTestRouter(t, newStubSource())
	pdf := templatePDF(t)

	w := upload(r, document.LayoutAccident, pdf)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(decode(t, w).Data), "templates/accident.pdf")

	assert.Equal(t, http.StatusBadRequest, upload(r, document.LayoutAccident, []byte("hola")).Code)
	assert.Equal(t, http.StatusBadRequest, upload(r, document.LayoutAccident, []byte("%PDF-1.4 truncated")).Code)
	assert.Equal(t, http.StatusBadRequest, upload(r, "boleta", pdf).Code)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/templates/accident", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateRemove(t *testing.T) {
	r := newTestRouter(t, newStubSource())
	pdf := templatePDF(t)

	assert.Equal(t, http.StatusNotFound, call(r, http.MethodDelete, "/api/admin/templates/accident", nil).Code)

	require.Equal(t, http.StatusOK, upload(r, document.LayoutAccident, pdf).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodDelete, "/api/admin/templates/accident", nil).Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodDelete, "/api/admin/templates/accident", nil).Code)

	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodDelete, "/api/admin/templates/boleta", nil).Code)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verr := validator.New().Struct(model.AccidentReport{})
	require.Error(t, verr)

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("report card: %w", util.ErrNoData), http.StatusNotFound},
		{verr, http.StatusBadRequest},
		{fmt.Errorf("%w: from", util.ErrInvalidQuery), http.StatusBadRequest},
		{util.ErrCourseNotFound, http.StatusNotFound},
		{fmt.Errorf("enroll: %w", util.ErrNoCupos), http.StatusConflict},
		{util.ErrAlreadyEnrolled, http.StatusConflict},
		{util.ErrReadOnlySource, http.StatusNotImplemented},
		{fmt.Errorf("report_card: %w", util.ErrTemplate), http.StatusServiceUnavailable},
		{&client.APIError{Status: 500}, http.StatusBadGateway},
		{fmt.Errorf("get student: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(ctx, tt.err)
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}
