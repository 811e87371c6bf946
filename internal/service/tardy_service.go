package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"school_reports_backend/internal/aggregate"
	"school_reports_backend/internal/document"
	"school_reports_backend/internal/model"
	"school_reports_backend/internal/repository"
	"school_reports_backend/internal/util"
	"school_reports_backend/pkg/logger"
	"school_reports_backend/pkg/monitoring"
	"school_reports_backend/pkg/timeouts"

	"golang.org/x/sync/errgroup"
)

// TardyFilter selects tardies of some courses (none = all) between two
// inclusive dates.
type TardyFilter struct {
	CourseIDs []uint
	From      string
	To        string
}

// Validate checks the dates are YYYY-MM-DD and in order.
func (f TardyFilter) Validate() error {
	var from, to time.Time
	var err error
	if f.From != "" {
		if from, err = time.Parse(util.DateFormat, f.From); err != nil {
			return fmt.Errorf("%w: from %q is not a date", util.ErrInvalidQuery, f.From)
		}
	}
	if f.To != "" {
		if to, err = time.Parse(util.DateFormat, f.To); err != nil {
			return fmt.Errorf("%w: to %q is not a date", util.ErrInvalidQuery, f.To)
		}
	}
	if f.From != "" && f.To != "" && to.Before(from) {
		return fmt.Errorf("%w: from %s is after to %s", util.ErrInvalidQuery, f.From, f.To)
	}
	return nil
}

type TardyService struct {
	source repository.Source

	mu          sync.RWMutex
	concurrency int
}

func NewTardyService(source repository.Source, concurrency int) *TardyService {
	s := &TardyService{source: source}
	s.SetConcurrency(concurrency)
	return s
}

// SetConcurrency bounds parallel per-course fetches; used on config reload.
func (s *TardyService) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	s.concurrency = n
	s.mu.Unlock()
}

func (s *TardyService) limit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.concurrency
}

// fetch reads the tardies of every requested course concurrently and
// concatenates them in the order the courses were requested.
func (s *TardyService) fetch(ctx context.Context, f TardyFilter) ([]model.TardyEvent, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if len(f.CourseIDs) == 0 {
		return s.source.ListTardies(ctx, model.TardyQuery{From: f.From, To: f.To})
	}

	// a course fetched twice would count its tardies twice
	courseIDs := util.UniqueUints(f.CourseIDs)
	results := make([][]model.TardyEvent, len(courseIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit())
	for i, id := range courseIDs {
		i, id := i, id
		g.Go(func() error {
			events, err := s.source.ListTardies(gctx, model.TardyQuery{CourseID: id, From: f.From, To: f.To})
			if err != nil {
				return fmt.Errorf("tardies of course %d: %w", id, err)
			}
			results[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []model.TardyEvent
	for _, r := range results {
		events = append(events, r...)
	}
	return events, nil
}

func (s *TardyService) Stats(ctx context.Context, f TardyFilter) (*aggregate.TardyStats, error) {
	start := time.Now()
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), logger.Log, "tardy stats")
	defer cancel()

	events, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	stats := aggregate.Summarize(events)
	monitoring.ObserveReport(util.KindTardies, start)
	return &stats, nil
}

func justified(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

// Workbook lists the tardies by date and time, with a per-course summary
// sheet.
func (s *TardyService) Workbook(ctx context.Context, f TardyFilter) (*Document, error) {
	start := time.Now()
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), logger.Log, "tardy workbook")
	defer cancel()

	events, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, util.ErrNoData
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})

	list := document.Sheet{
		Name:   "Atrasos",
		Header: []string{"Fecha", "Hora", "Estudiante", "Curso", "Tipo", "Justificado"},
	}
	for _, e := range events {
		list.Rows = append(list.Rows, []interface{}{e.Date, e.Time, e.StudentName, e.CourseName, e.Type, justified(e.Justified)})
	}

	summary := document.Sheet{
		Name:   "Resumen",
		Header: []string{"Curso", "Total", util.TardyArrival, util.TardyDuring},
	}
	for _, b := range aggregate.Tardy(events, aggregate.ByCourse).Sorted() {
		summary.Rows = append(summary.Rows, []interface{}{b.Key, b.Count, b.ByType[util.TardyArrival], b.ByType[util.TardyDuring]})
	}

	data, err := document.WriteWorkbook(list, summary)
	if err != nil {
		return nil, fmt.Errorf("tardy workbook: %w", err)
	}

	name := "atrasos"
	if f.From != "" || f.To != "" {
		name += "_" + f.From + "_" + f.To
	}
	monitoring.ObserveReport(util.KindTardies, start)
	return &Document{Filename: fileSafe(name) + ".xlsx", ContentType: util.MimeXLSX, Data: data}, nil
}
