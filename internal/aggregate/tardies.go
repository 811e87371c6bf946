package aggregate

import (
	"math"
	"strings"

	"school_reports_backend/internal/model"
	"school_reports_backend/internal/util"
)

// ByDay groups by the full date.
func ByDay(e model.TardyEvent) string {
	return e.Date
}

// ByMonth groups by the "YYYY-MM" prefix. Dates are not validated: a value
// too short to hold a month becomes its own key.
func ByMonth(e model.TardyEvent) string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

func ByCourse(e model.TardyEvent) string {
	return e.CourseName
}

// ByHour groups "08:47" into "08:00".
func ByHour(e model.TardyEvent) string {
	return strings.Split(e.Time, ":")[0] + ":00"
}

func ByType(e model.TardyEvent) string {
	return e.Type
}

// Tardy aggregates events by key with llegada/jornada sub-counts.
func Tardy(events []model.TardyEvent, key KeyFunc[model.TardyEvent]) *Buckets {
	return Aggregate(events, key, ByType, util.TardyKinds...)
}

// TardyStats is the summary shown on the tardies dashboard.
type TardyStats struct {
	Total        int      `json:"total"`
	Justified    int      `json:"justified"`
	DailyAverage float64  `json:"promedioDiario"`
	ByDay        []Bucket `json:"byDay"`
	ByMonth      []Bucket `json:"byMonth"`
	ByCourse     []Bucket `json:"byCourse"`
	ByHour       []Bucket `json:"byHour"`
	PeakDay      string   `json:"peakDay,omitempty"`
	PeakHour     string   `json:"peakHour,omitempty"`
	PeakCourse   string   `json:"peakCourse,omitempty"`
}

// DailyAverage is total events over distinct days, rounded to two decimals.
func DailyAverage(events []model.TardyEvent) float64 {
	return round2(Tardy(events, ByDay).PerBucket())
}

// Summarize computes every tardy statistic in one pass per dimension.
func Summarize(events []model.TardyEvent) TardyStats {
	days := Tardy(events, ByDay)
	months := Tardy(events, ByMonth)
	courses := Tardy(events, ByCourse)
	hours := Tardy(events, ByHour)

	stats := TardyStats{
		Total:        days.Total(),
		DailyAverage: round2(days.PerBucket()),
		ByDay:        days.Sorted(),
		ByMonth:      months.Sorted(),
		ByCourse:     courses.Sorted(),
		ByHour:       hours.Sorted(),
	}
	for _, e := range events {
		if e.Justified {
			stats.Justified++
		}
	}
	if b, ok := days.Max(); ok {
		stats.PeakDay = b.Key
	}
	if b, ok := hours.Max(); ok {
		stats.PeakHour = b.Key
	}
	if b, ok := courses.Max(); ok {
		stats.PeakCourse = b.Key
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
