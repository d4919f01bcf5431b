package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/verdantlabs/growcal/pkg/dateutil"
	"github.com/verdantlabs/growcal/pkg/task"
)

// Series is a recurring care task definition. Occurrences are not stored;
// they are expanded on demand for the queried window and identified by the
// composite occurrence id until completed.
type Series struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	PlantID      string `json:"plantId,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
	StartDate    string `json:"startDate"`           // yyyy-MM-dd
	TimeOfDay    string `json:"timeOfDay,omitempty"` // HH:mm, default 09:00
	IntervalDays int    `json:"intervalDays"`
}

func (sr Series) location() *time.Location {
	if sr.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(sr.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (sr Series) timeOfDay() string {
	if sr.TimeOfDay == "" {
		return "09:00"
	}
	return sr.TimeOfDay
}

// occurrenceOn builds the ephemeral task for one occurrence date.
func (sr Series) occurrenceOn(date string) task.Task {
	return task.Task{
		ID:         task.EncodeOccurrenceID(sr.ID, date),
		Title:      sr.Title,
		DueAtLocal: date + "T" + sr.timeOfDay() + ":00",
		Timezone:   sr.Timezone,
		PlantID:    sr.PlantID,
		Meta:       task.Meta{Ephemeral: true},
	}
}

// FirstOccurrence returns the ephemeral task for the series' start date.
func (sr Series) FirstOccurrence() task.Task {
	return sr.occurrenceOn(sr.StartDate)
}

// expandSeries generates the pending occurrences of every stored series
// that fall inside the window, skipping dates already completed.
func (s *Store) expandSeries(ctx context.Context, window dateutil.Window) ([]task.Task, error) {
	out := make([]task.Task, 0)
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, bucketSeries+"-") {
			continue
		}
		var sr Series
		if err := s.read(key, &sr); err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		occurrences, err := s.seriesOccurrences(sr, window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		out = append(out, occurrences...)
	}
	return out, nil
}

func (s *Store) seriesOccurrences(sr Series, window dateutil.Window) ([]task.Task, error) {
	if sr.IntervalDays <= 0 {
		return nil, fmt.Errorf("series %s: non-positive interval", sr.ID)
	}
	loc := sr.location()
	start, err := time.ParseInLocation(dateutil.DayKeyLayout, sr.StartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("series %s: start date: %w", sr.ID, err)
	}

	// Jump to the first occurrence at or after the window start instead of
	// stepping from the series origin one interval at a time.
	cursor := start
	if ahead := int(window.Start.Sub(start).Hours() / 24); ahead > 0 {
		steps := ahead / sr.IntervalDays
		cursor = start.AddDate(0, 0, steps*sr.IntervalDays)
	}

	out := make([]task.Task, 0)
	for !cursor.After(window.End) {
		date := cursor.Format(dateutil.DayKeyLayout)
		t := sr.occurrenceOn(date)
		due, err := t.DueAt()
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", sr.ID, err)
		}
		if window.Contains(due) && !s.d.Has(bucketCompleted+"-"+t.ID) {
			out = append(out, t)
		}
		cursor = cursor.AddDate(0, 0, sr.IntervalDays)
	}
	return out, nil
}
