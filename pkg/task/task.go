package task

import (
	"fmt"
	"time"
)

// Meta carries optional task annotations persisted alongside the task.
type Meta struct {
	Ephemeral bool   `json:"ephemeral,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Task is a single care task as fetched for a calendar window. Tasks are
// immutable once fetched; every successful fetch replaces them wholesale.
type Task struct {
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	DueAtLocal string `json:"dueAtLocal"`
	Timezone   string `json:"timezone,omitempty"`
	PlantID    string `json:"plantId,omitempty"`
	Meta       Meta   `json:"metadata,omitempty"`
}

// DueAtLocal is a wall-clock datetime with no offset; these are the layouts
// accepted when interpreting it in the task's zone.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Location resolves the task's timezone, defaulting to UTC when unset.
func (t Task) Location() (*time.Location, error) {
	if t.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, fmt.Errorf("task: load timezone %q: %w", t.Timezone, err)
	}
	return loc, nil
}

// DueAt parses DueAtLocal in the task's own zone and returns the due instant.
func (t Task) DueAt() (time.Time, error) {
	loc, err := t.Location()
	if err != nil {
		return time.Time{}, err
	}
	return ParseLocal(t.DueAtLocal, loc)
}

// ParseLocal interprets a local ISO datetime string in the given location.
func ParseLocal(v string, loc *time.Location) (time.Time, error) {
	for _, layout := range localLayouts {
		if due, err := time.ParseInLocation(layout, v, loc); err == nil {
			return due, nil
		}
	}
	return time.Time{}, fmt.Errorf("task: parse due datetime %q: unrecognized format", v)
}

// FormatLocal renders an instant as the canonical DueAtLocal string.
func FormatLocal(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
