package task

// Ref names the backend object a task resolves to: either a stored row, or
// a not-yet-materialized occurrence of a recurring series. It is built once
// where tasks cross the repository boundary so downstream code never
// re-parses id strings.
type Ref struct {
	// ID is the stored row id; empty when the ref is an occurrence.
	ID string

	// SeriesID and Date identify one occurrence of a recurring series.
	// Date is a date-only ISO string (yyyy-MM-dd).
	SeriesID string
	Date     string
}

// NewRef classifies a task. An ephemeral task whose id is malformed resolves
// to a concrete ref of the raw id; completing it then targets the id
// directly, which is the deliberate recovery path for bad composite ids.
func NewRef(t Task) Ref {
	if IsEphemeral(t) {
		if seriesID, date, ok := DecodeOccurrenceID(t.ID); ok {
			return Ref{SeriesID: seriesID, Date: date}
		}
	}
	return Ref{ID: t.ID}
}

// IsOccurrence reports whether the ref targets a series occurrence.
func (r Ref) IsOccurrence() bool {
	return r.SeriesID != ""
}
