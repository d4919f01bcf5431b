package task

import "strings"

// Recurring series produce occurrences that do not exist as stored rows
// until completed. Such an occurrence is referenced by a composite id:
//
//	series:<seriesId>:<yyyy-MM-dd>
//
// Exactly three colon-delimited segments are valid; anything else with the
// prefix is malformed and handled as a plain task id by callers. A series
// id containing a colon would shift the segments and decode as malformed;
// the format carries no escaping, so series ids must not contain colons.
const occurrencePrefix = "series:"

// EncodeOccurrenceID builds the composite id for one occurrence of a series.
func EncodeOccurrenceID(seriesID, localDate string) string {
	return occurrencePrefix + seriesID + ":" + localDate
}

// DecodeOccurrenceID splits a composite occurrence id. ok is false for any
// id without the series prefix or with the wrong segment count; malformed
// ids are not an error, the caller falls back to direct-task handling.
func DecodeOccurrenceID(id string) (seriesID, localDate string, ok bool) {
	if !strings.HasPrefix(id, occurrencePrefix) {
		return "", "", false
	}
	parts := strings.Split(id, ":")
	if len(parts) != 3 {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// IsEphemeral reports whether the task is a virtual occurrence rather than
// a stored row, either by id shape or by explicit metadata.
func IsEphemeral(t Task) bool {
	return strings.HasPrefix(t.ID, occurrencePrefix) || t.Meta.Ephemeral
}
