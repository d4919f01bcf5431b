// Package store is the diskv-backed reference implementation of the
// calendar's collaborators: the task repository, the plant repository, and
// the completion service. Records are small JSON documents bucketed by
// kind; recurring series are expanded into ephemeral occurrences at query
// time rather than materialized.
package store

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/verdantlabs/growcal/pkg/dateutil"
	"github.com/verdantlabs/growcal/pkg/plant"
	"github.com/verdantlabs/growcal/pkg/task"
)

const (
	bucketTasks     = "tasks"
	bucketCompleted = "completed"
	bucketPlants    = "plants"
	bucketSeries    = "series"
)

// ErrNotFound is returned when a completion targets an id with no record.
var ErrNotFound = errors.New("store: task not found")

// completedRecord wraps a task with its completion time for the completed
// bucket.
type completedRecord struct {
	task.Task
	CompletedAt time.Time `json:"completedAt"`
}

// Store persists tasks, plants, and series under a single diskv base path.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Load opens a store using the provided config, falling back to the
// discovered configuration when nil.
func Load(cfg Config) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// TasksByDateRange returns the pending tasks due inside [start, end]:
// stored rows plus ephemeral occurrences expanded from recurring series.
func (s *Store) TasksByDateRange(ctx context.Context, start, end time.Time) ([]task.Task, error) {
	window := dateutil.Window{Start: start, End: end}

	all := make([]task.Task, 0)
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, bucketTasks+"-") {
			continue
		}
		var t task.Task
		if err := s.read(key, &t); err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		due, err := t.DueAt()
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		if window.Contains(due) {
			all = append(all, t)
		}
	}

	occurrences, err := s.expandSeries(ctx, window)
	if err != nil {
		return nil, err
	}
	all = append(all, occurrences...)

	sortTasks(all)
	return all, nil
}

// CompletedTasksByDateRange returns completed tasks due inside [start, end].
func (s *Store) CompletedTasksByDateRange(ctx context.Context, start, end time.Time) ([]task.Task, error) {
	window := dateutil.Window{Start: start, End: end}

	all := make([]task.Task, 0)
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, bucketCompleted+"-") {
			continue
		}
		var r completedRecord
		if err := s.read(key, &r); err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		due, err := r.DueAt()
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		if window.Contains(due) {
			all = append(all, r.Task)
		}
	}

	sortTasks(all)
	return all, nil
}

// CompleteTask moves a stored task into the completed bucket. Safe to
// retry: completing an already-completed id rewrites the same record.
func (s *Store) CompleteTask(ctx context.Context, id string) error {
	key := bucketTasks + "-" + id
	var t task.Task
	if err := s.read(key, &t); err != nil {
		// Retry after a prior success lands here; report the friendlier
		// not-found only when no completed record exists either.
		var r completedRecord
		if err2 := s.read(bucketCompleted+"-"+id, &r); err2 == nil {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := s.write(bucketCompleted+"-"+id, completedRecord{Task: t, CompletedAt: time.Now()}); err != nil {
		return err
	}
	return s.d.Erase(key)
}

// CompleteRecurringInstance records the completion of one series occurrence.
// The completed row is keyed by the occurrence's composite id, so repeated
// completion of the same occurrence overwrites rather than duplicates.
func (s *Store) CompleteRecurringInstance(ctx context.Context, seriesID string, occurrence time.Time) error {
	var sr Series
	if err := s.read(bucketSeries+"-"+seriesID, &sr); err != nil {
		return fmt.Errorf("store: series %s: %w", seriesID, err)
	}

	date := occurrence.Format(dateutil.DayKeyLayout)
	t := sr.occurrenceOn(date)
	return s.write(bucketCompleted+"-"+t.ID, completedRecord{Task: t, CompletedAt: time.Now()})
}

// QueryByIDs batch-reads plant records; ids with no record are skipped.
func (s *Store) QueryByIDs(ctx context.Context, ids []string) ([]plant.Record, error) {
	out := make([]plant.Record, 0, len(ids))
	for _, id := range ids {
		var r plant.Record
		if err := s.read(bucketPlants+"-"+id, &r); err != nil {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// StoreTask persists a pending task, assigning an id when absent.
func (s *Store) StoreTask(t *task.Task) error {
	if t.ID == "" {
		t.ID = newID(t)
	}
	return s.write(bucketTasks+"-"+t.ID, t)
}

// StorePlant persists a plant record, assigning an id when absent.
func (s *Store) StorePlant(p *plant.Record) error {
	if p.ID == "" {
		p.ID = newID(p)
	}
	return s.write(bucketPlants+"-"+p.ID, p)
}

// StoreSeries persists a recurring series, assigning an id when absent.
// Series ids feed the occurrence id format and must not contain colons.
func (s *Store) StoreSeries(sr *Series) error {
	if sr.ID == "" {
		sr.ID = newID(sr)
	}
	if strings.Contains(sr.ID, ":") {
		return fmt.Errorf("store: series id %q must not contain colons", sr.ID)
	}
	if sr.IntervalDays <= 0 {
		return fmt.Errorf("store: series %s: interval must be positive", sr.ID)
	}
	return s.write(bucketSeries+"-"+sr.ID, sr)
}

// Plants lists all stored plants, sorted by name.
func (s *Store) Plants(ctx context.Context) []plant.Record {
	all := make([]plant.Record, 0)
	for key := range s.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, bucketPlants+"-") {
			continue
		}
		var r plant.Record
		if err := s.read(key, &r); err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

func (s *Store) read(key string, v any) error {
	data, err := s.d.Read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.d.Write(key, data)
}

func sortTasks(tasks []task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		left, lerr := tasks[i].DueAt()
		right, rerr := tasks[j].DueAt()
		if lerr != nil || rerr != nil {
			return tasks[i].ID < tasks[j].ID
		}
		if left.Equal(right) {
			return tasks[i].ID < tasks[j].ID
		}
		return left.Before(right)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// newID derives a stable short id from the record's content.
func newID(v any) string {
	b, _ := json.Marshal(v)
	sum := md5.Sum(b)
	return fmt.Sprintf("%x", sum[:8])
}
