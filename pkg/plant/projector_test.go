package plant

import (
	"context"
	"testing"

	"github.com/verdantlabs/growcal/pkg/task"
)

type fakeRepo struct {
	records []Record
	calls   int
}

func (f *fakeRepo) QueryByIDs(_ context.Context, ids []string) ([]Record, error) {
	f.calls++
	var out []Record
	for _, r := range f.records {
		for _, id := range ids {
			if r.ID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func TestProjectEmptySetSkipsLookup(t *testing.T) {
	repo := &fakeRepo{}
	got, err := Projector{Repo: repo}.Project(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
	if repo.calls != 0 {
		t.Fatalf("expected no repository call, got %d", repo.calls)
	}
}

func TestProjectBatchesOnce(t *testing.T) {
	repo := &fakeRepo{records: []Record{
		{ID: "p1", Name: "Northern Lights", ImageURL: "p1.jpg"},
		{ID: "p2", Name: "Blue Dream"},
	}}
	ids := map[string]struct{}{"p1": {}, "p2": {}, "missing": {}}

	got, err := Projector{Repo: repo}.Project(context.Background(), ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one batched call, got %d", repo.calls)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 projections, got %d", len(got))
	}
	if got["p1"].Name != "Northern Lights" || got["p1"].ImageURL != "p1.jpg" {
		t.Fatalf("unexpected projection: %+v", got["p1"])
	}
	if _, ok := got["missing"]; ok {
		t.Fatal("missing id must be absent, not an error")
	}
}

func TestIDSet(t *testing.T) {
	pending := []task.Task{
		{ID: "t1", PlantID: "p1"},
		{ID: "t2", PlantID: "p1"},
		{ID: "t3"},
	}
	completed := []task.Task{
		{ID: "t4", PlantID: "p2"},
	}
	ids := IDSet(pending, completed)
	if len(ids) != 2 {
		t.Fatalf("expected 2 distinct ids, got %v", ids)
	}
	for _, want := range []string{"p1", "p2"} {
		if _, ok := ids[want]; !ok {
			t.Fatalf("missing id %s", want)
		}
	}
}
