package plant

import (
	"context"
	"errors"
)

// Repository is the batched lookup collaborator. Implementations must
// tolerate being queried for windows whose results are later discarded.
type Repository interface {
	QueryByIDs(ctx context.Context, ids []string) ([]Record, error)
}

// Projector resolves the plants behind one day's tasks in a single batched
// lookup.
type Projector struct {
	Repo Repository
}

// Project returns projections for the requested ids. An empty set returns
// an empty map without touching the repository; ids with no matching record
// are simply absent from the result.
func (p Projector) Project(ctx context.Context, ids map[string]struct{}) (map[string]Projection, error) {
	out := make(map[string]Projection, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if p.Repo == nil {
		return nil, errors.New("plant: no repository configured")
	}

	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	records, err := p.Repo.QueryByIDs(ctx, list)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		out[r.ID] = Projection{ID: r.ID, Name: r.Name, ImageURL: r.ImageURL}
	}
	return out, nil
}
