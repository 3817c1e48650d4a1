package catalog

import (
	"context"
	"errors"

	"github.com/snnyvrz/shelfshare/apps/catalog/internal/compose"
)

type DeleteStatus int

const (
	// DeleteNotFound: the parent did not exist; nothing happened.
	DeleteNotFound DeleteStatus = iota
	// DeleteBlocked: dependents exist; nothing happened.
	DeleteBlocked
	// DeletePermitted: the parent exists without dependents. Only returned
	// by confirmation reads.
	DeletePermitted
	// Deleted: the parent was removed.
	Deleted
)

var errDeleteRaced = errors.New("catalog: conditional delete removed nothing")

func (s DeleteStatus) String() string {
	switch s {
	case DeleteNotFound:
		return "not_found"
	case DeleteBlocked:
		return "blocked"
	case DeletePermitted:
		return "permitted"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// Deletion is both the delete confirmation view and the delete outcome.
type Deletion[P, D any] struct {
	Status     DeleteStatus
	Parent     *P
	Dependents []D
}

// guard implements the referential delete policy for one parent and its
// dependents. remove must delete the parent only while it has no dependents
// and report whether a row was removed.
type guard[P, D any] struct {
	parentName    string
	dependentName string
	parent        func(ctx context.Context) (*P, error)
	dependents    func(ctx context.Context) ([]D, error)
	remove        func(ctx context.Context) (bool, error)
}

// inspect reads the parent and its dependents concurrently and classifies
// them without mutating anything.
func (g guard[P, D]) inspect(ctx context.Context) (Deletion[P, D], error) {
	var (
		parent *P
		deps   []D
	)

	lookups := []compose.Lookup{compose.Bind(g.parentName, &parent, g.parent)}
	if g.dependents != nil {
		lookups = append(lookups, compose.Bind(g.dependentName, &deps, g.dependents))
	}
	if err := compose.All(ctx, lookups...); err != nil {
		return Deletion[P, D]{}, err
	}

	switch {
	case parent == nil:
		return Deletion[P, D]{Status: DeleteNotFound}, nil
	case len(deps) > 0:
		return Deletion[P, D]{Status: DeleteBlocked, Parent: parent, Dependents: deps}, nil
	}
	return Deletion[P, D]{Status: DeletePermitted, Parent: parent, Dependents: []D{}}, nil
}

// execute runs the full policy. The delete itself is conditional, so a
// dependent created after inspect still blocks it; in that case the outcome
// is read again to report what stopped the delete.
func (g guard[P, D]) execute(ctx context.Context) (Deletion[P, D], error) {
	d, err := g.inspect(ctx)
	if err != nil || d.Status != DeletePermitted {
		return d, err
	}

	removed, err := g.remove(ctx)
	if err != nil {
		return Deletion[P, D]{}, err
	}
	if removed {
		d.Status = Deleted
		return d, nil
	}

	d, err = g.inspect(ctx)
	if err != nil {
		return Deletion[P, D]{}, err
	}
	if d.Status == DeletePermitted {
		return Deletion[P, D]{}, errDeleteRaced
	}
	return d, nil
}
