// Package compose runs independent named reads concurrently and joins them
// all-or-nothing.
package compose

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Lookup is one named read. Run must only write to state owned by the lookup.
type Lookup struct {
	Name string
	Run  func(ctx context.Context) error
}

// Bind makes a Lookup that stores fn's result in dst once fn succeeds.
func Bind[T any](name string, dst *T, fn func(ctx context.Context) (T, error)) Lookup {
	return Lookup{
		Name: name,
		Run: func(ctx context.Context) error {
			v, err := fn(ctx)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		},
	}
}

// LookupError names the lookup that failed the join.
type LookupError struct {
	Name string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q: %v", e.Name, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// All runs every lookup concurrently and waits for them. The first failure
// cancels the context passed to the others and is returned; destinations
// must not be used when All returns an error.
func All(ctx context.Context, lookups ...Lookup) error {
	seen := make(map[string]struct{}, len(lookups))
	for _, l := range lookups {
		if _, dup := seen[l.Name]; dup {
			return fmt.Errorf("compose: duplicate lookup %q", l.Name)
		}
		seen[l.Name] = struct{}{}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range lookups {
		l := l
		g.Go(func() error {
			if err := l.Run(gctx); err != nil {
				return &LookupError{Name: l.Name, Err: err}
			}
			return nil
		})
	}
	return g.Wait()
}
