package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dawang/internal/logging"
)

// Source fetches program lists from the advisory service.
type Source interface {
	AvailablePrograms(ctx context.Context) ([]Program, error)
	Catalog(ctx context.Context) ([]Program, error)
}

// Loader fetches a program list and narrows it to a department.
type Loader struct {
	src          Source
	useAvailable bool
}

// NewLoader creates a Loader. When useAvailable is true the pre-filtered
// "available" list is fetched instead of the full catalog.
func NewLoader(src Source, useAvailable bool) *Loader {
	return &Loader{src: src, useAvailable: useAvailable}
}

// Load fetches and filters. On failure it returns a nil slice and the error;
// callers show a "could not load" state instead of stale data. No retry.
func (l *Loader) Load(ctx context.Context, department string) ([]Program, error) {
	var (
		programs []Program
		err      error
	)
	if l.useAvailable {
		programs, err = l.src.AvailablePrograms(ctx)
	} else {
		programs, err = l.src.Catalog(ctx)
	}
	if err != nil {
		logging.Get(logging.CategoryCatalog).Error("Failed to load programs: %v", err)
		return nil, fmt.Errorf("load programs: %w", err)
	}

	logging.CatalogDebug("Fetched %d programs, department=%q", len(programs), department)
	filtered := Filter(programs, department)
	logging.Catalog("Filtered programs for %q: %d of %d", department, len(filtered), len(programs))
	return filtered, nil
}

// Listing holds both remote lists, each filtered to the same department.
type Listing struct {
	Available []Program
	Catalog   []Program
}

// LoadAll fetches the available list and the full catalog concurrently.
// Either failure fails the whole call.
func (l *Loader) LoadAll(ctx context.Context, department string) (Listing, error) {
	var out Listing
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := l.src.AvailablePrograms(gctx)
		if err != nil {
			return fmt.Errorf("available programs: %w", err)
		}
		out.Available = Filter(p, department)
		return nil
	})
	g.Go(func() error {
		p, err := l.src.Catalog(gctx)
		if err != nil {
			return fmt.Errorf("program catalog: %w", err)
		}
		out.Catalog = Filter(p, department)
		return nil
	})
	if err := g.Wait(); err != nil {
		logging.Get(logging.CategoryCatalog).Error("Failed to load program listing: %v", err)
		return Listing{}, err
	}
	return out, nil
}
