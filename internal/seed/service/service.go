// Package service runs one seeding pass: generate a dataset, write it to the
// document store and optionally publish it to the platform API.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/dealerseed/internal/platform"
	"github.com/aussiebroadwan/dealerseed/internal/seed/domain"
	"github.com/aussiebroadwan/dealerseed/internal/seed/generate"
	"github.com/aussiebroadwan/dealerseed/internal/seed/store"
	"github.com/aussiebroadwan/dealerseed/pkg/slogx"
)

const defaultConcurrency = 4

// Platform resolves the scoped clients used for publishing.
type Platform interface {
	Locations(dealerID uuid.UUID) (*platform.LocationsClient, error)
	Items(dealerID, locationID uuid.UUID) (*platform.ItemsClient, error)
	RatePrograms(dealerID uuid.UUID) (*platform.RateProgramsClient, error)
}

// Options selects the run modes.
type Options struct {
	// Dealers to generate; zero picks a random count.
	Dealers int

	CreateContainer bool
	InsertData      bool
	Publish         bool

	// Concurrency bounds how many dealers are published at once.
	Concurrency int
}

// Report counts what a run produced.
type Report struct {
	Dealers      int
	Locations    int
	Items        int
	RatePrograms int

	Stored    int
	Published int
}

// Seeder runs seeding passes.
type Seeder struct {
	store     store.Store
	platform  Platform
	generator *generate.Generator
	logger    *slog.Logger
	opts      Options
}

// New returns a Seeder. st may be nil when neither CreateContainer nor
// InsertData is set; p may be nil when Publish is not set.
func New(st store.Store, p Platform, gen *generate.Generator, logger *slog.Logger, opts Options) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Seeder{
		store:     st,
		platform:  p,
		generator: gen,
		logger:    logger,
		opts:      opts,
	}
}

// Run performs one pass. Store failures stop the run. Publish failures are
// collected per entity and returned together once every dealer was tried.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	if (s.opts.CreateContainer || s.opts.InsertData) && s.store == nil {
		return Report{}, fmt.Errorf("seed: store required to create container or insert data")
	}
	if s.opts.Publish && s.platform == nil {
		return Report{}, fmt.Errorf("seed: platform required to publish")
	}
	ctx = slogx.WithContext(ctx, s.logger)

	ds, err := s.generator.Generate(s.opts.Dealers)
	if err != nil {
		return Report{}, fmt.Errorf("seed: generate: %w", err)
	}
	report := summarize(ds)
	s.logDataset(ds)

	if s.opts.CreateContainer {
		if err := s.store.EnsureContainer(ctx); err != nil {
			return report, fmt.Errorf("seed: create container: %w", err)
		}
		s.logger.Info("document container ready")
	}

	if s.opts.InsertData {
		if err := s.store.Ping(ctx); err != nil {
			return report, fmt.Errorf("seed: store unreachable: %w", err)
		}
		n, err := s.insert(ctx, ds)
		report.Stored = n
		if err != nil {
			return report, err
		}
		s.logger.Info("documents stored", "count", n)
	}

	if s.opts.Publish {
		n, err := s.publish(ctx, ds)
		report.Published = n
		if err != nil {
			return report, err
		}
		s.logger.Info("dataset published", "count", n)
	}

	return report, nil
}

func (s *Seeder) insert(ctx context.Context, ds generate.Dataset) (int, error) {
	n := 0
	for _, p := range ds.RatePrograms {
		if err := s.store.PutRateProgram(ctx, p); err != nil {
			return n, fmt.Errorf("seed: store rate program %s: %w", p.RateProgramID, err)
		}
		n++
	}
	for _, d := range ds.Dealers {
		for _, l := range d.Locations {
			if err := s.store.PutLocation(ctx, *l); err != nil {
				return n, fmt.Errorf("seed: store location %s: %w", l.LocationID, err)
			}
			n++
		}
	}
	return n, nil
}

// publish pushes every dealer through dealer and location scoped clients.
func (s *Seeder) publish(ctx context.Context, ds generate.Dataset) (int, error) {
	programs := make(map[uuid.UUID][]domain.RateProgram)
	for _, p := range ds.RatePrograms {
		programs[p.DealerID] = append(programs[p.DealerID], p)
	}

	var (
		mu        sync.Mutex
		merr      *multierror.Error
		published int
	)

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for _, d := range ds.Dealers {
		g.Go(func() error {
			n, err := s.publishDealer(ctx, d, programs[d.DealerID])

			mu.Lock()
			defer mu.Unlock()
			published += n
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := merr.ErrorOrNil(); err != nil {
		return published, fmt.Errorf("seed: publish: %w", err)
	}
	return published, nil
}

func (s *Seeder) publishDealer(ctx context.Context, d *domain.Dealer, programs []domain.RateProgram) (int, error) {
	ctx = slogx.WithAttrs(ctx, "dealer_id", d.DealerID)
	logger := slogx.FromContext(ctx)

	var merr *multierror.Error
	n := 0

	rp, err := s.platform.RatePrograms(d.DealerID)
	if err != nil {
		return 0, fmt.Errorf("dealer %s: %w", d.DealerID, err)
	}
	for _, p := range programs {
		if err := rp.Put(ctx, p); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("dealer %s: rate program %s: %w", d.DealerID, p.RateProgramID, err))
			continue
		}
		n++
	}

	locations, err := s.platform.Locations(d.DealerID)
	if err != nil {
		return n, multierror.Append(merr, fmt.Errorf("dealer %s: %w", d.DealerID, err))
	}

	for _, l := range d.Locations {
		if err := locations.Put(ctx, *l); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("dealer %s: location %s: %w", d.DealerID, l.LocationID, err))
			continue
		}
		n++

		items, err := s.platform.Items(d.DealerID, l.LocationID)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("dealer %s: location %s: %w", d.DealerID, l.LocationID, err))
			continue
		}
		for _, it := range l.Items {
			if err := items.Put(ctx, it); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("dealer %s: location %s: item %s: %w", d.DealerID, l.LocationID, it.ItemID, err))
				continue
			}
			n++
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		logger.Warn("dealer published with errors", "published", n, "errors", len(merr.Errors))
		return n, err
	}
	logger.Debug("dealer published", "published", n)
	return n, nil
}

func (s *Seeder) logDataset(ds generate.Dataset) {
	for _, d := range ds.Dealers {
		s.logger.Info("generated dealer", "dealer_id", d.DealerID, "name", d.Name, "locations", len(d.Locations))
		for _, l := range d.Locations {
			s.logger.Debug("generated location", "dealer_id", d.DealerID, "location_id", l.LocationID, "items", len(l.Items))
		}
	}
}

func summarize(ds generate.Dataset) Report {
	r := Report{
		Dealers:      len(ds.Dealers),
		RatePrograms: len(ds.RatePrograms),
	}
	for _, d := range ds.Dealers {
		r.Locations += len(d.Locations)
		for _, l := range d.Locations {
			r.Items += len(l.Items)
		}
	}
	return r
}
