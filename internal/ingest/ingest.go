// Package ingest replays a catalog into a fresh credits index and reports on the result.
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/guregu/null"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/credits-index/internal/catalog"
	"github.com/stellar/credits-index/internal/credits"
	"github.com/stellar/credits-index/internal/entities"
	"github.com/stellar/credits-index/internal/metrics"
)

type Configs struct {
	CatalogPath  string
	ReleaseMode  credits.ReleaseMode
	LogLevel     logrus.Level
	Works        []string
	Participants []string
	DumpMetrics  bool
}

// Ingest loads the catalog at cfg.CatalogPath, applies it to a new index and writes the requested
// lookups to out. Failed work lookups do not stop the remaining ones; they are joined into the
// returned error.
func Ingest(ctx context.Context, cfg Configs, out io.Writer) error {
	log.DefaultLogger.SetLevel(cfg.LogLevel)

	metricsService, idx, err := setupDeps(cfg)
	if err != nil {
		return fmt.Errorf("setting up dependencies for ingest: %w", err)
	}

	c, err := catalog.Load(ctx, cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	result, err := c.Apply(ctx, idx)
	if err != nil {
		return fmt.Errorf("applying catalog %s: %w", cfg.CatalogPath, err)
	}
	log.Ctx(ctx).Infof("applied %d steps from %s: released=%d tagged=%d removed=%d missed=%d",
		result.Total(), cfg.CatalogPath, result.Released, result.Tagged, result.Removed, result.Missed)
	logSummary(ctx, idx)

	w := bufio.NewWriter(out)
	lookupErr := writeLookups(w, idx, cfg.Works, cfg.Participants)

	if cfg.DumpMetrics {
		if err := writeMetrics(w, metricsService.GetRegistry()); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return lookupErr
}

func setupDeps(cfg Configs) (metrics.MetricsService, *credits.Index, error) {
	metricsService := metrics.NewMetricsService()
	idx, err := credits.NewIndex(credits.IndexOptions{
		Mode:           cfg.ReleaseMode,
		MetricsService: metricsService,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("instantiating credits index: %w", err)
	}
	return metricsService, idx, nil
}

func logSummary(ctx context.Context, idx *credits.Index) {
	stale := idx.StaleCredits()
	log.Ctx(ctx).Infof("index summary: mode=%s works=%d participants=%d credits=%d reverse_credits=%d stale_credits=%d",
		idx.Mode(),
		idx.KnownWorks().Cardinality(),
		idx.AllKnownParticipants().Cardinality(),
		idx.TotalCreditCount(),
		idx.ReverseCreditCount(),
		len(stale))
	for _, credit := range stale {
		log.Ctx(ctx).Debugf("stale credit: %s", credit)
	}
}

// writeLookups prints the participants of each work and the works of each participant, one
// block per name.
func writeLookups(w io.Writer, idx *credits.Index, works, participants []string) error {
	var errs []error

	for _, name := range works {
		work, err := entities.NewWork(name, null.String{}, null.Time{})
		if err != nil {
			return fmt.Errorf("looking up work %q: %w", name, err)
		}

		fmt.Fprintf(w, "== %s ==\n", name)
		cast, err := idx.ParticipantsFor(work)
		if err != nil {
			fmt.Fprintf(w, "%s\n\n", err)
			errs = append(errs, err)
			continue
		}
		for _, participant := range cast.ToSlice() {
			fmt.Fprintf(w, "%s\n\n", participant)
		}
	}

	for _, name := range participants {
		participant, err := entities.NewParticipant(name, null.Time{}, null.String{})
		if err != nil {
			return fmt.Errorf("looking up participant %q: %w", name, err)
		}

		fmt.Fprintf(w, "== %s ==\n", name)
		for _, work := range idx.WorksFor(participant).ToSlice() {
			fmt.Fprintf(w, "%s\n\n", work)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("looking up works: %w", errors.Join(errs...))
	}
	return nil
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("encoding metric family %s: %w", family.GetName(), err)
		}
	}
	return nil
}
