package pipeline

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/errors"
	"github.com/aidirectory/aidirectory/pkg/logging"
)

// DefaultWorkers bounds batch concurrency when no explicit limit is given.
const DefaultWorkers = 8

// BatchResult pairs one record's outcome with the error that stopped it, in
// input order. At most one of Outcome and Err is meaningful.
type BatchResult struct {
	Outcome Outcome
	Err     error
}

// Summary aggregates a batch run for reporting.
type Summary struct {
	RunID      string
	Created    int
	Merged     int
	Discovered int
	Held       int
	Failed     int
}

// ProcessBatch runs a set of records through the pipeline concurrently.
// Records for distinct entities proceed in parallel; records for the same
// entity serialize on its lock. Per-record failures are captured in the
// results rather than aborting the batch; only context cancellation and
// store-level failures end the run early.
func (p *Pipeline) ProcessBatch(ctx context.Context, recs []entities.SourceRecord, workers int) ([]BatchResult, Summary, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := logging.Ctx(ctx)

	log.Info().
		Int("records", len(recs)).
		Int("workers", workers).
		Msg("Starting batch run")

	results := make([]BatchResult, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range recs {
		g.Go(func() error {
			outcome, err := p.Process(gctx, rec)
			if err != nil {
				// Store failures are fatal for the run; everything else is a
				// bad record and only fails its own slot.
				var ioErr *errors.IOError
				if errors.As(err, &ioErr) {
					return err
				}
				results[i] = BatchResult{Err: err}
				return nil
			}
			results[i] = BatchResult{Outcome: outcome}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, Summary{RunID: runID}, err
	}

	summary := Summary{RunID: runID}
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Outcome.Kind == Created:
			summary.Created++
		case r.Outcome.Kind == Merged:
			summary.Merged++
		case r.Outcome.Kind == Discovered:
			summary.Discovered++
		case r.Outcome.Kind == Ambiguous:
			summary.Held++
		}
	}

	log.Info().
		Str("run_id", runID).
		Int("created", summary.Created).
		Int("merged", summary.Merged).
		Int("discovered", summary.Discovered).
		Int("held", summary.Held).
		Int("failed", summary.Failed).
		Msg("Batch run complete")
	return results, summary, nil
}
