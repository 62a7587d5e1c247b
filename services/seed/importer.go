package seed

import (
	"context"
	"fmt"
	"time"

	documentsRepo "bookingdesk/database/repository/documents"
	"bookingdesk/models"

	"go.uber.org/zap"
)

// CollectionPlan describes one fixture-to-collection import.
type CollectionPlan struct {
	Collection  string
	FixturePath string
	Enrich      Enricher // nil writes records unchanged
}

// CollectionResult summarizes one collection of a run.
type CollectionResult struct {
	Collection string
	Skipped    bool
	Written    int
	IDs        []string
	Total      int // re-queried from the store after all writes
}

type Report struct {
	Results []CollectionResult
}

// Importer seeds collections from fixtures, only into collections that are
// empty when the run starts.
type Importer interface {
	Run(ctx context.Context, plans ...CollectionPlan) (*Report, error)
}

// DefaultImporter implements Importer with one sequential write per record.
type DefaultImporter struct {
	Store    documentsRepo.Store
	Progress ProgressReporter
	Lock     RunLock
	Logger   *zap.Logger
}

type loadedPlan struct {
	plan    CollectionPlan
	records []models.Record
	empty   bool
}

// Run loads every fixture, probes every target collection, then writes the
// records of the empty ones in input order. The first error aborts the run;
// documents already written stay in place.
func (im *DefaultImporter) Run(ctx context.Context, plans ...CollectionPlan) (*Report, error) {
	lock := im.Lock
	if lock == nil {
		lock = NopLock{}
	}
	release, err := lock.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			im.Logger.Warn("seed: failed to release run lock", zap.Error(err))
		}
	}()

	loaded := make([]loadedPlan, 0, len(plans))
	for _, plan := range plans {
		records, err := LoadFixture(plan.FixturePath)
		if err != nil {
			return nil, err
		}
		im.Logger.Debug("seed: fixture loaded", zap.String("path", plan.FixturePath), zap.Int("records", len(records)))
		loaded = append(loaded, loadedPlan{plan: plan, records: records})
	}

	for i := range loaded {
		empty, err := IsEmpty(ctx, im.Store, loaded[i].plan.Collection)
		if err != nil {
			return nil, err
		}
		loaded[i].empty = empty
	}

	report := &Report{Results: make([]CollectionResult, 0, len(loaded))}
	for _, lp := range loaded {
		result := CollectionResult{Collection: lp.plan.Collection, Skipped: !lp.empty}
		if !lp.empty {
			im.Progress.CollectionSkipped(lp.plan.Collection)
			report.Results = append(report.Results, result)
			continue
		}
		ids, err := im.importRecords(ctx, lp.plan, lp.records)
		result.IDs = ids
		result.Written = len(ids)
		report.Results = append(report.Results, result)
		if err != nil {
			return report, err
		}
	}

	for i := range report.Results {
		collection := report.Results[i].Collection
		total, err := im.Store.Count(ctx, collection)
		if err != nil {
			return report, &StoreQueryError{Collection: collection, Op: "count", Err: err}
		}
		report.Results[i].Total = total
		im.Progress.CollectionCounted(collection, total)
	}
	return report, nil
}

func (im *DefaultImporter) importRecords(ctx context.Context, plan CollectionPlan, records []models.Record) ([]string, error) {
	ids := make([]string, 0, len(records))
	for i, rec := range records {
		out := rec
		if plan.Enrich != nil {
			enriched, err := plan.Enrich(ctx, rec)
			if err != nil {
				return ids, &StoreWriteError{Collection: plan.Collection, Index: i, Name: rec.Name(), Err: fmt.Errorf("enrich: %w", err)}
			}
			out = enriched
		}

		id, err := im.Store.Add(ctx, plan.Collection, out.Fields())
		if err != nil {
			return ids, &StoreWriteError{Collection: plan.Collection, Index: i, Name: rec.Name(), Err: err}
		}
		ids = append(ids, id)
		im.Progress.RecordWritten(plan.Collection, i, rec.Name(), id)
	}
	return ids, nil
}
