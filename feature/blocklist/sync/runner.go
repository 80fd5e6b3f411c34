package sync

import (
	"context"
	"sort"
	"time"

	"fediblock-sync/core/audit"
	"fediblock-sync/feature/blocklist/instance"
	"fediblock-sync/feature/blocklist/merge"
	"fediblock-sync/feature/blocklist/models"
	"fediblock-sync/feature/blocklist/reconcile"
	"fediblock-sync/feature/blocklist/sources"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BlockClient is the slice of the instance API the runner needs.
type BlockClient interface {
	Host() string
	FetchBlocks(ctx context.Context) (map[string]models.BlockEntry, error)
	CreateBlock(ctx context.Context, entry models.BlockEntry) error
	UpdateBlock(ctx context.Context, entry models.BlockEntry) error
}

// Recorder receives the audit trail of a run. Implementations must not be
// able to fail the sync; the runner logs recorder errors and moves on.
type Recorder interface {
	RecordRun(ctx context.Context, run audit.SyncRun) error
	RecordOperation(ctx context.Context, op audit.Operation) error
}

// Archiver receives a copy of the merged blocklist snapshot.
type Archiver interface {
	ArchiveSnapshot(ctx context.Context, name string, data []byte) error
}

// DestinationReport summarizes what happened against one destination.
type DestinationReport struct {
	Host      string
	Adds      int
	Updates   int
	Unchanged int
	Applied   int
	Error     string
}

// Report summarizes one sync run.
type Report struct {
	RunID         string
	Sources       int
	MergedDomains int
	DryRun        bool
	Destinations  []DestinationReport
}

// Runner executes the fetch, merge, reconcile, push pipeline.
type Runner struct {
	cfg   Config
	log   *zap.Logger
	runID string

	recorder Recorder
	archiver Archiver

	// Seams for tests.
	newClient func(auth InstanceAuth) BlockClient
	loadList  func(ctx context.Context, src string) (models.SourceList, error)
	sleep     func(d time.Duration)
	now       func() time.Time
}

// New creates a Runner for the given configuration.
func New(cfg Config, log *zap.Logger) *Runner {
	loader := sources.NewLoader()
	return &Runner{
		cfg:   cfg,
		log:   log,
		runID: uuid.NewString(),
		newClient: func(auth InstanceAuth) BlockClient {
			return instance.NewClient(auth.Domain, auth.Token)
		},
		loadList: loader.Load,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// WithRecorder attaches an audit recorder.
func (r *Runner) WithRecorder(rec Recorder) *Runner {
	r.recorder = rec
	return r
}

// WithArchiver attaches a snapshot archiver.
func (r *Runner) WithArchiver(a Archiver) *Runner {
	r.archiver = a
	return r
}

// Run executes the pipeline once. A fatal error (unsupported merge plan)
// aborts the run; per-source and per-destination failures are logged and
// isolated.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	log := r.log.With(zap.String("run_id", r.runID))
	startedAt := r.now()

	lists := r.fetchSources(ctx, log)

	merged, err := merge.Merge(lists, merge.Options{
		Plan:                   merge.Plan(r.cfg.MergePlan),
		IncludePrivateComments: r.cfg.IncludePrivateComments,
	})
	if err != nil {
		return nil, err
	}
	log.Info("Merged blocklists",
		zap.Int("sources", len(lists)),
		zap.Int("domains", len(merged)),
		zap.String("mergeplan", r.cfg.MergePlan),
	)

	r.persistMerged(ctx, log, merged)
	r.recordRun(ctx, log, audit.SyncRun{
		ID:        r.runID,
		MergePlan: r.cfg.MergePlan,
		DryRun:    r.cfg.DryRun,
		Sources:   len(lists),
		Domains:   len(merged),
		StartedAt: startedAt,
	})

	report := &Report{
		RunID:         r.runID,
		Sources:       len(lists),
		MergedDomains: len(merged),
		DryRun:        r.cfg.DryRun,
	}

	if r.cfg.NoPushInstance {
		log.Info("Push to instances disabled")
		return report, nil
	}

	for _, dest := range r.cfg.InstanceDestinations {
		report.Destinations = append(report.Destinations, r.pushDestination(ctx, log, dest, merged))
	}
	return report, nil
}

// fetchSources gathers every configured source list, skipping sources that
// fail so the rest of the run can proceed.
func (r *Runner) fetchSources(ctx context.Context, log *zap.Logger) []models.SourceList {
	var lists []models.SourceList

	if !r.cfg.NoFetchURL {
		log.Info("Fetching domain blocks from URLs", zap.Int("count", len(r.cfg.URLSources)))
		for _, src := range r.cfg.URLSources {
			list, err := r.loadList(ctx, src)
			if err != nil {
				log.Error("Skipping source", zap.String("source", src), zap.Error(err))
				continue
			}
			lists = append(lists, list)
			r.saveIntermediate(log, list)
		}
	}

	if !r.cfg.NoFetchInstance {
		log.Info("Fetching domain blocks from instances", zap.Int("count", len(r.cfg.InstanceSources)))
		for _, src := range r.cfg.InstanceSources {
			client := r.newClient(src)
			blocks, err := client.FetchBlocks(ctx)
			if err != nil {
				log.Error("Skipping instance source", zap.String("instance", src.Domain), zap.Error(err))
				continue
			}
			list := models.SourceList{Name: src.Domain, Entries: sortedEntries(blocks)}
			lists = append(lists, list)
			r.saveIntermediate(log, list)
		}
	}

	return lists
}

func (r *Runner) saveIntermediate(log *zap.Logger, list models.SourceList) {
	if !r.cfg.SaveIntermediate {
		return
	}
	path := sources.IntermediateFilename(r.cfg.SaveDir, list.Name)
	if err := sources.SaveFile(path, list.Entries, r.cfg.IncludePrivateComments); err != nil {
		log.Error("Failed to save intermediate blocklist", zap.String("path", path), zap.Error(err))
		return
	}
	log.Debug("Saved intermediate blocklist", zap.String("path", path))
}

// persistMerged writes the merged list to the configured file and to the
// snapshot archive. Both are best-effort.
func (r *Runner) persistMerged(ctx context.Context, log *zap.Logger, merged map[string]models.BlockEntry) {
	entries := sortedEntries(merged)

	if r.cfg.MergedSaveFile != "" {
		log.Info("Saving merged blocklist", zap.String("path", r.cfg.MergedSaveFile))
		if err := sources.SaveFile(r.cfg.MergedSaveFile, entries, r.cfg.IncludePrivateComments); err != nil {
			log.Error("Failed to save merged blocklist", zap.Error(err))
		}
	}

	if r.archiver != nil {
		name := "snapshots/merged-" + r.now().UTC().Format("20060102T150405") + ".csv"
		data, err := renderCSV(entries, r.cfg.IncludePrivateComments)
		if err != nil {
			log.Error("Failed to render snapshot", zap.Error(err))
			return
		}
		if err := r.archiver.ArchiveSnapshot(ctx, name, data); err != nil {
			log.Error("Failed to archive snapshot", zap.String("object", name), zap.Error(err))
			return
		}
		log.Info("Archived merged snapshot", zap.String("object", name))
	}
}

// pushDestination reconciles and applies the merged set against one
// destination. Failures are contained to the destination.
func (r *Runner) pushDestination(ctx context.Context, log *zap.Logger, dest InstanceAuth, merged map[string]models.BlockEntry) DestinationReport {
	dr := DestinationReport{Host: dest.Domain}
	log = log.With(zap.String("destination", dest.Domain))
	log.Info("Pushing blocklist to destination")

	client := r.newClient(dest)
	existing, err := client.FetchBlocks(ctx)
	if err != nil {
		log.Error("Skipping destination", zap.Error(err))
		dr.Error = err.Error()
		return dr
	}

	plan := reconcile.BuildPlan(merged, existing, reconcile.Options{
		IncludePrivateComments: r.cfg.IncludePrivateComments,
	})
	dr.Adds = plan.Summary.Adds
	dr.Updates = plan.Summary.Updates
	dr.Unchanged = plan.Summary.Unchanged
	log.Info("Reconciled against destination",
		zap.Int("adds", plan.Summary.Adds),
		zap.Int("updates", plan.Summary.Updates),
		zap.Int("unchanged", plan.Summary.Unchanged),
	)

	for _, op := range plan.Operations {
		if r.cfg.DryRun {
			log.Info("Dry run: would apply operation",
				zap.String("action", string(op.Type)),
				zap.String("domain", op.Entry.Domain),
				zap.String("severity", op.Entry.Severity.String()),
			)
			continue
		}

		switch op.Type {
		case reconcile.OpAdd:
			err = client.CreateBlock(ctx, op.Entry)
		case reconcile.OpUpdate:
			err = client.UpdateBlock(ctx, op.Entry)
		}
		if err != nil {
			// Already-applied operations stay applied; there is no rollback.
			log.Error("Abandoning remaining operations for destination",
				zap.String("domain", op.Entry.Domain),
				zap.Error(err),
			)
			dr.Error = err.Error()
			return dr
		}

		dr.Applied++
		r.recordOperation(ctx, log, dest.Domain, op)

		// Pause between writes so we don't melt the instance.
		r.sleep(time.Duration(r.cfg.CooldownSeconds) * time.Second)
	}

	return dr
}

func (r *Runner) recordRun(ctx context.Context, log *zap.Logger, run audit.SyncRun) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.RecordRun(ctx, run); err != nil {
		log.Error("Failed to record sync run", zap.Error(err))
	}
}

func (r *Runner) recordOperation(ctx context.Context, log *zap.Logger, dest string, op reconcile.Operation) {
	if r.recorder == nil {
		return
	}
	err := r.recorder.RecordOperation(ctx, audit.Operation{
		RunID:       r.runID,
		Destination: dest,
		Domain:      op.Entry.Domain,
		Action:      string(op.Type),
		Severity:    op.Entry.Severity.String(),
		AppliedAt:   r.now(),
	})
	if err != nil {
		log.Error("Failed to record operation", zap.Error(err))
	}
}

// sortedEntries flattens a domain-keyed map into a domain-ordered slice.
func sortedEntries(m map[string]models.BlockEntry) []models.BlockEntry {
	entries := make([]models.BlockEntry, 0, len(m))
	for _, e := range m {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Domain < entries[j].Domain
	})
	return entries
}
