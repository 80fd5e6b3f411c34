package cmd

import (
	"context"
	"fmt"

	"fediblock-sync/core/audit"
	"fediblock-sync/core/config"
	"fediblock-sync/core/database"
	"fediblock-sync/core/logger"
	"fediblock-sync/core/storage"
	blocksync "fediblock-sync/feature/blocklist/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncDryRun          bool
	syncMergePlan       string
	syncOutfile         string
	syncSaveIntermedia  bool
	syncSaveDir         string
	syncNoFetchURL      bool
	syncNoFetchInstance bool
	syncNoPushInstance  bool
	syncPrivateComments bool
)

// syncCmd runs the full pipeline: fetch, merge, reconcile, push.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch, merge and push domain blocklists",
	Long: `Fetch blocklists from the configured URLs, files and instances, merge
them under the configured merge plan, then reconcile and push the result
to every destination instance.

Examples:
  # Full run using fediblock.toml
  fediblock-sync sync -c fediblock.toml

  # See what would change without touching any instance
  fediblock-sync sync -c fediblock.toml --dry-run

  # Merge only, save to a file, push nothing
  fediblock-sync sync -c fediblock.toml --no-push-instance -o merged.csv`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report operations without applying them")
	syncCmd.Flags().StringVar(&syncMergePlan, "mergeplan", "", "Merge plan: max or min")
	syncCmd.Flags().StringVarP(&syncOutfile, "outfile", "o", "", "Save the merged blocklist to this file")
	syncCmd.Flags().BoolVar(&syncSaveIntermedia, "save-intermediate", false, "Save each fetched source list to the save directory")
	syncCmd.Flags().StringVar(&syncSaveDir, "savedir", "", "Directory for intermediate lists")
	syncCmd.Flags().BoolVar(&syncNoFetchURL, "no-fetch-url", false, "Skip URL and file sources")
	syncCmd.Flags().BoolVar(&syncNoFetchInstance, "no-fetch-instance", false, "Skip instance sources")
	syncCmd.Flags().BoolVar(&syncNoPushInstance, "no-push-instance", false, "Skip pushing to destinations")
	syncCmd.Flags().BoolVar(&syncPrivateComments, "include-private-comments", false, "Carry private comments through merging and pushes")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applySyncFlags(cmd, &cfg.Sync)

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	zap.ReplaceGlobals(l)

	runner := blocksync.New(cfg.Sync, l)

	if cfg.Audit.Enabled {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to audit database: %w", err)
		}
		store := audit.NewStore(db)
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate audit schema: %w", err)
		}
		runner.WithRecorder(store)
	}

	if cfg.Archive.Enabled {
		client, err := storage.NewClient(cfg.Archive.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		runner.WithArchiver(blocksync.NewSnapshotArchiver(client, cfg.Archive.Storage.Bucket))
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

// applySyncFlags lets command-line flags override the file/env config.
// Only flags the user actually set are applied.
func applySyncFlags(cmd *cobra.Command, cfg *blocksync.Config) {
	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		cfg.DryRun = syncDryRun
	}
	if flags.Changed("mergeplan") {
		cfg.MergePlan = syncMergePlan
	}
	if flags.Changed("outfile") {
		cfg.MergedSaveFile = syncOutfile
	}
	if flags.Changed("save-intermediate") {
		cfg.SaveIntermediate = syncSaveIntermedia
	}
	if flags.Changed("savedir") {
		cfg.SaveDir = syncSaveDir
	}
	if flags.Changed("no-fetch-url") {
		cfg.NoFetchURL = syncNoFetchURL
	}
	if flags.Changed("no-fetch-instance") {
		cfg.NoFetchInstance = syncNoFetchInstance
	}
	if flags.Changed("no-push-instance") {
		cfg.NoPushInstance = syncNoPushInstance
	}
	if flags.Changed("include-private-comments") {
		cfg.IncludePrivateComments = syncPrivateComments
	}
}

func printReport(report *blocksync.Report) {
	mode := "applied"
	if report.DryRun {
		mode = "dry run"
	}
	fmt.Printf("Run %s (%s): %d sources, %d merged domains\n",
		report.RunID, mode, report.Sources, report.MergedDomains)
	for _, dest := range report.Destinations {
		if dest.Error != "" {
			fmt.Printf("  %s: failed: %s\n", dest.Host, dest.Error)
			continue
		}
		fmt.Printf("  %s: %d adds, %d updates, %d unchanged, %d applied\n",
			dest.Host, dest.Adds, dest.Updates, dest.Unchanged, dest.Applied)
	}
}
