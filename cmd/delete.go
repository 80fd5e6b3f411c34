package cmd

import (
	"context"
	"fmt"

	"fediblock-sync/core/config"
	"fediblock-sync/core/logger"
	"fediblock-sync/feature/blocklist/instance"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the delete command
	deleteInstance string
	deleteToken    string
)

// deleteCmd removes one domain block from an instance.
var deleteCmd = &cobra.Command{
	Use:   "delete <domain>",
	Short: "Delete a domain block from an instance",
	Long: `Look up the given domain in the instance's blocklist and delete the
block. Deleting a domain that is not blocked is not an error.

Example:
  fediblock-sync delete unjustly-blocked.example \
    -c fediblock.toml --instance mastodon.example`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&deleteInstance, "instance", "", "Instance hostname to delete from")
	deleteCmd.Flags().StringVar(&deleteToken, "token", "", "Bearer token for the instance admin API")
	_ = deleteCmd.MarkFlagRequired("instance")

	RootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	domain := args[0]

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	token := deleteToken
	if token == "" {
		token = lookupToken(cfg, deleteInstance)
	}
	if token == "" {
		return fmt.Errorf("no token given or configured for %s", deleteInstance)
	}

	client := instance.NewClient(deleteInstance, token)
	blocks, err := client.FetchBlocks(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch blocks from %s: %w", deleteInstance, err)
	}

	entry, ok := blocks[domain]
	if !ok || entry.RemoteID == "" {
		l.Info("Domain is not blocked, nothing to delete",
			zap.String("instance", deleteInstance),
			zap.String("domain", domain),
		)
		return nil
	}

	deleted, err := client.DeleteBlock(ctx, entry.RemoteID)
	if err != nil {
		return fmt.Errorf("failed to delete block for %s: %w", domain, err)
	}
	if !deleted {
		// Block disappeared between fetch and delete.
		l.Info("Block was already gone",
			zap.String("instance", deleteInstance),
			zap.String("domain", domain),
		)
		return nil
	}

	l.Info("Deleted domain block",
		zap.String("instance", deleteInstance),
		zap.String("domain", domain),
		zap.String("id", entry.RemoteID),
	)
	return nil
}
