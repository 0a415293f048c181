package commands

import (
	"github.com/spf13/cobra"

	"github.com/dataloom-io/dataloom/internal/cli/config"
	"github.com/dataloom-io/dataloom/internal/loader"
)

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <dataset>",
		Short: "Load a dataset, refreshing the cache if it is stale",
		Long: `Load materializes the named dataset. A fresh cache artifact is read
directly; a stale or missing one triggers a source fetch, the schema's
transformations, and a cache rewrite.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			l := loader.New(cfg.DatasetsDir, logger)
			tbl, err := l.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), tbl, cfg.Output)
		},
	}
}
