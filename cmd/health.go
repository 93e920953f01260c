package cmd

import (
	"encoding/json"
	"errors"

	"github.com/frahmantamala/epic-events-crm/internal/database"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the configured store is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		deps, err := initializeDependencies(ctx)
		if err != nil {
			return err
		}
		defer closeDependencies(deps)

		report := database.NewHealthChecker(deps.DB, deps.Config.Database.PingTimeout).Check(ctx)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
		if !report.Healthy() {
			return errors.New("store is unhealthy")
		}
		return nil
	},
}
