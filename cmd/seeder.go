package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var seedPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Create the roles and permission groups, then fill an empty store with demo collaborators, a client, contracts and an event.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		deps, err := initializeDependencies(ctx)
		if err != nil {
			return err
		}
		defer closeDependencies(deps)

		report, err := deps.Seed(ctx, seedPassword)
		if err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}

		out := cmd.OutOrStdout()
		if report.Skipped {
			fmt.Fprintln(out, "collaborators already exist; roles and groups ensured, demo data skipped")
			return nil
		}
		fmt.Fprintln(out, "Seeded collaborators:", strings.Join(report.Collaborators, ", "))
		fmt.Fprintf(out, "Seeded %d client(s), %d contract(s), %d event(s)\n", report.Clients, report.Contracts, report.Events)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "Password123", "password given to every demo collaborator")
}
