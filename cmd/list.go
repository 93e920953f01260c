package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/epic-events-crm/internal/app"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	"github.com/frahmantamala/epic-events-crm/internal/workflow"
	"github.com/spf13/cobra"
)

type lister func(ctx context.Context, deps *app.Dependencies, operator *auth.Identity) (workflow.Table, error)

var listers = map[string]lister{
	"clients": func(ctx context.Context, deps *app.Dependencies, operator *auth.Identity) (workflow.Table, error) {
		list, err := deps.Services.Clients.List(ctx, operator)
		return workflow.ClientTable(list), err
	},
	"contracts": func(ctx context.Context, deps *app.Dependencies, operator *auth.Identity) (workflow.Table, error) {
		list, err := deps.Services.Contracts.List(ctx, operator)
		return workflow.ContractTable(list), err
	},
	"events": func(ctx context.Context, deps *app.Dependencies, operator *auth.Identity) (workflow.Table, error) {
		list, err := deps.Services.Events.List(ctx, operator)
		return workflow.EventTable(list), err
	},
	"collaborators": func(ctx context.Context, deps *app.Dependencies, operator *auth.Identity) (workflow.Table, error) {
		list, err := deps.Services.Collaborators.List(ctx, operator)
		return workflow.CollaboratorTable(list), err
	},
}

var listCmd = &cobra.Command{
	Use:       "list {clients|contracts|events|collaborators}",
	Short:     "Print one kind of record for the logged in collaborator",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"clients", "contracts", "events", "collaborators"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		deps, err := initializeDependencies(ctx)
		if err != nil {
			return err
		}
		defer closeDependencies(deps)

		operator, err := requireOperator(ctx, deps)
		if err != nil {
			return err
		}

		kind := args[0]
		table, err := listers[kind](ctx, deps, operator)
		if err != nil {
			return err
		}
		consolePresenter(ctx).ShowList(fmt.Sprintf("%s (%d)", kind, len(table.Rows)), table)
		return nil
	},
}
