package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/app"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	"github.com/frahmantamala/epic-events-crm/internal/console"
	"github.com/frahmantamala/epic-events-crm/internal/workflow"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and keep the session on disk",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		deps, err := initializeDependencies(ctx)
		if err != nil {
			return err
		}
		defer closeDependencies(deps)

		_, err = promptLogin(ctx, deps, consolePresenter(ctx))
		return ignoreClosedInput(err)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		if err := auth.NewSessionManager(config.Security).Clear(); err != nil {
			return err
		}
		consolePresenter(cmd.Context()).ShowMessage(workflow.MessageInfo, "You are logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the collaborator of the saved session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		deps, err := initializeDependencies(ctx)
		if err != nil {
			return err
		}
		defer closeDependencies(deps)

		identity, claims, err := savedOperator(ctx, deps)
		if err != nil {
			return err
		}

		consolePresenter(ctx).ShowRecord("Current session", sessionRecord(identity, claims, deps.Oracle.Capabilities(identity)))
		return nil
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu of your role",
	Long:  `Open the interactive menu. A saved session is reused, otherwise you are asked to log in.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		deps, err := initializeDependencies(ctx)
		if err != nil {
			return err
		}
		defer closeDependencies(deps)

		presenter := consolePresenter(ctx)
		operator, _, err := savedOperator(ctx, deps)
		if err != nil {
			if !internal.IsType(err, internal.ErrorTypeUnauthorized) {
				return err
			}
			if operator, err = promptLogin(ctx, deps, presenter); err != nil {
				return ignoreClosedInput(err)
			}
		}

		return ignoreClosedInput(workflow.NewSession(presenter, deps.Services, operator, deps.Logger).Run(ctx))
	},
}

func consolePresenter(ctx context.Context) *console.Presenter {
	return console.New(ctx, os.Stdin, os.Stdout)
}

func sessionRecord(identity *auth.Identity, claims *auth.Claims, capabilities []string) []workflow.Pair {
	role := identity.Role
	if role == "" {
		role = "-"
	}
	granted := strings.Join(capabilities, ", ")
	if granted == "" {
		granted = "-"
	}
	return []workflow.Pair{
		{Label: "Username", Value: identity.Username},
		{Label: "Name", Value: identity.FullName},
		{Label: "Role", Value: role},
		{Label: "Groups", Value: strings.Join(identity.Groups, ", ")},
		{Label: "Capabilities", Value: granted},
		{Label: "Expires", Value: claims.ExpiresAt.Time.Local().Format(time.DateTime)},
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func promptLogin(ctx context.Context, deps *app.Dependencies, presenter workflow.Presenter) (*auth.Identity, error) {
	identity, err := workflow.NewBaseHandler(presenter, deps.Logger).Login(ctx, deps.Auth)
	if err != nil {
		return nil, err
	}
	if err := deps.Sessions.Save(identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// savedOperator reloads the collaborator behind the saved session so role
// changes made since the login apply immediately.
func savedOperator(ctx context.Context, deps *app.Dependencies) (*auth.Identity, *auth.Claims, error) {
	claims, err := deps.Sessions.Load()
	if err != nil {
		return nil, nil, err
	}
	identity, err := deps.Auth.Resolve(ctx, claims.CollaboratorID)
	if err != nil {
		return nil, nil, err
	}
	return identity, claims, nil
}

// ignoreClosedInput treats end of input or an interrupt at a prompt as leaving.
func ignoreClosedInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func requireOperator(ctx context.Context, deps *app.Dependencies) (*auth.Identity, error) {
	identity, _, err := savedOperator(ctx, deps)
	if err != nil {
		if internal.IsType(err, internal.ErrorTypeUnauthorized) {
			return nil, fmt.Errorf("%w (run `epicevents login`)", err)
		}
		return nil, err
	}
	return identity, nil
}
