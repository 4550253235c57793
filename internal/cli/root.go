// Package cli implements menuctl, the operator command line of the menu
// configuration.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"creme-menu/internal/apps"
	"creme-menu/internal/config"
	"creme-menu/internal/db"
	"creme-menu/internal/logx"
	"creme-menu/internal/menuconfig"
)

// App holds the global flags.
type App struct {
	Driver     string
	URL        string
	Format     string // json | text
	PrettyJSON bool
	Timeout    time.Duration
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "menuctl",
		Short:        "Inspect and seed the Creme main menu configuration",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Store the default menu on an empty database
  menuctl seed

  # Show the stored configuration
  menuctl tree --format text

  # List the level-1 entries containers can hold
  menuctl entries --level 1`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, closer, err := config.Load()
			if closer != nil {
				closer()
			}
			if err != nil {
				return err
			}
			logx.Init("warn", cfg.Log.Format)
			if app.Driver == "" {
				app.Driver = cfg.DB.Driver
			}
			if app.URL == "" {
				app.URL = cfg.DB.URL
			}
			switch app.Format {
			case "json", "text":
				return nil
			default:
				return fmt.Errorf("unknown format %q (json|text)", app.Format)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&app.Driver, "db-driver", "", "database driver: postgres | sqlite (default $DB_DRIVER)")
	cmd.PersistentFlags().StringVar(&app.URL, "db-url", "", "database URL (default $DB_URL)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "output format: json | text")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "indent JSON output")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 30*time.Second, "overall timeout")

	cmd.AddCommand(
		newSeedCmd(app),
		newTreeCmd(app),
		newEntriesCmd(app),
		newDumpCmd(app),
	)
	return cmd
}

// env is what the commands work on.
type env struct {
	catalog *apps.Catalog
	service *menuconfig.Service
}

func (a *App) open(ctx context.Context) (*env, func(), error) {
	cfg := &config.Config{}
	cfg.DB.Driver, cfg.DB.URL = a.Driver, a.URL
	cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns = 1, 1
	drv, closeDB, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, drv); err != nil {
		closeDB()
		return nil, nil, err
	}
	catalog, err := apps.Bootstrap()
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return &env{catalog: catalog, service: menuconfig.NewService(drv, catalog.Registry)}, closeDB, nil
}

// withEnv runs fn with an open environment under the global timeout.
func withEnv(cmd *cobra.Command, app *App, fn func(ctx context.Context, e *env) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout)
	defer cancel()
	e, closer, err := app.open(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closer()
	if err := fn(ctx, e); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
