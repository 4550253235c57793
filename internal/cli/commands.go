package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"creme-menu/internal/apps"
	"creme-menu/internal/esx"
	"creme-menu/pkg"
)

func newSeedCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the default menu when none is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(ctx context.Context, e *env) error {
				start := time.Now()
				written := true
				var err error
				if force {
					err = e.service.Replace(ctx, apps.DefaultMenu())
				} else {
					written, err = e.service.Seed(ctx, apps.DefaultMenu())
				}
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{"written": written, "took": pkg.FormatDuration(time.Since(start))},
				})
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing configuration")
	return cmd
}

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the stored configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(ctx context.Context, e *env) error {
				tree, err := e.service.Tree(ctx)
				if err != nil {
					return err
				}
				if app.Format == "json" {
					return writeOut(cmd, app, map[string]any{"data": tree})
				}
				w := cmd.OutOrStdout()
				for _, n := range tree {
					fmt.Fprintf(w, "%d\t%s\t%s\n", n.ID, n.EntryID, n.Label)
					for _, c := range n.Children {
						fmt.Fprintf(w, "%d\t  %s\t  %s\n", c.ID, c.EntryID, c.Label)
					}
				}
				return nil
			})
		},
	}
}

func newEntriesCmd(app *App) *cobra.Command {
	var level int
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List the registered entry classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := apps.Bootstrap()
			if err != nil {
				return writeErr(cmd, err)
			}
			docs := esx.EntryDocs(catalog.Registry.Classes())
			if level >= 0 {
				docs = lo.Filter(docs, func(d esx.EntryDoc, _ int) bool { return d.Level == level })
			}
			if app.Format == "json" {
				return writeOut(cmd, app, map[string]any{"data": docs, "meta": map[string]any{"count": len(docs)}})
			}
			for _, d := range docs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", d.Level, d.ID, d.Label)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&level, "level", -1, "only list the classes of this level (0 or 1)")
	return cmd
}

func newDumpCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the debug dump of the menu and of the creation links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app, func(ctx context.Context, e *env) error {
				recs, err := e.service.Records(ctx)
				if err != nil {
					return err
				}
				m, err := e.catalog.Registry.Menu(recs)
				if err != nil {
					return err
				}
				if app.Format == "json" {
					return writeOut(cmd, app, map[string]any{"data": map[string]any{
						"menu":           m.String(),
						"creation_forms": e.catalog.Forms.VerboseString(),
					}})
				}
				fmt.Fprint(cmd.OutOrStdout(), m.String())
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), e.catalog.Forms.VerboseString())
				return nil
			})
		},
	}
}
