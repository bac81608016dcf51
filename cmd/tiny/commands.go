package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/tinypl/tiny/internal/config"
	"github.com/tinypl/tiny/internal/diag"
	"github.com/tinypl/tiny/internal/driver"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse",
		Short: "Parse every source file and report diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := newInjector()
			if err != nil {
				return err
			}
			d := do.MustInvoke[*driver.Driver](injector)
			formatter := do.MustInvoke[*diag.Formatter](injector)

			res, err := d.Run(cmd.Context())
			if err != nil {
				return err
			}
			formatter.FormatAll(res.Diagnostics)
			if res.HasErrors() {
				return errors.New("parse failed")
			}
			fmt.Printf("run %s: parsed %d files\n", res.RunID, len(res.Files))
			return nil
		},
	}
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Parse every source file and export the ASTs as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := newInjector()
			if err != nil {
				return err
			}
			d := do.MustInvoke[*driver.Driver](injector)
			formatter := do.MustInvoke[*diag.Formatter](injector)
			cfg := do.MustInvoke[config.Config](injector)

			res, err := d.Run(cmd.Context())
			if err != nil {
				return err
			}
			formatter.FormatAll(res.Diagnostics)
			if res.HasErrors() {
				return errors.New("parse failed, nothing dumped")
			}
			if err := d.Dump(res); err != nil {
				return err
			}
			fmt.Printf("run %s: dumped %d files to %s\n", res.RunID, len(res.Files), cfg.OutDir)
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-parse and re-export whenever a source file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := newInjector()
			if err != nil {
				return err
			}
			d := do.MustInvoke[*driver.Driver](injector)
			formatter := do.MustInvoke[*diag.Formatter](injector)
			cfg := do.MustInvoke[config.Config](injector)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Printf("watching %s\n", cfg.SourceRoot)
			err = d.Watch(ctx, func(res *driver.Result) {
				formatter.FormatAll(res.Diagnostics)
				if res.HasErrors() {
					fmt.Printf("run %s: parse failed\n", res.RunID)
					return
				}
				if err := d.Dump(res); err != nil {
					fmt.Fprintln(os.Stderr, "tiny:", err)
					return
				}
				fmt.Printf("run %s: dumped %d files to %s\n", res.RunID, len(res.Files), cfg.OutDir)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
