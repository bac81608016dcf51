// Command tiny is the front end driver for the Tiny language: it discovers
// sources, parses them into ASTs and exports the trees as JSON.
package main

import (
	"fmt"
	"os"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/tinypl/tiny/internal/config"
	"github.com/tinypl/tiny/internal/diag"
	"github.com/tinypl/tiny/internal/driver"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tiny:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tiny",
		Short:         "Front end for the Tiny language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath,
		"path to the run configuration file")

	root.AddCommand(newParseCmd(), newDumpCmd(), newWatchCmd(), newReplCmd())
	return root
}

// newInjector wires the services every command shares. Commands resolve what
// they need instead of constructing it, so the wiring lives in one place.
func newInjector() (*do.Injector, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.Provide(injector, func(i *do.Injector) (*driver.Driver, error) {
		return driver.New(do.MustInvoke[config.Config](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*diag.Formatter, error) {
		return diag.NewFormatter(), nil
	})
	return injector, nil
}
