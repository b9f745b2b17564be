// levelctl inspects, builds and indexes pulserun level files.
//
// Usage:
//
//	levelctl list                 - List builtin and user levels
//	levelctl show <level>         - Print a level and its overrides
//	levelctl save-example         - Write the example level to the user namespace
//	levelctl build <level>        - Reconstruct a level and print what was skipped
//	levelctl capture-check <level> - Build, capture and compare with the file
//	levelctl seed                 - Install the shipped levels
//	levelctl index                - Rebuild the level catalog and query it
//	levelctl watch                - Follow level and template edits
//
// Global flags:
//
//	--config <path> - TOML config file (default: built-in defaults)
//	--root <dir>    - Override the storage root
//	--dev           - Development mode: report malformed level files
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milk9111/pulserun/config"
	"github.com/milk9111/pulserun/levels"
	"github.com/milk9111/pulserun/prefabs"
	"github.com/milk9111/pulserun/registry"
)

var (
	flagConfig string
	flagRoot   string
	flagDev    bool
	flagUser   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "levelctl",
	Short: "Inspect, build and index pulserun levels",
	Long: `levelctl works on the level files of a pulserun install.

Examples:
  levelctl seed
  levelctl list
  levelctl show first_steps
  levelctl build Test --user
  levelctl index --min easy --where 'objects > 3'`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "Storage root (overrides the config)")
	rootCmd.PersistentFlags().BoolVar(&flagDev, "dev", false, "Development mode")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(saveExampleCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(captureCheckCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(deleteCmd)
}

// env is what every subcommand works with.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *levels.Store
}

func newEnv() (*env, error) {
	cfg := config.Defaults()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flagRoot != "" {
		cfg.Storage.Root = flagRoot
	}
	if flagDev {
		cfg.Build.Mode = config.Development
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return &env{
		cfg:   cfg,
		log:   log,
		store: levels.NewStore(cfg.Storage, cfg.Build.Mode, log),
	}, nil
}

func (e *env) registry() (*registry.Registry, error) {
	return prefabs.NewRegistry(e.cfg.Prefabs.Dir)
}

func (e *env) close() {
	_ = e.log.Sync()
}

func namespace() levels.Namespace {
	if flagUser {
		return levels.User
	}
	return levels.Builtin
}

func addUserFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&flagUser, "user", "u", false, "Use the user namespace instead of builtin")
}
