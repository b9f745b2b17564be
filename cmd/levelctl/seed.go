package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/pulserun/levels"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the shipped levels into the builtin directory",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	installed, err := e.store.InstallBuiltins()
	if err != nil {
		return err
	}
	if len(installed) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "builtin levels already present in %s\n", e.store.Dir(levels.Builtin))
		return nil
	}
	for _, name := range installed {
		fmt.Fprintf(cmd.OutOrStdout(), "installed %s\n", name)
	}
	return nil
}
