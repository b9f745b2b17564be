package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/pulserun/levels"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List builtin and user levels",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	out := cmd.OutOrStdout()
	for _, ns := range levels.Namespaces {
		names, err := e.store.Names(ns)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s):\n", ns, e.store.Dir(ns))
		if len(names) == 0 {
			fmt.Fprintln(out, "  (none)")
			continue
		}
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
	return nil
}
