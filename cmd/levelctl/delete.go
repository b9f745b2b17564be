package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <level>",
	Short: "Delete a level file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	addUserFlag(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.store.Delete(args[0], namespace()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s/%s\n", namespace(), args[0])
	return nil
}
