package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/pulserun/codec"
	"github.com/milk9111/pulserun/common"
	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/levels"
)

var flagExampleName string

var saveExampleCmd = &cobra.Command{
	Use:   "save-example",
	Short: "Write a one-block example level to the user namespace",
	Args:  cobra.NoArgs,
	RunE:  runSaveExample,
}

func init() {
	saveExampleCmd.Flags().StringVar(&flagExampleName, "name", "Test", "Level name")
}

func exampleLevel(name string) *level.Document {
	doc := level.New(name)
	block := doc.Add(level.Place(7, common.V3(0, 0, 0)))
	block.Override(2, 1, codec.MustEncode(common.RGBA(1, 0, 0, 1)))
	return doc
}

func runSaveExample(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.store.Save(exampleLevel(flagExampleName), levels.User); err != nil {
		return err
	}
	path, _ := e.store.Path(flagExampleName, levels.User)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
