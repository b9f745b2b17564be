package main

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/scene"
)

var captureCheckCmd = &cobra.Command{
	Use:   "capture-check <level>",
	Short: "Build a level, capture it back and compare with the file",
	Long: `capture-check reconstructs a level, captures the live entities into a
new document and reports every difference. Overrides that set a field to its
template default, or that name unknown objects, components or fields, are
expected to disappear.`,
	Args: cobra.ExactArgs(1),
	RunE: runCaptureCheck,
}

func init() {
	addUserFlag(captureCheckCmd)
}

func runCaptureCheck(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	doc, err := e.store.Load(args[0], namespace())
	if err != nil {
		return err
	}
	reg, err := e.registry()
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	root, _, _ := scene.Build(w, scene.NewEngine(reg, e.cfg.Build.Mode, e.log), doc)
	captured, err := scene.Capture(w, reg, root, doc)
	if err != nil {
		return err
	}

	diff := cmp.Diff(doc, captured, cmpopts.EquateEmpty())
	if diff == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: capture matches\n", doc.Name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: capture differs (-file +captured):\n%s", doc.Name, diff)
	return fmt.Errorf("capture of %s differs from file", doc.Name)
}
