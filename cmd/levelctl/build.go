package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/scene"
)

var buildCmd = &cobra.Command{
	Use:   "build <level>",
	Short: "Reconstruct a level and report what was skipped",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	addUserFlag(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
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
	_, objects, stats := scene.Build(w, scene.NewEngine(reg, e.cfg.Build.Mode, e.log), doc)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d objects built\n", doc.Name, len(objects), len(doc.Objects))
	printStats(cmd.OutOrStdout(), stats)
	return nil
}

func printStats(out io.Writer, s scene.Stats) {
	rows := []struct {
		label string
		n     int
	}{
		{"fields applied", s.FieldsApplied},
		{"unknown objects", s.UnknownObjects},
		{"failed instantiations", s.InstantiateFailures},
		{"unknown components", s.UnknownComponents},
		{"missing components", s.MissingInstances},
		{"unknown fields", s.UnknownFields},
		{"undecodable values", s.DecodeFailures},
	}
	for _, r := range rows {
		if r.n == 0 && r.label != "fields applied" {
			continue
		}
		fmt.Fprintf(out, "  %-22s %d\n", r.label, r.n)
	}
}
