package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/registry"
)

var showCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level and its field overrides",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	addUserFlag(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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
	printDocument(cmd.OutOrStdout(), doc, reg)
	return nil
}

func printDocument(out io.Writer, doc *level.Document, reg *registry.Registry) {
	fmt.Fprintf(out, "%s", doc.Name)
	if doc.Description != "" {
		fmt.Fprintf(out, " - %s", doc.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  difficulty: %s  start: %s at %s speed\n", doc.Difficulty, doc.StartGamemode, doc.StartSpeed)
	fmt.Fprintf(out, "  colors: background %s  ground %s  fog %s\n",
		doc.BackgroundColor.Hex(), doc.GroundColor.Hex(), doc.FogColor.Hex())
	if doc.Song != "" {
		fmt.Fprintf(out, "  song: %s\n", doc.Song)
	}
	fmt.Fprintf(out, "  objects: %d  overrides: %d\n", len(doc.Objects), doc.OverrideCount())

	for i, obj := range doc.Objects {
		name := "?"
		if t, ok := reg.ResolveObjectTemplate(obj.ObjectID); ok {
			name = t.Name
		}
		p := obj.Position
		fmt.Fprintf(out, "  [%d] %d %s at (%g, %g, %g)\n", i, obj.ObjectID, name, p.X, p.Y, p.Z)

		for _, co := range obj.Components {
			ct, ok := reg.ResolveComponentType(obj.ObjectID, co.ComponentID)
			if !ok {
				fmt.Fprintf(out, "      component %d: unknown\n", co.ComponentID)
				continue
			}
			for _, fo := range co.Fields {
				fd, ok := reg.ResolveFieldDescriptor(ct, fo.FieldID)
				if !ok {
					fmt.Fprintf(out, "      %s.%d = %s (unknown field)\n", ct.Name(), fo.FieldID, fo.Value)
					continue
				}
				v, err := fd.Describe(fo.Value)
				if err != nil {
					fmt.Fprintf(out, "      %s.%s = %s (invalid: %v)\n", ct.Name(), fd.Name, fo.Value, err)
					continue
				}
				fmt.Fprintf(out, "      %s.%s = %s\n", ct.Name(), fd.Name, v)
			}
		}
	}
}
