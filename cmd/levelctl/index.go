package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/milk9111/pulserun/catalog"
	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/levels"
)

var (
	flagIndexNS    string
	flagIndexMin   string
	flagIndexMax   string
	flagIndexWhere string
	flagNoRebuild  bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the level catalog and list matching levels",
	Long: `index rebuilds the SQLite catalog from the level files, then prints the
levels matching the filters. --where takes an expression over name,
namespace, difficulty, rank, objects, song and description.

Examples:
  levelctl index --ns user
  levelctl index --min normal --max hard
  levelctl index --where 'objects >= 10 && song != ""'`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&flagIndexNS, "ns", "", "Only list this namespace (builtin or user)")
	indexCmd.Flags().StringVar(&flagIndexMin, "min", "", "Minimum difficulty")
	indexCmd.Flags().StringVar(&flagIndexMax, "max", "", "Maximum difficulty")
	indexCmd.Flags().StringVar(&flagIndexWhere, "where", "", "Filter expression")
	indexCmd.Flags().BoolVar(&flagNoRebuild, "no-rebuild", false, "Query the existing index without rescanning files")
}

func indexFilter() (catalog.Filter, error) {
	var f catalog.Filter
	if flagIndexNS != "" {
		ns, err := levels.ParseNamespace(flagIndexNS)
		if err != nil {
			return f, err
		}
		f.Namespace = &ns
	}
	if flagIndexMin != "" {
		d, err := level.ParseDifficulty(flagIndexMin)
		if err != nil {
			return f, err
		}
		f.MinDifficulty = &d
	}
	if flagIndexMax != "" {
		d, err := level.ParseDifficulty(flagIndexMax)
		if err != nil {
			return f, err
		}
		f.MaxDifficulty = &d
	}
	f.Where = flagIndexWhere
	return f, nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	filter, err := indexFilter()
	if err != nil {
		return err
	}

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Open(e.cfg.CatalogPath(), e.log)
	if err != nil {
		return err
	}
	defer cat.Close()

	if !flagNoRebuild {
		n, err := cat.Rebuild(ctx, e.store)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "indexed %d levels\n", n)
	}

	entries, err := cat.Query(ctx, filter)
	if err != nil {
		return err
	}
	printEntries(cmd, entries)
	return nil
}

func printEntries(cmd *cobra.Command, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No levels match.")
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tNS\tDIFFICULTY\tOBJECTS\tSONG")
	for _, e := range entries {
		song := e.Song
		if song == "" {
			song = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.Name, e.Namespace, e.Difficulty, e.Objects, song)
	}
	_ = tw.Flush()
}

