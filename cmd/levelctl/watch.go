package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/ecs/component"
	"github.com/milk9111/pulserun/prefabs"
	"github.com/milk9111/pulserun/scene"
)

var flagWatchLevel string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow level and template edits",
	Long: `watch prints every level file that changes. With --level the named level
is kept built in a session and rebuilt whenever it or a template changes.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addUserFlag(watchCmd)
	watchCmd.Flags().StringVar(&flagWatchLevel, "level", "", "Level to keep built")
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lw, err := e.store.Watch()
	if err != nil {
		return err
	}
	defer lw.Close()

	var templates <-chan []string
	if dir := e.cfg.Prefabs.Dir; dir != "" {
		pw, err := prefabs.NewWatcher(dir)
		if err != nil {
			return err
		}
		defer pw.Close()
		templates = pw.Events
	}

	var (
		w       *ecs.World
		session *scene.Session
	)
	if flagWatchLevel != "" {
		reg, err := e.registry()
		if err != nil {
			return err
		}
		w = ecs.NewWorld()
		session = scene.NewSession(w, scene.NewEngine(reg, e.cfg.Build.Mode, e.log), e.store, flagWatchLevel, namespace(), e.log)
		if err := session.Update(); err != nil {
			return err
		}
		report(cmd, session)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "watching for changes, ctrl-c to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-lw.Events:
			if !ok {
				return nil
			}
			verb := "changed"
			if c.Removed {
				verb = "removed"
			}
			fmt.Fprintf(out, "%s/%s %s\n", c.Namespace, c.Name, verb)
			if session != nil && c.Name == flagWatchLevel && c.Namespace == namespace() && !c.Removed {
				rebuild(cmd, e, w, session)
			}
		case names, ok := <-templates:
			if !ok {
				templates = nil
				continue
			}
			fmt.Fprintf(out, "templates changed: %s\n", strings.Join(names, ", "))
			if session == nil {
				continue
			}
			reg, err := e.registry()
			if err != nil {
				e.log.Warn("template reload failed", zap.Error(err))
				continue
			}
			// A session is bound to its engine; start a fresh one on the new registry.
			level, ns := session.Level()
			w = ecs.NewWorld()
			session = scene.NewSession(w, scene.NewEngine(reg, e.cfg.Build.Mode, e.log), e.store, level, ns, e.log)
			if err := session.Update(); err != nil {
				e.log.Warn("rebuild failed", zap.Error(err))
				continue
			}
			report(cmd, session)
		case err, ok := <-lw.Errors:
			if ok {
				e.log.Warn("watch error", zap.Error(err))
			}
		}
	}
}

func rebuild(cmd *cobra.Command, e *env, w *ecs.World, session *scene.Session) {
	if err := ecs.Add(w, ecs.CreateEntity(w), component.ReloadRequestComponent.Kind(), &component.ReloadRequest{}); err != nil {
		e.log.Warn("queue reload", zap.Error(err))
		return
	}
	if err := session.Update(); err != nil {
		e.log.Warn("reload failed", zap.Error(err))
		return
	}
	report(cmd, session)
}

func report(cmd *cobra.Command, session *scene.Session) {
	name, ns := session.Level()
	stats := session.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "built %s/%s (load %d): %d objects, %d skipped\n",
		ns, name, session.Loads(), stats.Objects, stats.Skipped())
	printStats(cmd.OutOrStdout(), stats)
}

