package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"uisync/internal/config"
	"uisync/internal/governor"
	"uisync/internal/sim"
	"uisync/pkg/logging"
)

var (
	runRulesPath string
	runWatch     bool
	runVerbose   bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Replay a scenario file against a simulated, governed host",
	Long: `run builds a fresh simulated host, attaches the synchronizer, and
replays the scenario's events against it. Expect steps in the scenario fail
the run when a governed control does not hold the value the policy demands.

With --watch the scenario file is re-run every time it changes, which makes
scenario authoring a tight loop.`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario,
}

func init() {
	runCmd.Flags().StringVar(&runRulesPath, "rules", "", "classification rules file (YAML)")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "re-run when the scenario file changes")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if runVerbose {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	path := args[0]
	if !runWatch {
		return runOnce(cmd.OutOrStdout(), runRulesPath, path)
	}
	return watchAndRun(cmd, path)
}

// runOnce replays one scenario against a freshly governed host.
func runOnce(out io.Writer, rulesPath, scenarioPath string) error {
	cfg, err := config.Load(rulesPath)
	if err != nil {
		return err
	}
	scenario, err := sim.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}

	h := sim.NewHost()
	g, err := governor.New(h, cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	if err := sim.NewRunner(h).Run(scenario); err != nil {
		return err
	}

	fmt.Fprintf(out, "scenario %q passed (%d corrective writes)\n",
		scenario.Name, g.TotalCorrections())
	renderState(out, g.Snapshot())
	return nil
}

// watchAndRun re-runs the scenario whenever its file changes. A failing run
// keeps the watch alive: the point is fixing the scenario and saving again.
func watchAndRun(cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	out := cmd.OutOrStdout()
	if err := runOnce(out, runRulesPath, path); err != nil {
		logging.Error("Run", err, "Scenario failed")
	}

	grp, ctx := errgroup.WithContext(cmd.Context())
	grp.Go(func() error {
		target := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()

			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				logging.Info("Run", "Scenario changed, re-running")
				if err := runOnce(out, runRulesPath, path); err != nil {
					logging.Error("Run", err, "Scenario failed")
				}

			case werr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logging.Error("Run", werr, "Watcher error")
			}
		}
	})
	return grp.Wait()
}
