package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"uisync/internal/config"
	"uisync/internal/governor"
	"uisync/internal/sim"
	"uisync/pkg/logging"
)

var replRulesPath string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively drive a simulated, governed host",
	Long: `repl starts a simulated host with the synchronizer attached and
reads commands that play the roles the synchronizer reacts to: the user
opening and closing documents, and third-party code toggling controls
behind the synchronizer's back. After each command the corrections the
synchronizer performed are shown.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().StringVar(&replRulesPath, "rules", "", "classification rules file (YAML)")
	rootCmd.AddCommand(replCmd)
}

const replHelp = `commands:
  open <name> [locked]             open a document
  close <name>                     close a document
  lock <name> | unlock <name>      flip a document's lock (no event fires)
  toggle <container> <control> <on|off>
                                   external write to a control's enabled flag
  state                            show the governed controls
  help                             show this help
  exit                             leave the repl`

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(replRulesPath)
	if err != nil {
		return err
	}

	entries := logging.InitForCapture(logging.LevelDebug)
	defer logging.CloseCaptureChannel()

	h := sim.NewHost()
	g, err := governor.New(h, cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "uisync> ",
		HistoryFile:     filepath.Join(os.TempDir(), "uisync_repl_history"),
		AutoComplete:    replCompleter,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, replHelp)
	drainEntries(io.Discard, entries) // drop attach noise

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			break // io.EOF
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			break
		}

		if err := execReplCommand(out, h, g, fields); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		drainEntries(out, entries)
	}
	return nil
}

var replCompleter = readline.NewPrefixCompleter(
	readline.PcItem("open"),
	readline.PcItem("close"),
	readline.PcItem("lock"),
	readline.PcItem("unlock"),
	readline.PcItem("toggle"),
	readline.PcItem("state"),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

// execReplCommand applies one repl command to the simulated host.
func execReplCommand(out io.Writer, h *sim.Host, g *governor.Governor, fields []string) error {
	switch fields[0] {
	case "open":
		if len(fields) < 2 {
			return fmt.Errorf("usage: open <name> [locked]")
		}
		locked := len(fields) > 2 && fields[2] == "locked"
		_, err := h.Docs().OpenDocument(fields[1], locked)
		return err

	case "close":
		if len(fields) != 2 {
			return fmt.Errorf("usage: close <name>")
		}
		return h.Docs().CloseDocument(fields[1])

	case "lock", "unlock":
		if len(fields) != 2 {
			return fmt.Errorf("usage: %s <name>", fields[0])
		}
		d := h.Docs().Document(fields[1])
		if d == nil {
			return fmt.Errorf("document %q is not open", fields[1])
		}
		d.SetLocked(fields[0] == "lock")
		return nil

	case "toggle":
		if len(fields) != 4 || (fields[3] != "on" && fields[3] != "off") {
			return fmt.Errorf("usage: toggle <container> <control> <on|off>")
		}
		c, err := h.Control(fields[1], fields[2])
		if err != nil {
			return err
		}
		c.SetEnabled(fields[3] == "on")
		return nil

	case "state":
		renderState(out, g.Snapshot())
		return nil

	case "help":
		fmt.Fprintln(out, replHelp)
		return nil

	default:
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}
}

// drainEntries prints whatever the synchronizer logged since the last drain.
func drainEntries(out io.Writer, entries <-chan logging.LogEntry) {
	for {
		select {
		case e, ok := <-entries:
			if !ok {
				return
			}
			fmt.Fprintf(out, "  [%s] %s\n", e.Subsystem, e.Message)
		default:
			return
		}
	}
}
