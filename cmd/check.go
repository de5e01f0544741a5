package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"threatmap/internal/application/modelfile"
	"threatmap/internal/log"
	"threatmap/internal/presentation"
	"threatmap/internal/watcher"
)

var (
	checkWatch  bool
	checkFormat string
)

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	findingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var checkCmd = &cobra.Command{
	Use:   "check [model-file]",
	Short: "Check a threat model for consistency",
	Long: `Check a threat model for dangling threat and mitigation references and
for threats left in the unmanaged state. The model passes only when no
findings remain.

With --watch the check re-runs whenever the model file changes, which
keeps a terminal next to your editor honest while you work on the model.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := modelPath(args)
		if checkWatch || cfg.Check.Watch {
			return watchAndCheck(path, cmd.OutOrStdout())
		}
		return runCheck(path, checkFormat, cmd.OutOrStdout())
	},
}

func init() {
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false,
		"re-run the check when the model file changes")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text",
		"output format: text or json")
	rootCmd.AddCommand(checkCmd)
}

// runCheck loads the model, runs the consistency check and reports the
// findings. A failed check is an error so the process exits non-zero.
func runCheck(path, format string, out io.Writer) error {
	tm, err := modelfile.LoadModel(path)
	if err != nil {
		return err
	}

	findings, passed := tm.Check()
	log.Info(log.CatCheck, "check complete", "model", tm.Name(), "findings", len(findings), "passed", passed)

	if format == "json" {
		formatter := presentation.NewFormatter(out)
		if err := formatter.FormatReport(presentation.NewReport(tm.Name(), findings, passed)); err != nil {
			return err
		}
	} else {
		for _, finding := range findings {
			fmt.Fprintln(out, findingStyle.Render("  "+finding))
		}
		if passed {
			fmt.Fprintln(out, passStyle.Render("PASS")+" "+tm.Name())
		} else {
			fmt.Fprintf(out, "%s %s: %d finding(s)\n", failStyle.Render("FAIL"), tm.Name(), len(findings))
		}
	}

	if !passed {
		return fmt.Errorf("check failed with %d finding(s)", len(findings))
	}
	return nil
}

// watchAndCheck runs the check once, then again on every change to the
// model file until interrupted. Failures do not stop the loop.
func watchAndCheck(path string, out io.Writer) error {
	w, err := watcher.New(watcher.Config{
		ModelPath:   path,
		DebounceDur: cfg.Check.Debounce(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := runCheck(path, checkFormat, out); err != nil {
		fmt.Fprintln(out, err)
	}

	fmt.Fprintf(out, "watching %s, press ctrl-c to stop\n", path)
	for {
		select {
		case <-onChange:
			log.Debug(log.CatWatch, "model changed, re-checking", "path", path)
			if err := runCheck(path, checkFormat, out); err != nil {
				fmt.Fprintln(out, err)
			}
		case <-sigCh:
			return nil
		}
	}
}
