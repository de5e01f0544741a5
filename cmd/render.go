package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"threatmap/internal/application/modelfile"
	"threatmap/internal/log"
	"threatmap/internal/render"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render [model-file]",
	Short: "Render diagrams as Graphviz DOT",
	Long: `Render the model's data-flow diagram and one attack tree per root
threat as Graphviz DOT files. Pipe the output through dot to produce
images:

  threatmap render model.yaml
  dot -Tpng dfd.dot -o dfd.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(modelPath(args), renderOut, cmd.OutOrStdout())
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "",
		"output directory for DOT files (default: current directory)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(path, outDir string, out io.Writer) error {
	tm, err := modelfile.LoadModel(path)
	if err != nil {
		return err
	}

	if outDir == "" {
		outDir = cfg.Render.OutputDir
	}
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	dfdPath := filepath.Join(outDir, "dfd.dot")
	if err := os.WriteFile(dfdPath, []byte(render.DFD(tm)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dfdPath, err)
	}
	log.Debug(log.CatRender, "wrote dfd", "path", dfdPath)
	fmt.Fprintln(out, "wrote", dfdPath)

	// Reconcile references so child threat ids become objects before the
	// trees are walked.
	tm.Check()
	for _, threat := range tm.RootThreats() {
		treePath := filepath.Join(outDir, "attack_tree_"+fileSafe(string(threat.Identifier()))+".dot")
		if err := os.WriteFile(treePath, []byte(render.AttackTree(threat)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", treePath, err)
		}
		log.Debug(log.CatRender, "wrote attack tree", "path", treePath, "threat", threat.Identifier())
		fmt.Fprintln(out, "wrote", treePath)
	}

	return nil
}

// fileSafe makes an identifier usable as part of a file name.
func fileSafe(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
