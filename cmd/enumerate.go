package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"threatmap/internal/application/modelfile"
	"threatmap/internal/enumeration"
	"threatmap/internal/log"
)

var enumerateDryRun bool

var enumerateCmd = &cobra.Command{
	Use:   "enumerate [model-file]",
	Short: "Enumerate candidate threats with naive STRIDE",
	Long: `Propose one threat per STRIDE category for every element in the model
and write the additions back to the model file. Proposed identifiers are
deterministic, so re-running enumeration never duplicates threats that
are already present.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEnumerate(modelPath(args), enumerateDryRun, cmd.OutOrStdout())
	},
}

func init() {
	enumerateCmd.Flags().BoolVarP(&enumerateDryRun, "dry-run", "n", false,
		"report what would be added without writing the model file")
	rootCmd.AddCommand(enumerateCmd)
}

func runEnumerate(path string, dryRun bool, out io.Writer) error {
	tm, err := modelfile.LoadModel(path)
	if err != nil {
		return err
	}

	method := enumeration.NaiveSTRIDE{}
	proposed := method.Generate(tm.Threats(), tm.ThreatBearingElements())

	before := len(tm.Threats())
	tm.AddThreats(proposed)
	added := len(tm.Threats()) - before
	log.Info(log.CatEnum, "enumeration run", "model", tm.Name(), "proposed", len(proposed), "added", added)

	if dryRun {
		fmt.Fprintf(out, "would add %d of %d proposed threat(s)\n", added, len(proposed))
		return nil
	}

	if added > 0 {
		if err := modelfile.SaveFile(tm, path); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "added %d threat(s)\n", added)
	return nil
}
