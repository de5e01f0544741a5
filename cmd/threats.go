package cmd

import (
	"github.com/spf13/cobra"

	"threatmap/internal/application/modelfile"
	"threatmap/internal/presentation"
)

var threatsCmd = &cobra.Command{
	Use:   "threats [model-file]",
	Short: "List the model's threats as JSON",
	Long: `List every threat in the model as JSON, with references reconciled
first so child threat and mitigation ids reflect the resolved state.

Examples:
  threatmap threats model.yaml
  threatmap threats model.yaml | jq '.[] | select(.status == "UNMANAGED")'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tm, err := modelfile.LoadModel(modelPath(args))
		if err != nil {
			return err
		}
		tm.Check()

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatThreats(presentation.FromDomainThreats(tm.Threats()))
	},
}

func init() {
	rootCmd.AddCommand(threatsCmd)
}
