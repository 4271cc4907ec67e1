package gen

import (
	"io"

	"github.com/Manu343726/csrgen/cmd/app"
	"github.com/Manu343726/csrgen/pkg/soc/description"
	"github.com/spf13/cobra"
)

var yamlOutputFile string

var yamlCmd = &cobra.Command{
	Use:   "yaml",
	Short: "Dump the SoC model as a YAML description",
	Long: `Dumps the SoC model as a YAML description. The result can be edited and fed back
with --description to generate headers for a customized SoC.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := app.MustSession()
		defer session.Close()

		model := session.MustLoadSoC()
		g := session.MustGenerator()

		var err error
		if len(yamlOutputFile) == 0 {
			err = description.Dump(cmd.OutOrStdout(), model)
		} else {
			err = g.Generate(yamlOutputFile, func(w io.Writer) error { return description.Dump(w, model) })
		}

		if err != nil {
			session.Fatal(app.ExitGeneration, "dumping soc description: %v", err)
		}
	},
}

func init() {
	GenCmd.AddCommand(yamlCmd)
	yamlCmd.Flags().StringVarP(&yamlOutputFile, "output-file", "o", "", "Output file. If omitted, the output will be written to stdout")
}
