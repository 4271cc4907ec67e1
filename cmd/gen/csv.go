package gen

import (
	"io"

	"github.com/Manu343726/csrgen/cmd/app"
	"github.com/spf13/cobra"
)

var csvOutputFile string

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Generate the csr.csv register listing",
	Long: `Generates a csr.csv listing of the SoC, one row per peripheral base (csr_base),
register (csr_register), constant and memory region, as consumed by LiteX tooling.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := app.MustSession()
		defer session.Close()

		model := session.MustLoadSoC()
		g := session.MustGenerator()

		var err error
		if len(csvOutputFile) == 0 {
			err = g.CSVTo(cmd.OutOrStdout(), model)
		} else {
			err = g.Generate(csvOutputFile, func(w io.Writer) error { return g.CSVTo(w, model) })
		}

		if err != nil {
			session.Fatal(app.ExitGeneration, "generating csv listing: %v", err)
		}
	},
}

func init() {
	GenCmd.AddCommand(csvCmd)
	csvCmd.Flags().StringVarP(&csvOutputFile, "output-file", "o", "", "Output file. If omitted, the output will be written to stdout")
}
