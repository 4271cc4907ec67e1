package tools

import (
	"fmt"
	"io"
	"strings"

	"github.com/Manu343726/csrgen/cmd/app"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/spf13/cobra"
)

var docsOutputFile string

var docsCmd = &cobra.Command{
	Use:   "docs [peripheral...]",
	Short: "Show the SoC register documentation",
	Long: `Dumps the documentation of the SoC registers, with an ASCII diagram of the bit layout of each register.
If peripherals are given, only their registers are documented. Otherwise the whole SoC
(memory regions, constants and all peripherals) is.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.`,
	Run: func(cmd *cobra.Command, args []string) {
		session := app.MustSession()
		defer session.Close()

		model := session.MustLoadSoC()

		doc, err := documentation(model, args)
		if err != nil {
			session.Fatal(app.ExitSetup, "%v", err)
		}

		if len(docsOutputFile) == 0 {
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return
		}

		g := session.MustGenerator()
		err = g.Generate(docsOutputFile, func(w io.Writer) error {
			_, err := io.WriteString(w, doc)
			return err
		})

		if err != nil {
			session.Fatal(app.ExitGeneration, "writing documentation: %v", err)
		}
	},
}

// Returns the documentation of the given peripherals, or of the whole SoC if none is given
func documentation(model *soc.SoC, peripherals []string) (string, error) {
	if len(peripherals) == 0 {
		return model.Documentation(0)
	}

	var builder strings.Builder

	for i, name := range peripherals {
		m, err := model.RegisterMap(name)
		if err != nil {
			return "", err
		}

		doc, err := m.Documentation(0)
		if err != nil {
			return "", err
		}

		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString(doc)
	}

	return builder.String(), nil
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringVarP(&docsOutputFile, "output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
