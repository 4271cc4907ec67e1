package gen

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Manu343726/csrgen/cmd/app"
	"github.com/Manu343726/csrgen/pkg/config"
	"github.com/Manu343726/csrgen/pkg/export"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/Manu343726/csrgen/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var headersStdout bool

var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Generate the csr.h, soc.h and mem.h C headers",
	Long: `Generates the C headers describing the SoC register map:

  csr.h  peripheral bases, register addresses, reset values and field offsets/masks
  soc.h  SoC constants (clock frequency, DMA settings, ...)
  mem.h  memory regions

Headers are written to <output-dir>/<kernel-subdir>, replacing existing files atomically.
With --stdout they are printed instead, syntax highlighted when the output is a terminal.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := app.MustSession()
		defer session.Close()

		model := session.MustLoadSoC()
		g := session.MustGenerator()

		if headersStdout {
			if err := printHeaders(cmd.OutOrStdout(), g, model); err != nil {
				session.Fatal(app.ExitGeneration, "generating headers: %v", err)
			}

			return
		}

		dir := session.Config.HeadersDir()
		if err := g.GenerateHeaders(dir, model); err != nil {
			session.Fatal(app.ExitGeneration, "generating headers: %v", err)
		}

		for _, name := range []string{export.CSRHeader, export.SoCHeader, export.MemHeader} {
			app.ColorSuccess.Fprintf(cmd.OutOrStdout(), "generated %v\n", filepath.Join(dir, name))
		}
	},
}

func printHeaders(w io.Writer, g *export.Generator, model *soc.SoC) error {
	headers := []struct {
		name   string
		render func(io.Writer, *soc.SoC) error
	}{
		{export.CSRHeader, g.CSRHeaderTo},
		{export.SoCHeader, g.SoCHeaderTo},
		{export.MemHeader, g.MemHeaderTo},
	}

	for i, header := range headers {
		var buffer bytes.Buffer

		if err := header.render(&buffer, model); err != nil {
			return err
		}

		if i > 0 {
			fmt.Fprintln(w)
		}

		app.ColorHeader.Fprintf(w, "%v\n", header.name)
		fmt.Fprint(w, utils.HighlightCCode(buffer.String()))
	}

	return nil
}

func init() {
	GenCmd.AddCommand(headersCmd)

	flags := headersCmd.Flags()
	flags.StringP("output", "o", "build", "Output directory. Headers go to its kernel subdirectory")
	flags.String("kernel-subdir", filepath.Join("software", "kernel"), "Subdirectory of the output directory the headers are written to")
	flags.String("prefix", "", "Prefix of all csr.h symbols")
	flags.Bool("with-access-functions", false, "Generate inline read/write/extract/replace functions")
	flags.BoolVar(&headersStdout, "stdout", false, "Print the headers instead of writing them")

	for key, flag := range map[string]string{
		config.KeyOutputDir:           "output",
		config.KeyOutputKernelSubdir:  "kernel-subdir",
		config.KeyHeaderPrefix:        "prefix",
		config.KeyWithAccessFunctions: "with-access-functions",
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}
