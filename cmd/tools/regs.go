package tools

import (
	"fmt"
	"io"
	"os"

	"github.com/Manu343726/csrgen/cmd/app"
	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/Manu343726/csrgen/pkg/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	colorPeripheral  = color.New(color.FgWhite, color.Bold)
	colorAddr        = color.New(color.FgCyan)
	colorReg         = color.New(color.FgGreen)
	colorAccess      = color.New(color.FgYellow)
	colorValue       = color.New(color.FgMagenta)
	colorField       = color.New(color.FgHiGreen)
	colorDescription = color.New(color.FgHiBlack)
)

var regsColor string
var regsFields bool

var regsCmd = &cobra.Command{
	Use:   "regs",
	Short: "List the SoC registers",
	Long: `Lists every register of the SoC with its address, access mode, width and reset value.
With --fields the bit fields of each register and the meaning of their reset values are listed too.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		switch regsColor {
		case "always":
			color.NoColor = false
		case "never":
			color.NoColor = true
		case "auto":
		default:
			app.Fatal(app.ExitSetup, "invalid --color value '%v', expected auto, always or never", regsColor)
		}

		session := app.MustSession()
		defer session.Close()

		model := session.MustLoadSoC()

		out := cmd.OutOrStdout()
		writeRegisterListing(out, model, listingOptions{Fields: regsFields, Width: terminalWidth(out)})
	},
}

type listingOptions struct {
	// List register fields
	Fields bool

	// Descriptions are truncated to fit this many columns. Zero means no limit
	Width int
}

// Returns the number of columns of the terminal w writes to, or zero if w is not a terminal
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}

	columns, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}

	return columns
}

// Cuts text to n characters, marking the cut with an ellipsis
func truncate(text string, n int) string {
	if n <= 0 || len(text) <= n {
		return text
	}

	if n <= 3 {
		return text[:n]
	}

	return text[:n-3] + "..."
}

func padded(c *color.Color, text string, width int) string {
	return c.Sprint(fmt.Sprintf("%-*s", width, text))
}

func writeRegisterListing(w io.Writer, model *soc.SoC, options listingOptions) {
	maps := model.RegisterMaps()

	nameWidth := 0
	for _, m := range maps {
		for _, entry := range m.Registers() {
			nameWidth = max(nameWidth, len(utils.LowerSymbol(m.Name(), entry.Register.Name())))
		}
	}

	for i, m := range maps {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "%v @ %v", colorPeripheral.Sprint(m.Name()), colorAddr.Sprint(utils.FormatUintHex(m.BaseAddress(), 8)))
		if len(m.Description()) > 0 {
			fmt.Fprintf(w, "  %v", colorDescription.Sprint(m.Description()))
		}
		fmt.Fprintln(w)

		for _, entry := range m.Registers() {
			writeRegister(w, m, entry, nameWidth, options)
		}
	}
}

func writeRegister(w io.Writer, m *csr.RegisterMap, entry csr.RegisterEntry, nameWidth int, options listingOptions) {
	r := entry.Register
	name := utils.LowerSymbol(m.Name(), r.Name())

	// "  0x00000000  name  access  width  reset  "
	prefix := 2 + 10 + 2 + nameWidth + 2 + 7 + 2 + 3 + 2 + 18 + 2

	fmt.Fprintf(w, "  %v  %v  %v  %3d  %v",
		colorAddr.Sprint(utils.FormatUintHex(entry.Address, 8)),
		padded(colorReg, name, nameWidth),
		padded(colorAccess, r.Access().String(), 7),
		r.Width(),
		padded(colorValue, utils.FormatUintHex(r.ResetValue(), utils.HexDigits(r.Width())), 18),
	)

	room := options.Width - prefix
	if len(r.Description()) > 0 && (options.Width == 0 || room > 3) {
		fmt.Fprintf(w, "  %v", colorDescription.Sprint(truncate(r.Description(), room)))
	}

	fmt.Fprintln(w)

	if !options.Fields {
		return
	}

	for _, field := range r.Fields() {
		fmt.Fprintf(w, "      %v = %v",
			padded(colorField, field.String(), 24),
			colorValue.Sprint(field.Reset),
		)

		if description, found := field.ValueDescription(field.Reset); found {
			fmt.Fprintf(w, " (%v)", description)
		} else if len(field.Description) > 0 {
			fmt.Fprintf(w, "  %v", colorDescription.Sprint(field.Description))
		}

		fmt.Fprintln(w)
	}
}

func init() {
	ToolsCmd.AddCommand(regsCmd)
	regsCmd.Flags().StringVar(&regsColor, "color", "auto", "Colorize the output: auto, always or never")
	regsCmd.Flags().BoolVarP(&regsFields, "fields", "f", false, "List register fields")
}
