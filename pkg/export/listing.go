package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/Manu343726/csrgen/pkg/utils"
)

// Writes the csr.csv listing of a SoC: one row per peripheral base, register,
// constant and memory region, in that order
func (g *Generator) CSVTo(w io.Writer, s *soc.SoC) error {
	var buffer bytes.Buffer
	l := &listingWriter{header: &buffer, rows: csv.NewWriter(&buffer)}

	if err := l.write(s); err != nil {
		return err
	}

	if _, err := buffer.WriteTo(w); err != nil {
		return utils.MakeError(ErrGenerationIO, "%w", err)
	}

	return nil
}

type listingWriter struct {
	header io.Writer
	rows   *csv.Writer
}

func (l *listingWriter) write(s *soc.SoC) error {
	fmt.Fprintln(l.header, "#--------------------------------------------------------------------------------")
	fmt.Fprintf(l.header, "# %v CSR listing, generated file, do not edit\n", s.Name())
	fmt.Fprintln(l.header, "#--------------------------------------------------------------------------------")

	maps := s.RegisterMaps()

	for _, m := range maps {
		l.row("csr_base", m.Name(), utils.FormatUintHex(m.BaseAddress(), 8), "", "")
	}

	for _, m := range maps {
		for _, entry := range m.Registers() {
			l.row("csr_register",
				utils.LowerSymbol(m.Name(), entry.Register.Name()),
				utils.FormatUintHex(entry.Address, 8),
				fmt.Sprint(csrWords(entry.Register.Width())),
				listingMode(entry.Register.Access()),
			)
		}
	}

	for _, c := range s.Constants() {
		value := "None"
		if !c.IsFlag {
			value = fmt.Sprint(c.Value)
		}

		l.row("constant", utils.LowerSymbol(c.Name), value, "", "")
	}

	for _, r := range s.MemoryRegions() {
		kind := "cached"
		if r.Kind.IsIO() {
			kind = "io"
		}

		l.row("memory_region", r.Name, utils.FormatUintHex(r.BaseAddress, 8), fmt.Sprint(r.Size), kind)
	}

	l.rows.Flush()
	return l.rows.Error()
}

func (l *listingWriter) row(fields ...string) {
	// Errors are sticky and reported by Flush()
	l.rows.Write(fields)
}

// Listing access column: status registers are "ro", everything else "rw"
func listingMode(access csr.AccessMode) string {
	if access.IsStatus() {
		return "ro"
	}

	return "rw"
}
