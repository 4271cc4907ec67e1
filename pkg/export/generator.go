// Package export serializes SoC models into the C headers and listings consumed by the driver build
package export

import (
	"bytes"
	"embed"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/Manu343726/csrgen/pkg/utils"
	"github.com/spf13/afero"
)

//go:embed templates
var Templates embed.FS

const (
	CSRHeader  = "csr.h"
	SoCHeader  = "soc.h"
	MemHeader  = "mem.h"
	CSRListing = "csr.csv"
)

type Options struct {
	// Prepended to every peripheral symbol of csr.h
	Prefix string

	// Emit static inline read/write/extract/replace functions
	WithAccessFunctions bool

	// Filesystem generated files are written to. Defaults to the OS filesystem
	Fs afero.Fs

	// Defaults to slog.Default()
	Logger *slog.Logger
}

type Generator struct {
	template *template.Template
	options  Options
}

// Renders some content into a writer
type RenderFunc func(w io.Writer) error

func NewGenerator(options Options) (*Generator, error) {
	if options.Fs == nil {
		options.Fs = afero.NewOsFs()
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	funcs := template.FuncMap{
		"ToUpper": strings.ToUpper,
		"ToLower": strings.ToLower,
		"Comment": func(text string) string {
			return strings.ReplaceAll(text, "*/", "* /")
		},
	}

	t, err := template.New("headers").Funcs(funcs).
		ParseFS(Templates, "templates/*.tmpl")

	if err != nil {
		return nil, err
	}

	return &Generator{
		template: t,
		options:  options,
	}, nil
}

func (g *Generator) render(w io.Writer, templateName string, s *soc.SoC) error {
	var buffer bytes.Buffer

	if err := g.template.ExecuteTemplate(&buffer, templateName, g.headerView(s)); err != nil {
		return err
	}

	if _, err := buffer.WriteTo(w); err != nil {
		return utils.MakeError(ErrGenerationIO, "%w", err)
	}

	return nil
}

// Writes csr.h: peripheral bases, register addresses and field layouts
func (g *Generator) CSRHeaderTo(w io.Writer, s *soc.SoC) error {
	return g.render(w, CSRHeader+".tmpl", s)
}

// Writes soc.h: one #define per SoC constant
func (g *Generator) SoCHeaderTo(w io.Writer, s *soc.SoC) error {
	return g.render(w, SoCHeader+".tmpl", s)
}

// Writes mem.h: base and size of each memory region
func (g *Generator) MemHeaderTo(w io.Writer, s *soc.SoC) error {
	return g.render(w, MemHeader+".tmpl", s)
}

// Renders a file in memory and atomically replaces path with it.
// On failure the previous content of path, if any, is left untouched.
func (g *Generator) Generate(path string, render RenderFunc) error {
	var buffer bytes.Buffer

	if err := render(&buffer); err != nil {
		return err
	}

	return g.writeFile(path, buffer.Bytes())
}

func (g *Generator) writeFile(path string, data []byte) error {
	fs := g.options.Fs
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := afero.TempFile(fs, dir, "."+name+".*.tmp")
	if err != nil {
		return utils.MakeError(ErrGenerationIO, "creating temporary file for '%v': %w", path, err)
	}

	tmpPath := tmp.Name()
	_, err = tmp.Write(data)

	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}

	if err == nil {
		err = fs.Chmod(tmpPath, 0644)
	}

	if err == nil {
		err = fs.Rename(tmpPath, path)
	}

	if err != nil {
		fs.Remove(tmpPath)
		return utils.MakeError(ErrGenerationIO, "writing '%v': %w", path, err)
	}

	g.options.Logger.Debug("generated file", slog.String("path", path), slog.Int("bytes", len(data)))
	return nil
}

// Writes csr.h, soc.h and mem.h into dir, creating it if needed.
// All headers are rendered before anything is written.
func (g *Generator) GenerateHeaders(dir string, s *soc.SoC) error {
	headers := []struct {
		name   string
		render func(io.Writer, *soc.SoC) error
	}{
		{CSRHeader, g.CSRHeaderTo},
		{SoCHeader, g.SoCHeaderTo},
		{MemHeader, g.MemHeaderTo},
	}

	contents := make([][]byte, len(headers))

	for i, header := range headers {
		var buffer bytes.Buffer

		if err := header.render(&buffer, s); err != nil {
			return err
		}

		contents[i] = buffer.Bytes()
	}

	if err := g.options.Fs.MkdirAll(dir, 0755); err != nil {
		return utils.MakeError(ErrGenerationIO, "creating output directory '%v': %w", dir, err)
	}

	for i, header := range headers {
		if err := g.writeFile(filepath.Join(dir, header.name), contents[i]); err != nil {
			return err
		}
	}

	g.options.Logger.Info("generated headers", slog.String("soc", s.Name()), slog.String("dir", dir))
	return nil
}
