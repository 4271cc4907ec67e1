package gen

import (
	"bytes"
	"testing"

	"github.com/Manu343726/csrgen/pkg/export"
	"github.com/Manu343726/csrgen/pkg/soc/xtrx"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintHeaders(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	model, err := xtrx.Default()
	require.NoError(t, err)

	g, err := export.NewGenerator(export.Options{})
	require.NoError(t, err)

	var output bytes.Buffer
	require.NoError(t, printHeaders(&output, g, model))

	var csrHeader bytes.Buffer
	require.NoError(t, g.CSRHeaderTo(&csrHeader, model))

	assert.Contains(t, output.String(), "csr.h\n"+csrHeader.String())
	assert.Contains(t, output.String(), "\nsoc.h\n")
	assert.Contains(t, output.String(), "\nmem.h\n")
	assert.Contains(t, output.String(), "#define LMS7002M_CONTROL_ADDR 0x00004000L")
}
