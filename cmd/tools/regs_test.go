package tools

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/Manu343726/csrgen/pkg/soc/xtrx"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disableColor(t *testing.T) {
	t.Helper()

	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })
}

func TestWriteRegisterListing(t *testing.T) {
	disableColor(t)

	model, err := xtrx.Default()
	require.NoError(t, err)

	var output bytes.Buffer
	writeRegisterListing(&output, model, listingOptions{Fields: true})
	listing := output.String()

	assert.Contains(t, listing, "lms7002m @ 0x00004000  LMS7002M transceiver control lines and SPI master\n")
	assert.Regexp(t, `(?m)^  0x00004000  lms7002m_control\s+storage   32  0x00000003\s+LMS7002M control lines$`, listing)
	assert.Regexp(t, `(?m)^  0x00004004  lms7002m_spi_control\s+storage   16  0x0000\b`, listing)
	assert.Regexp(t, `(?m)^      reset\[0\]\s+= 1 \(LMS7002M Reset\.\)$`, listing)
	assert.Regexp(t, `(?m)^      tx_enable\[8\]\s+= 0 \(LMS7002M TX Disabled\.\)$`, listing)
	assert.Regexp(t, `(?m)^  0x00005000  pmic_control\s+storage   32  0x00000002\b`, listing)
	assert.NotContains(t, listing, "\x1b[")
}

func TestWriteRegisterListing_NoFields(t *testing.T) {
	disableColor(t)

	model, err := xtrx.Default()
	require.NoError(t, err)

	var output bytes.Buffer
	writeRegisterListing(&output, model, listingOptions{})

	assert.NotContains(t, output.String(), "tx_enable[8]")
}

func TestWriteRegisterListing_TruncatesDescriptions(t *testing.T) {
	disableColor(t)

	model, err := xtrx.Default()
	require.NoError(t, err)

	var output bytes.Buffer
	writeRegisterListing(&output, model, listingOptions{Width: 100})

	for _, line := range strings.Split(output.String(), "\n") {
		if strings.HasPrefix(line, "  0x") {
			assert.LessOrEqual(t, len(line), 100, line)
		}
	}
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	var output bytes.Buffer
	assert.Zero(t, terminalWidth(&output))

	file, err := os.CreateTemp(t.TempDir(), "regs")
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	assert.Zero(t, terminalWidth(file))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "SPI MOSI data", truncate("SPI MOSI data", 0))
	assert.Equal(t, "SPI MOSI data", truncate("SPI MOSI data", 20))
	assert.Equal(t, "SPI M...", truncate("SPI MOSI data", 8))
	assert.Equal(t, "SP", truncate("SPI MOSI data", 2))
}

func TestDocumentation(t *testing.T) {
	model, err := xtrx.Default()
	require.NoError(t, err)

	doc, err := documentation(model, []string{"pmic", "gpio"})
	require.NoError(t, err)

	assert.Contains(t, doc, "pmic @ 0x00005000 (1 registers)")
	assert.Contains(t, doc, "gpio @ 0x00004800 (1 registers)")
	assert.Less(t, strings.Index(doc, "pmic @"), strings.Index(doc, "gpio @"))

	_, err = documentation(model, []string{"dac"})
	assert.Error(t, err)

	full, err := documentation(model, nil)
	require.NoError(t, err)
	assert.Contains(t, full, "CONFIG_CLOCK_FREQUENCY = 125000000")
}
