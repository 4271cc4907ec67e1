package description

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/Manu343726/csrgen/pkg/soc/xtrx"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pmicDescription = `
name: board
csr_base: 0x1000
constants:
  - name: CONFIG_CLOCK_FREQUENCY
    value: 125000000
  - name: CONFIG_HAS_PMIC
memory_regions:
  - name: csr
    base: 0x1000
    size: 0x10000
    kind: csr
peripherals:
  - name: ctrl
    registers:
      - name: scratch
        width: 32
        access: storage
  - name: pmic
    description: PMIC reference clock selector
    registers:
      - name: control
        width: 32
        access: storage
        fields:
          - name: sel
            offset: 0
            size: 1
            values:
              - value: 0
                description: Use VCTCXO Clk.
              - value: 1
                description: Use External Clk.
          - name: en
            offset: 1
            size: 1
            reset: 1
  - name: status
    base: 0x8000
    stride: 8
    registers:
      - name: level
        width: 64
        access: ro
`

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(pmicDescription))
	require.NoError(t, err)

	assert.Equal(t, "board", s.Name())
	assert.Equal(t, uint64(0x1000), s.CSRBase())
	assert.Equal(t, uint64(soc.DefaultCSRPaging), s.CSRPaging())

	assert.Equal(t, []soc.Constant{
		{Name: "CONFIG_CLOCK_FREQUENCY", Value: 125000000},
		{Name: "CONFIG_HAS_PMIC", IsFlag: true},
	}, s.Constants())

	pmic, err := s.RegisterMap("pmic")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1800), pmic.BaseAddress())
	assert.Equal(t, "PMIC reference clock selector", pmic.Description())

	control, address, err := pmic.Lookup("control")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1800), address)
	assert.Equal(t, uint64(0x2), control.ResetValue())

	status, err := s.RegisterMap("status")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x8000), status.BaseAddress())
	assert.Equal(t, uint64(8), status.Stride())

	level, _, err := status.Lookup("level")
	require.NoError(t, err)
	assert.Equal(t, csr.AccessMode_ReadOnly, level.Access())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
		err      error
	}{
		{"empty", "", ErrInvalidDescription},
		{"not yaml", "name: [", ErrInvalidDescription},
		{"unknown key", "name: board\ncolor: red\n", ErrInvalidDescription},
		{"bad soc name", "name: my board\n", soc.ErrInvalidSoC},
		{"bad access", "name: b\nperipherals:\n  - name: p\n    registers:\n      - {name: r, width: 8, access: rwx}\n", csr.ErrInvalidRegister},
		{"bad region kind", "name: b\nmemory_regions:\n  - {name: r, base: 0, size: 16, kind: flash}\n", soc.ErrInvalidMemoryRegion},
		{"overlapping fields", "name: b\nperipherals:\n  - name: p\n    registers:\n      - name: r\n        width: 8\n        access: rw\n        fields:\n          - {name: a, offset: 0, size: 4}\n          - {name: b, offset: 2, size: 4}\n", csr.ErrOverlappingField},
		{"field offset overflow", "name: b\nperipherals:\n  - name: p\n    registers:\n      - name: r\n        width: 32\n        access: rw\n        fields:\n          - {name: huge, offset: 9223372036854775805, size: 8, reset: 255}\n", csr.ErrFieldOutOfBounds},
		{"clashing register symbols", "name: b\nperipherals:\n  - name: p\n    registers:\n      - name: r\n        width: 8\n        access: rw\n        fields:\n          - {name: x, offset: 0, size: 1}\n      - {name: r_x, width: 8, access: rw}\n", csr.ErrDuplicateRegisterName},
		{"duplicate constant", "name: b\nconstants:\n  - {name: A, value: 1}\n  - {name: A}\n", soc.ErrDuplicateConstant},
		{"duplicate peripheral", "name: b\nperipherals:\n  - {name: p}\n  - {name: p, base: 0x4000}\n", soc.ErrDuplicatePeripheral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.document))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDumpLoad_RoundTrip(t *testing.T) {
	original, err := xtrx.Default()
	require.NoError(t, err)

	var first bytes.Buffer
	require.NoError(t, Dump(&first, original))

	loaded, err := Load(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, Dump(&second, loaded))

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, FromSoC(original), FromSoC(loaded))

	lms, err := loaded.RegisterMap("lms7002m")
	require.NoError(t, err)
	control, _, err := lms.Lookup("control")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x3), control.ResetValue())
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "boards/board.yaml", []byte(pmicDescription), 0644))

	s, err := LoadFile(fs, "boards/board.yaml")
	require.NoError(t, err)
	assert.Len(t, s.RegisterMaps(), 3)

	_, err = LoadFile(fs, "boards/missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "boards/broken.yaml", []byte("name: [\n"), 0644))
	_, err = LoadFile(fs, "boards/broken.yaml")
	assert.ErrorIs(t, err, ErrInvalidDescription)
	assert.Contains(t, err.Error(), "boards/broken.yaml")
}
