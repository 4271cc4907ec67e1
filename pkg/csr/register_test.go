package csr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bit(name string, offset int, reset uint64) FieldDescriptor {
	return FieldDescriptor{Name: name, Size: 1, Offset: offset, Reset: reset}
}

func TestNewField_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		descriptor FieldDescriptor
	}{
		{"zero size", FieldDescriptor{Name: "f", Size: 0}},
		{"negative size", FieldDescriptor{Name: "f", Size: -3}},
		{"too wide", FieldDescriptor{Name: "f", Size: 65}},
		{"negative offset", FieldDescriptor{Name: "f", Size: 1, Offset: -1}},
		{"reset does not fit", FieldDescriptor{Name: "f", Size: 2, Reset: 4}},
		{"empty name", FieldDescriptor{Size: 1}},
		{"name is not an identifier", FieldDescriptor{Name: "tx enable", Size: 1}},
		{"value does not fit", FieldDescriptor{Name: "f", Size: 1, Values: []FieldValue{{Value: 2, Description: "two"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField(tt.descriptor)
			assert.ErrorIs(t, err, ErrInvalidField)
		})
	}
}

func TestNewField_CopiesValues(t *testing.T) {
	values := []FieldValue{{Value: 0, Description: "off"}, {Value: 1, Description: "on"}}

	field, err := NewField(FieldDescriptor{Name: "en", Size: 1, Values: values})
	require.NoError(t, err)

	values[0].Description = "changed"
	assert.Equal(t, "off", field.Values[0].Description)
}

func TestField_MaskEncodeDecode(t *testing.T) {
	field, err := NewField(FieldDescriptor{Name: "length", Size: 8, Offset: 8})
	require.NoError(t, err)

	assert.Equal(t, uint64(0xff00), field.Mask())
	assert.Equal(t, uint64(0x2000), field.Encode(0x20))
	assert.Equal(t, uint64(0x0100), field.Encode(0x101), "bits not fitting the field are dropped")
	assert.Equal(t, uint64(0x20), field.Decode(0x12345620))
	assert.Equal(t, "length[15:8]", field.String())
	assert.Equal(t, "start[0]", bit("start", 0, 0).String())
}

func TestField_FullWidthMask(t *testing.T) {
	field, err := NewField(FieldDescriptor{Name: "value", Size: 64})
	require.NoError(t, err)

	assert.Equal(t, ^uint64(0), field.Mask())
}

func TestField_ValueDescription(t *testing.T) {
	field, err := NewField(FieldDescriptor{Name: "sel", Size: 1, Values: []FieldValue{
		{Value: 0, Description: "Use VCTCXO Clk."},
		{Value: 1, Description: "Use External Clk."},
	}})
	require.NoError(t, err)

	description, found := field.ValueDescription(1)
	assert.True(t, found)
	assert.Equal(t, "Use External Clk.", description)

	_, found = field.ValueDescription(2)
	assert.False(t, found)
}

func TestNewRegister_Invalid(t *testing.T) {
	_, err := NewRegister("control", 0, AccessMode_Storage)
	assert.ErrorIs(t, err, ErrInvalidRegister)

	_, err = NewRegister("control", 65, AccessMode_Storage)
	assert.ErrorIs(t, err, ErrInvalidRegister)

	_, err = NewRegister("0control", 32, AccessMode_Storage)
	assert.ErrorIs(t, err, ErrInvalidRegister)

	_, err = NewRegister("control", 32, TOTAL_ACCESS_MODES)
	assert.ErrorIs(t, err, ErrInvalidRegister)
}

func TestRegister_ResetValue(t *testing.T) {
	r, err := NewRegisterWithFields("control", 32, AccessMode_Storage, []FieldDescriptor{
		bit("reset", 0, 1),
		bit("tx_enable", 8, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(0x101), r.ResetValue())
}

func TestRegister_ResetValue_IsOrOfShiftedFieldResets(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "a", Size: 3, Offset: 0, Reset: 5},
		{Name: "b", Size: 4, Offset: 4, Reset: 0xa},
		{Name: "c", Size: 8, Offset: 16, Reset: 0x81},
		{Name: "d", Size: 1, Offset: 31, Reset: 1},
	}

	r, err := NewRegisterWithFields("status", 32, AccessMode_ReadOnly, fields)
	require.NoError(t, err)

	var expected uint64
	var seen uint64
	for _, f := range fields {
		contribution := f.Reset << f.Offset
		assert.Zero(t, seen&contribution, "field %v contribution overlaps", f.Name)
		seen |= contribution
		expected |= contribution
	}

	assert.Equal(t, expected, r.ResetValue())
	assert.Equal(t, uint64(0x808100a5), r.ResetValue())
}

func TestRegister_ResetValue_NoFields(t *testing.T) {
	r, err := NewRegister("scratch", 32, AccessMode_Storage)
	require.NoError(t, err)

	assert.Zero(t, r.ResetValue())
	assert.Zero(t, r.UnusedMask())
}

func TestRegister_AddField_OutOfBounds(t *testing.T) {
	r, err := NewRegister("control", 32, AccessMode_Storage)
	require.NoError(t, err)

	err = r.AddField(FieldDescriptor{Name: "mode", Size: 4, Offset: 30})
	assert.ErrorIs(t, err, ErrFieldOutOfBounds)

	err = r.AddField(FieldDescriptor{Name: "huge", Size: 8, Offset: math.MaxInt - 2, Reset: 0xff})
	assert.ErrorIs(t, err, ErrFieldOutOfBounds)

	assert.False(t, r.HasFields())
	assert.Zero(t, r.ResetValue())
}

func TestNewField_PastMaxWidth(t *testing.T) {
	_, err := NewField(FieldDescriptor{Name: "f", Size: 8, Offset: math.MaxInt - 2})
	assert.ErrorIs(t, err, ErrFieldOutOfBounds)

	_, err = NewField(FieldDescriptor{Name: "f", Size: 8, Offset: 57})
	assert.ErrorIs(t, err, ErrFieldOutOfBounds)

	_, err = NewField(FieldDescriptor{Name: "f", Size: 8, Offset: 56})
	assert.NoError(t, err)
}

func TestRegister_AddField_FitsExactly(t *testing.T) {
	r, err := NewRegister("control", 8, AccessMode_Storage)
	require.NoError(t, err)

	assert.NoError(t, r.AddField(FieldDescriptor{Name: "mode", Size: 4, Offset: 4}))
	assert.ErrorIs(t, r.AddField(bit("extra", 8, 0)), ErrFieldOutOfBounds)
}

func TestRegister_AddField_Overlapping_AnyInsertionOrder(t *testing.T) {
	wide := FieldDescriptor{Name: "length", Size: 8, Offset: 8}
	narrow := bit("start", 12, 0)

	for _, order := range [][2]FieldDescriptor{{wide, narrow}, {narrow, wide}} {
		r, err := NewRegister("control", 32, AccessMode_Storage)
		require.NoError(t, err)

		require.NoError(t, r.AddField(order[0]))
		assert.ErrorIs(t, r.AddField(order[1]), ErrOverlappingField)
		assert.Len(t, r.Fields(), 1)
	}
}

func TestRegister_AddField_Adjacent(t *testing.T) {
	r, err := NewRegister("control", 32, AccessMode_Storage)
	require.NoError(t, err)

	require.NoError(t, r.AddField(FieldDescriptor{Name: "low", Size: 8, Offset: 0}))
	require.NoError(t, r.AddField(FieldDescriptor{Name: "high", Size: 8, Offset: 8}))
	assert.Equal(t, uint64(0xffff0000), r.UnusedMask())
}

func TestRegister_AddField_Duplicate(t *testing.T) {
	r, err := NewRegister("control", 32, AccessMode_Storage)
	require.NoError(t, err)

	require.NoError(t, r.AddField(bit("reset", 0, 1)))
	assert.ErrorIs(t, r.AddField(bit("RESET", 4, 0)), ErrDuplicateField)
}

func TestRegister_AddField_InvalidField(t *testing.T) {
	r, err := NewRegister("control", 32, AccessMode_Storage)
	require.NoError(t, err)

	assert.ErrorIs(t, r.AddField(FieldDescriptor{Name: "reset", Size: 0}), ErrInvalidField)
}

func TestRegister_Field(t *testing.T) {
	r, err := NewRegisterWithFields("control", 32, AccessMode_Storage, []FieldDescriptor{bit("reset", 0, 1)})
	require.NoError(t, err)

	field, err := r.Field("reset")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), field.Reset)

	field, err = r.Field("RESET")
	require.NoError(t, err)
	assert.Equal(t, "reset", field.Name)

	_, err = r.Field("power_down")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestRegister_Documentation(t *testing.T) {
	r, err := NewRegisterWithFields("control", 8, AccessMode_Storage, []FieldDescriptor{
		{Name: "en", Size: 1, Offset: 0, Reset: 1, Values: []FieldValue{
			{Value: 0, Description: "Disable"},
			{Value: 1, Description: "Enable"},
		}},
	}, WithDescription("PMIC control"))
	require.NoError(t, err)

	doc, err := r.Documentation(0)
	require.NoError(t, err)

	assert.Contains(t, doc, "control (8 bits, storage)")
	assert.Contains(t, doc, "PMIC control")
	assert.Contains(t, doc, "reset value: 0x01")
	assert.Regexp(t, `\|\s+\(unused\)\s+\|\s+en\s+\|`, doc)
	assert.Contains(t, doc, "en[0]: reset 1")
	assert.Contains(t, doc, "1: Enable")
}

func TestAccessMode(t *testing.T) {
	assert.True(t, AccessMode_ReadOnly.Readable())
	assert.False(t, AccessMode_ReadOnly.Writable())
	assert.True(t, AccessMode_ReadOnly.IsStatus())
	assert.False(t, AccessMode_WriteOnly.Readable())
	assert.True(t, AccessMode_Storage.Readable())
	assert.True(t, AccessMode_Storage.Writable())

	for mode := AccessMode(0); mode < TOTAL_ACCESS_MODES; mode++ {
		parsed, err := ParseAccessMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	_, err := ParseAccessMode("readwrite")
	assert.ErrorIs(t, err, ErrInvalidRegister)
}
