package csr

import (
	"fmt"

	"github.com/Manu343726/csrgen/pkg/utils"
)

// Maximum width of a field or register, in bits
const MaxWidth = 64

// Documents the meaning of one encoded value of a field
type FieldValue struct {
	Value       uint64
	Description string
}

// Describes a named range of bits within a register
type FieldDescriptor struct {
	// Field name, must be a valid C identifier
	Name string

	// Field width in bits
	Size int

	// Position of the least significant bit of the field within the register
	Offset int

	// Value of the field after reset
	Reset uint64

	// Field description (for documentation)
	Description string

	// Meaning of the encoded values of the field, in declaration order
	Values []FieldValue

	// Writes to the field last one clock cycle (documentation only)
	Pulse bool
}

// Validates a field descriptor and returns a copy of it.
// Fields reaching past bit MaxWidth-1 fail with ErrFieldOutOfBounds. Whether the field
// fits its register is checked by Register.AddField().
func NewField(descriptor FieldDescriptor) (FieldDescriptor, error) {
	if !utils.IsIdentifier(descriptor.Name) {
		return FieldDescriptor{}, utils.MakeError(ErrInvalidField, "'%v' is not a valid field name", descriptor.Name)
	}

	if descriptor.Size <= 0 || descriptor.Size > MaxWidth {
		return FieldDescriptor{}, utils.MakeError(ErrInvalidField, "field '%v' has size %v, expected 1 to %v bits", descriptor.Name, descriptor.Size, MaxWidth)
	}

	if descriptor.Offset < 0 {
		return FieldDescriptor{}, utils.MakeError(ErrInvalidField, "field '%v' has negative offset %v", descriptor.Name, descriptor.Offset)
	}

	if descriptor.Offset > MaxWidth-descriptor.Size {
		return FieldDescriptor{}, utils.MakeError(ErrFieldOutOfBounds, "field '%v' at offset %v with size %v goes past bit %v", descriptor.Name, descriptor.Offset, descriptor.Size, MaxWidth-1)
	}

	if !utils.Fits(descriptor.Reset, descriptor.Size) {
		return FieldDescriptor{}, utils.MakeError(ErrInvalidField, "reset value %v of field '%v' does not fit in %v bits", descriptor.Reset, descriptor.Name, descriptor.Size)
	}

	for _, value := range descriptor.Values {
		if !utils.Fits(value.Value, descriptor.Size) {
			return FieldDescriptor{}, utils.MakeError(ErrInvalidField, "value %v (%v) of field '%v' does not fit in %v bits", value.Value, value.Description, descriptor.Name, descriptor.Size)
		}
	}

	return descriptor.clone(), nil
}

func (f FieldDescriptor) clone() FieldDescriptor {
	f.Values = append([]FieldValue(nil), f.Values...)
	return f
}

// Returns the position of the first bit after the field
func (f FieldDescriptor) PastTopBit() int {
	return f.Offset + f.Size
}

// Returns the position of the most significant bit of the field
func (f FieldDescriptor) TopBit() int {
	return f.PastTopBit() - 1
}

// Returns the mask selecting the field bits within the register
func (f FieldDescriptor) Mask() uint64 {
	return utils.Mask[uint64](f.Offset, f.Size)
}

// Returns the field reset value shifted into its position within the register
func (f FieldDescriptor) ResetBits() uint64 {
	return f.Encode(f.Reset)
}

// Places a field value at the field position. Bits not fitting the field are dropped
func (f FieldDescriptor) Encode(value uint64) uint64 {
	var word uint64
	utils.CreateBitView(&word).Write(value, f.Offset, f.Size)
	return word
}

// Extracts the field value from a register value
func (f FieldDescriptor) Decode(word uint64) uint64 {
	return utils.CreateBitView(&word).Read(f.Offset, f.Size)
}

// Returns the documented meaning of a field value, if any
func (f FieldDescriptor) ValueDescription(value uint64) (string, bool) {
	for _, v := range f.Values {
		if v.Value == value {
			return v.Description, true
		}
	}

	return "", false
}

// Returns true if both fields share at least one bit
func (f FieldDescriptor) Overlaps(other FieldDescriptor) bool {
	return f.Offset < other.PastTopBit() && other.Offset < f.PastTopBit()
}

func (f FieldDescriptor) String() string {
	if f.Size == 1 {
		return fmt.Sprintf("%v[%v]", f.Name, f.Offset)
	}

	return fmt.Sprintf("%v[%v:%v]", f.Name, f.TopBit(), f.Offset)
}
