package csr

import (
	"fmt"
	"strings"

	"github.com/Manu343726/csrgen/pkg/utils"
)

// Describes an addressable register made of bit fields.
// The structure is fixed once the register is added to a RegisterMap.
type Register struct {
	name        string
	description string
	access      AccessMode
	width       int
	fields      []FieldDescriptor
}

type RegisterOption func(*Register)

// Sets the register description (for documentation)
func WithDescription(description string) RegisterOption {
	return func(r *Register) {
		r.description = description
	}
}

// Creates an empty register of the given width in bits
func NewRegister(name string, width int, access AccessMode, options ...RegisterOption) (*Register, error) {
	if !utils.IsIdentifier(name) {
		return nil, utils.MakeError(ErrInvalidRegister, "'%v' is not a valid register name", name)
	}

	if width <= 0 || width > MaxWidth {
		return nil, utils.MakeError(ErrInvalidRegister, "register '%v' has width %v, expected 1 to %v bits", name, width, MaxWidth)
	}

	if access >= TOTAL_ACCESS_MODES {
		return nil, utils.MakeError(ErrInvalidRegister, "register '%v' has an invalid access mode (%d)", name, uint(access))
	}

	r := &Register{
		name:   name,
		width:  width,
		access: access,
	}

	for _, option := range options {
		option(r)
	}

	return r, nil
}

// Creates a register and adds all the given fields to it, failing on the first invalid one
func NewRegisterWithFields(name string, width int, access AccessMode, fields []FieldDescriptor, options ...RegisterOption) (*Register, error) {
	r, err := NewRegister(name, width, access, options...)
	if err != nil {
		return nil, err
	}

	for _, field := range fields {
		if err := r.AddField(field); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Validates a field against the register layout and appends it
func (r *Register) AddField(descriptor FieldDescriptor) error {
	field, err := NewField(descriptor)
	if err != nil {
		return err
	}

	if field.Offset > r.width-field.Size {
		return utils.MakeError(ErrFieldOutOfBounds, "field %v does not fit in %v bits register '%v'", field, r.width, r.name)
	}

	for _, existing := range r.fields {
		if strings.EqualFold(existing.Name, field.Name) {
			return utils.MakeError(ErrDuplicateField, "register '%v' already has a field named '%v'", r.name, existing.Name)
		}

		if existing.Overlaps(field) {
			return utils.MakeError(ErrOverlappingField, "field %v overlaps field %v of register '%v'", field, existing, r.name)
		}
	}

	r.fields = append(r.fields, field)
	return nil
}

func (r *Register) Name() string {
	return r.name
}

func (r *Register) Description() string {
	return r.description
}

func (r *Register) Access() AccessMode {
	return r.access
}

// Returns the register width in bits
func (r *Register) Width() int {
	return r.width
}

// Returns a copy of the register fields, in declaration order
func (r *Register) Fields() []FieldDescriptor {
	return utils.Map(r.fields, FieldDescriptor.clone)
}

// Returns true if the register is split in fields
func (r *Register) HasFields() bool {
	return len(r.fields) > 0
}

// Returns a field by name, ignoring case
func (r *Register) Field(name string) (FieldDescriptor, error) {
	index := utils.IndexOf(r.fields, func(f FieldDescriptor) bool { return strings.EqualFold(f.Name, name) })

	if index < 0 {
		return FieldDescriptor{}, utils.MakeError(ErrUnknownField, "register '%v' has no field '%v'", r.name, name)
	}

	return r.fields[index].clone(), nil
}

// Returns the register value after reset: each field reset value placed at its offset, zero elsewhere
func (r *Register) ResetValue() uint64 {
	var value uint64
	view := utils.CreateBitView(&value)

	for _, field := range r.fields {
		view.Write(field.Reset, field.Offset, field.Size)
	}

	return value
}

// Returns the mask of all bits not covered by any field. Zero for fieldless registers.
func (r *Register) UnusedMask() uint64 {
	if !r.HasFields() {
		return 0
	}

	used := utils.Reduce(r.fields, func(f FieldDescriptor, mask uint64) uint64 { return mask | f.Mask() })
	return utils.AllOnes[uint64](r.width) &^ used
}

func (r *Register) clone() Register {
	result := *r
	result.fields = r.Fields()
	return result
}

func (r *Register) String() string {
	return fmt.Sprintf("%v (%v bits, %v)", r.name, r.width, r.access)
}

// Returns full documentation for the register, including its bit layout
func (r *Register) Documentation(leftpad int) (string, error) {
	var builder strings.Builder
	leftpadStr := strings.Repeat(" ", leftpad)

	builder.WriteString(leftpadStr)
	builder.WriteString(fmt.Sprintf("%v\n", r))

	if len(r.description) > 0 {
		builder.WriteString(leftpadStr)
		builder.WriteString(fmt.Sprintf("  %v\n", r.description))
	}

	builder.WriteString(leftpadStr)
	builder.WriteString(fmt.Sprintf("  reset value: %v\n\n", utils.FormatUintHex(r.ResetValue(), utils.HexDigits(r.width))))

	layoutFields := []utils.LayoutField{{Name: r.name, Begin: 0, Width: r.width}}

	if r.HasFields() {
		layoutFields = utils.Map(r.fields, func(f FieldDescriptor) utils.LayoutField {
			return utils.LayoutField{Name: f.Name, Begin: f.Offset, Width: f.Size}
		})
	}

	layout, err := utils.DrawLayout(layoutFields, r.width, "bits", utils.LayoutDirection_RightToLeft, leftpad+2)
	if err != nil {
		return "", fmt.Errorf("error drawing layout of register '%v': %w", r.name, err)
	}

	builder.WriteString(layout)

	for _, field := range r.fields {
		builder.WriteString("\n")
		builder.WriteString(leftpadStr)
		builder.WriteString(fmt.Sprintf("  %v: reset %v", field, field.Reset))

		if field.Pulse {
			builder.WriteString(", pulse")
		}

		if len(field.Description) > 0 {
			builder.WriteString(fmt.Sprintf(", %v", field.Description))
		}

		builder.WriteString("\n")

		for _, value := range field.Values {
			builder.WriteString(leftpadStr)
			builder.WriteString(fmt.Sprintf("    %v: %v\n", utils.FormatUintBinary(value.Value, field.Size), value.Description))
		}
	}

	return builder.String(), nil
}
