package csr

import (
	"fmt"
	"strings"

	"github.com/Manu343726/csrgen/pkg/utils"
)

// Default address increment between consecutive registers: one 32 bit bus word
const DefaultStride = 4

// A register together with the address assigned to it by its map
type RegisterEntry struct {
	Register Register
	Address  uint64
}

// Ordered set of registers of a peripheral, exposed at a base address.
// The register at index i lives at BaseAddress() + i*Stride().
type RegisterMap struct {
	name        string
	description string
	baseAddress uint64
	stride      uint64
	registers   []Register
}

type RegisterMapOption func(*RegisterMap)

// Sets the address increment between consecutive registers
func WithStride(stride uint64) RegisterMapOption {
	return func(m *RegisterMap) {
		m.stride = stride
	}
}

// Sets the peripheral description (for documentation)
func WithMapDescription(description string) RegisterMapOption {
	return func(m *RegisterMap) {
		m.description = description
	}
}

// Creates an empty register map for the given peripheral
func NewRegisterMap(name string, baseAddress uint64, options ...RegisterMapOption) (*RegisterMap, error) {
	if !utils.IsIdentifier(name) {
		return nil, utils.MakeError(ErrInvalidRegisterMap, "'%v' is not a valid peripheral name", name)
	}

	m := &RegisterMap{
		name:        name,
		baseAddress: baseAddress,
		stride:      DefaultStride,
	}

	for _, option := range options {
		option(m)
	}

	if m.stride == 0 {
		return nil, utils.MakeError(ErrInvalidRegisterMap, "register map '%v' has zero stride", name)
	}

	return m, nil
}

func (m *RegisterMap) Name() string {
	return m.name
}

func (m *RegisterMap) Description() string {
	return m.description
}

func (m *RegisterMap) BaseAddress() uint64 {
	return m.baseAddress
}

func (m *RegisterMap) Stride() uint64 {
	return m.stride
}

// Returns the number of registers in the map
func (m *RegisterMap) TotalRegisters() int {
	return len(m.registers)
}

// Returns the address span used by the map registers, in bytes
func (m *RegisterMap) Size() uint64 {
	return uint64(len(m.registers)) * m.stride
}

func (m *RegisterMap) address(index int) uint64 {
	return m.baseAddress + uint64(index)*m.stride
}

// Appends a copy of the register to the map and returns its assigned address.
// Changes made to the register after this call are not seen by the map.
// Fails with ErrDuplicateRegisterName if the register name, or any C symbol generated
// for it (see RegisterSymbols()), is already used by another register of the map.
func (m *RegisterMap) AddRegister(register *Register) (uint64, error) {
	if register == nil {
		return 0, utils.MakeError(ErrInvalidRegister, "nil register added to map '%v'", m.name)
	}

	if uint64(register.Width()) > m.stride*utils.BitsPerByte {
		return 0, utils.MakeError(ErrInvalidRegister, "%v bits register '%v' does not fit the %v bytes stride of map '%v'", register.Width(), register.Name(), m.stride, m.name)
	}

	for _, existing := range m.registers {
		if strings.EqualFold(existing.Name(), register.Name()) {
			return 0, utils.MakeError(ErrDuplicateRegisterName, "map '%v' already has a register named '%v'", m.name, existing.Name())
		}
	}

	owners := m.symbolOwners()
	for _, symbol := range RegisterSymbols(m.name, register) {
		if owner, clash := owners[symbol]; clash {
			return 0, utils.MakeError(ErrDuplicateRegisterName, "register '%v' of map '%v' generates symbol %v, already generated by register '%v'", register.Name(), m.name, symbol, owner)
		}
	}

	m.registers = append(m.registers, register.clone())
	return m.address(len(m.registers) - 1), nil
}

// Returns a copy of the named register and its address. Names are matched ignoring case
func (m *RegisterMap) Lookup(name string) (Register, uint64, error) {
	index := utils.IndexOf(m.registers, func(r Register) bool { return strings.EqualFold(r.Name(), name) })

	if index < 0 {
		return Register{}, 0, utils.MakeError(ErrUnknownRegister, "'%v' not found in register map '%v'", name, m.name)
	}

	return m.registers[index].clone(), m.address(index), nil
}

// Returns copies of all the registers with their addresses, in declaration order
func (m *RegisterMap) Registers() []RegisterEntry {
	entries := make([]RegisterEntry, len(m.registers))

	for i := range m.registers {
		entries[i] = RegisterEntry{
			Register: m.registers[i].clone(),
			Address:  m.address(i),
		}
	}

	return entries
}

// Returns a deep copy of the map
func (m *RegisterMap) Clone() *RegisterMap {
	result := *m
	result.registers = utils.Map(m.registers, func(r Register) Register { return r.clone() })
	return &result
}

func (m *RegisterMap) String() string {
	return fmt.Sprintf("%v @ %v (%v registers)", m.name, utils.FormatUintHex(m.baseAddress, 8), len(m.registers))
}

// Returns the documentation of all registers in the map
func (m *RegisterMap) Documentation(leftpad int) (string, error) {
	var builder strings.Builder
	leftpadStr := strings.Repeat(" ", leftpad)

	builder.WriteString(leftpadStr)
	builder.WriteString(fmt.Sprintf("%v\n", m))

	if len(m.description) > 0 {
		builder.WriteString(leftpadStr)
		builder.WriteString(fmt.Sprintf("  %v\n", m.description))
	}

	for _, entry := range m.Registers() {
		doc, err := entry.Register.Documentation(leftpad + 4)
		if err != nil {
			return "", err
		}

		builder.WriteString("\n")
		builder.WriteString(leftpadStr)
		builder.WriteString(fmt.Sprintf("  %v:\n", utils.FormatUintHex(entry.Address, 8)))
		builder.WriteString(doc)
	}

	return builder.String(), nil
}
