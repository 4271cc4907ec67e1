package soc

import (
	"fmt"
	"strings"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/utils"
)

const (
	// Default base address of the CSR bus
	DefaultCSRBase = 0x0

	// Default address space reserved for each CSR peripheral
	DefaultCSRPaging = 0x800
)

// Describes a System on Chip: its CSR peripherals, memory regions and constants.
// Everything is kept in insertion order so exported artifacts are deterministic.
type SoC struct {
	name         string
	csrBase      uint64
	csrPaging    uint64
	csrLocations int
	maps         []*csr.RegisterMap
	regions      []MemoryRegion
	constants    []Constant
}

type Option func(*SoC)

// Sets the base address of the first CSR page
func WithCSRBase(base uint64) Option {
	return func(s *SoC) {
		s.csrBase = base
	}
}

// Sets the size of the address space page reserved for each CSR peripheral
func WithCSRPaging(paging uint64) Option {
	return func(s *SoC) {
		s.csrPaging = paging
	}
}

// Creates an empty SoC
func New(name string, options ...Option) (*SoC, error) {
	if !utils.IsIdentifier(name) {
		return nil, utils.MakeError(ErrInvalidSoC, "'%v' is not a valid soc name", name)
	}

	s := &SoC{
		name:      name,
		csrBase:   DefaultCSRBase,
		csrPaging: DefaultCSRPaging,
	}

	for _, option := range options {
		option(s)
	}

	if s.csrPaging == 0 {
		return nil, utils.MakeError(ErrInvalidSoC, "soc '%v' has zero csr paging", name)
	}

	return s, nil
}

func (s *SoC) Name() string {
	return s.name
}

func (s *SoC) CSRBase() uint64 {
	return s.csrBase
}

func (s *SoC) CSRPaging() uint64 {
	return s.csrPaging
}

func mapRegion(m *csr.RegisterMap) MemoryRegion {
	return MemoryRegion{Name: m.Name(), BaseAddress: m.BaseAddress(), Size: m.Size(), Kind: RegionKind_CSR}
}

// Adds a copy of a register map to the SoC. Its address range must not overlap other peripherals,
// and the C symbols it generates must not clash with theirs.
func (s *SoC) AddRegisterMap(m *csr.RegisterMap) error {
	if m == nil {
		return utils.MakeError(csr.ErrInvalidRegisterMap, "nil register map added to soc '%v'", s.name)
	}

	region := mapRegion(m)

	for _, existing := range s.maps {
		if strings.EqualFold(existing.Name(), m.Name()) {
			return utils.MakeError(ErrDuplicatePeripheral, "soc '%v' already has a peripheral named '%v'", s.name, existing.Name())
		}

		if region.Size > 0 && region.Overlaps(mapRegion(existing)) {
			return utils.MakeError(ErrOverlappingPeripheral, "peripheral %v overlaps peripheral %v", m, existing)
		}
	}

	owners := make(map[string]string)
	for _, existing := range s.maps {
		for _, symbol := range existing.Symbols() {
			owners[symbol] = existing.Name()
		}
	}

	for _, symbol := range m.Symbols() {
		if owner, clash := owners[symbol]; clash {
			return utils.MakeError(ErrDuplicatePeripheral, "peripheral '%v' generates symbol %v, already generated by peripheral '%v'", m.Name(), symbol, owner)
		}
	}

	s.maps = append(s.maps, m.Clone())
	return nil
}

// Allocates the next free CSR page to a new peripheral, lets build populate its
// registers and adds the result to the SoC. The peripheral must fit in one page.
func (s *SoC) AddCSRPeripheral(name string, build func(m *csr.RegisterMap) error, options ...csr.RegisterMapOption) (*csr.RegisterMap, error) {
	base := s.csrBase + uint64(s.csrLocations)*s.csrPaging

	m, err := csr.NewRegisterMap(name, base, options...)
	if err != nil {
		return nil, err
	}

	if build != nil {
		if err := build(m); err != nil {
			return nil, fmt.Errorf("error building peripheral '%v': %w", name, err)
		}
	}

	if m.Size() > s.csrPaging {
		return nil, utils.MakeError(ErrOverlappingPeripheral, "peripheral %v takes %v bytes, more than the %v bytes csr paging", m, m.Size(), s.csrPaging)
	}

	if err := s.AddRegisterMap(m); err != nil {
		return nil, err
	}

	s.csrLocations++
	return m.Clone(), nil
}

// Returns copies of all the SoC register maps, in insertion order
func (s *SoC) RegisterMaps() []*csr.RegisterMap {
	return utils.Map(s.maps, (*csr.RegisterMap).Clone)
}

// Returns a copy of the named register map. Names are matched ignoring case
func (s *SoC) RegisterMap(name string) (*csr.RegisterMap, error) {
	index := utils.IndexOf(s.maps, func(m *csr.RegisterMap) bool { return strings.EqualFold(m.Name(), name) })

	if index < 0 {
		names := utils.Map(s.maps, (*csr.RegisterMap).Name)
		return nil, utils.MakeError(ErrUnknownPeripheral, "soc '%v' has no peripheral '%v' (available: %v)", s.name, name, utils.FormatSlice(names, ", "))
	}

	return s.maps[index].Clone(), nil
}

// Adds a memory region. Regions must not overlap each other.
func (s *SoC) AddMemoryRegion(region MemoryRegion) error {
	if err := region.validate(); err != nil {
		return err
	}

	for _, existing := range s.regions {
		if strings.EqualFold(existing.Name, region.Name) {
			return utils.MakeError(ErrInvalidMemoryRegion, "soc '%v' already has a region named '%v'", s.name, existing.Name)
		}

		if existing.Overlaps(region) {
			return utils.MakeError(ErrInvalidMemoryRegion, "region %v overlaps region %v", region, existing)
		}
	}

	s.regions = append(s.regions, region)
	return nil
}

// Returns the memory regions, in insertion order
func (s *SoC) MemoryRegions() []MemoryRegion {
	return append([]MemoryRegion(nil), s.regions...)
}

func (s *SoC) addConstant(c Constant) error {
	if !utils.IsIdentifier(c.Name) {
		return utils.MakeError(ErrInvalidConstant, "'%v' is not a valid constant name", c.Name)
	}

	for _, existing := range s.constants {
		if strings.EqualFold(existing.Name, c.Name) {
			return utils.MakeError(ErrDuplicateConstant, "soc '%v' already has a constant named '%v'", s.name, existing.Name)
		}
	}

	s.constants = append(s.constants, c)
	return nil
}

// Adds an integer constant
func (s *SoC) AddConstant(name string, value int64) error {
	return s.addConstant(Constant{Name: name, Value: value})
}

// Adds a valueless constant, exported as a bare #define
func (s *SoC) AddFlag(name string) error {
	return s.addConstant(Constant{Name: name, IsFlag: true})
}

// Returns the constants, in insertion order
func (s *SoC) Constants() []Constant {
	return append([]Constant(nil), s.constants...)
}

// Returns the named constant, if any
func (s *SoC) Constant(name string) (Constant, bool) {
	index := utils.IndexOf(s.constants, func(c Constant) bool { return c.Name == name })

	if index < 0 {
		return Constant{}, false
	}

	return s.constants[index], true
}

// Returns the peripheral whose registers contain the given address
func (s *SoC) PeripheralAt(address uint64) (*csr.RegisterMap, bool) {
	for _, m := range s.maps {
		if mapRegion(m).Contains(address) {
			return m.Clone(), true
		}
	}

	return nil, false
}

func (s *SoC) String() string {
	return fmt.Sprintf("%v (%v peripherals, %v regions, %v constants)", s.name, len(s.maps), len(s.regions), len(s.constants))
}

// Returns the documentation of the whole SoC
func (s *SoC) Documentation(leftpad int) (string, error) {
	var builder strings.Builder
	leftpadStr := strings.Repeat(" ", leftpad)

	builder.WriteString(leftpadStr)
	builder.WriteString(fmt.Sprintf("%v\n", s))

	if len(s.regions) > 0 {
		builder.WriteString("\n")
		builder.WriteString(leftpadStr)
		builder.WriteString("memory regions:\n")

		for _, region := range s.regions {
			builder.WriteString(leftpadStr)
			builder.WriteString(fmt.Sprintf("  %v\n", region))
		}
	}

	if len(s.constants) > 0 {
		builder.WriteString("\n")
		builder.WriteString(leftpadStr)
		builder.WriteString("constants:\n")

		for _, constant := range s.constants {
			builder.WriteString(leftpadStr)
			builder.WriteString(fmt.Sprintf("  %v\n", constant))
		}
	}

	for _, m := range s.maps {
		doc, err := m.Documentation(leftpad + 2)
		if err != nil {
			return "", err
		}

		builder.WriteString("\n")
		builder.WriteString(doc)
	}

	return builder.String(), nil
}
