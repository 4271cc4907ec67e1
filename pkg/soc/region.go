package soc

import (
	"fmt"

	"github.com/Manu343726/csrgen/pkg/utils"
)

// Kind of memory mapped through a memory region
type RegionKind uint

const (
	RegionKind_RAM RegionKind = iota
	RegionKind_ROM
	// Peripheral control/status registers
	RegionKind_CSR
	RegionKind_Other

	TOTAL_REGION_KINDS
)

func (k RegionKind) String() string {
	switch k {
	case RegionKind_RAM:
		return "ram"
	case RegionKind_ROM:
		return "rom"
	case RegionKind_CSR:
		return "csr"
	case RegionKind_Other:
		return "other"
	}

	panic("unreachable")
}

// Returns true if accesses to the region have side effects and must not be cached
func (k RegionKind) IsIO() bool {
	return k == RegionKind_CSR || k == RegionKind_Other
}

// Returns the region kind with the given String() representation
func ParseRegionKind(str string) (RegionKind, error) {
	for kind := RegionKind(0); kind < TOTAL_REGION_KINDS; kind++ {
		if kind.String() == str {
			return kind, nil
		}
	}

	return 0, utils.MakeError(ErrInvalidMemoryRegion, "unknown region kind '%v', expected one of ram, rom, csr, other", str)
}

// A named range of the SoC address space
type MemoryRegion struct {
	Name        string
	BaseAddress uint64
	Size        uint64
	Kind        RegionKind
}

// Returns the first address past the region
func (r MemoryRegion) End() uint64 {
	return r.BaseAddress + r.Size
}

// Returns true if both regions share at least one address
func (r MemoryRegion) Overlaps(other MemoryRegion) bool {
	return r.BaseAddress < other.End() && other.BaseAddress < r.End()
}

// Returns true if the address falls inside the region
func (r MemoryRegion) Contains(address uint64) bool {
	return address >= r.BaseAddress && address < r.End()
}

func (r MemoryRegion) String() string {
	return fmt.Sprintf("%v [%v, %v) %v", r.Name, utils.FormatUintHex(r.BaseAddress, 8), utils.FormatUintHex(r.End(), 8), r.Kind)
}

func (r MemoryRegion) validate() error {
	if !utils.IsIdentifier(r.Name) {
		return utils.MakeError(ErrInvalidMemoryRegion, "'%v' is not a valid region name", r.Name)
	}

	if r.Size == 0 {
		return utils.MakeError(ErrInvalidMemoryRegion, "region '%v' is empty", r.Name)
	}

	if r.End() < r.BaseAddress {
		return utils.MakeError(ErrInvalidMemoryRegion, "region '%v' wraps around the address space", r.Name)
	}

	if r.Kind >= TOTAL_REGION_KINDS {
		return utils.MakeError(ErrInvalidMemoryRegion, "region '%v' has an invalid kind (%d)", r.Name, uint(r.Kind))
	}

	return nil
}
