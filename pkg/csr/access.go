package csr

import (
	"github.com/Manu343726/csrgen/pkg/utils"
)

// Declares how software is allowed to access a register
type AccessMode uint

const (
	// Status register, written by the hardware only
	AccessMode_ReadOnly AccessMode = iota
	// Command register, reads return undefined data
	AccessMode_WriteOnly
	// Read/write register
	AccessMode_ReadWrite
	// Storage register: software writes it and reads back the stored value
	AccessMode_Storage

	TOTAL_ACCESS_MODES
)

func (a AccessMode) String() string {
	switch a {
	case AccessMode_ReadOnly:
		return "ro"
	case AccessMode_WriteOnly:
		return "wo"
	case AccessMode_ReadWrite:
		return "rw"
	case AccessMode_Storage:
		return "storage"
	}

	panic("unreachable")
}

// Returns true if software can read the register
func (a AccessMode) Readable() bool {
	return a != AccessMode_WriteOnly
}

// Returns true if software can write the register
func (a AccessMode) Writable() bool {
	return a != AccessMode_ReadOnly
}

// Returns true for status registers (read-only from software)
func (a AccessMode) IsStatus() bool {
	return a == AccessMode_ReadOnly
}

// Returns the access mode with the given String() representation
func ParseAccessMode(str string) (AccessMode, error) {
	for mode := AccessMode(0); mode < TOTAL_ACCESS_MODES; mode++ {
		if mode.String() == str {
			return mode, nil
		}
	}

	return 0, utils.MakeError(ErrInvalidRegister, "unknown access mode '%v', expected one of ro, wo, rw, storage", str)
}
