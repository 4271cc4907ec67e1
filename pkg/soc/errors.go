package soc

import "errors"

var (
	ErrInvalidSoC            = errors.New("invalid soc")
	ErrDuplicatePeripheral   = errors.New("duplicate peripheral")
	ErrUnknownPeripheral     = errors.New("unknown peripheral")
	ErrOverlappingPeripheral = errors.New("overlapping peripheral")
	ErrInvalidMemoryRegion   = errors.New("invalid memory region")
	ErrInvalidConstant       = errors.New("invalid constant")
	ErrDuplicateConstant     = errors.New("duplicate constant")
)
