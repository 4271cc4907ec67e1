package xtrx

import (
	"errors"

	"github.com/Manu343726/csrgen/pkg/utils"
)

var ErrInvalidOptions = errors.New("invalid xtrx options")

// PCIe clock, the system clock when PCIe is enabled
const PCIeClockFrequency = 125_000_000

// Build options of the XTRX SoC
type Options struct {
	SysClkFreq    int64
	WithPCIe      bool
	PCIeLanes     int
	WithLedChaser bool
	WithAnalyzer  bool

	// Samples captured by the analyzer
	AnalyzerDepth int
}

// Returns the options of the default XTRX bring-up gateware
func DefaultOptions() Options {
	return Options{
		SysClkFreq:    PCIeClockFrequency,
		WithPCIe:      true,
		PCIeLanes:     2,
		WithLedChaser: true,
		WithAnalyzer:  true,
		AnalyzerDepth: 512,
	}
}

// Checks the options describe a buildable SoC
func (o Options) Validate() error {
	if o.SysClkFreq <= 0 {
		return utils.MakeError(ErrInvalidOptions, "system clock frequency must be positive, got %v", o.SysClkFreq)
	}

	if o.WithPCIe {
		// The system clock domain is driven by the PCIe core
		if o.SysClkFreq != PCIeClockFrequency {
			return utils.MakeError(ErrInvalidOptions, "PCIe requires a %v Hz system clock, got %v Hz", PCIeClockFrequency, o.SysClkFreq)
		}

		switch o.PCIeLanes {
		case 1, 2, 4:
		default:
			return utils.MakeError(ErrInvalidOptions, "unsupported PCIe lane count %v, expected 1, 2 or 4", o.PCIeLanes)
		}
	}

	if o.WithAnalyzer && o.AnalyzerDepth <= 0 {
		return utils.MakeError(ErrInvalidOptions, "analyzer depth must be positive, got %v", o.AnalyzerDepth)
	}

	return nil
}
