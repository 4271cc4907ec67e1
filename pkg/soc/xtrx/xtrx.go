// Package xtrx describes the CSR contract of the Fairwaves XTRX gateware
package xtrx

import (
	"fmt"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/Manu343726/csrgen/pkg/utils"
)

const (
	Name = "xtrx"

	CSRDataWidth = 32
	BusDataWidth = 32

	// PCIe BAR0 exposes the whole CSR space
	PCIeBAR0Size = 0x20000

	DMAChannels       = 1
	DMAAddrWidth      = 32
	DMABufferingDepth = 8192

	UserLeds = 2

	LMS7002MSPIClockFrequency = 1_000_000
	LMS7002MSPIDataWidth      = 32
)

type peripheral struct {
	name        string
	description string
	enabled     bool
	build       func(m *csr.RegisterMap) error
}

func (o Options) peripherals() []peripheral {
	return []peripheral{
		{"ctrl", "SoC controller", true, buildCtrl},
		{"pcie_phy", "PCIe PHY link status", o.WithPCIe, buildPCIePHY},
		{"pcie_msi", "PCIe MSI interrupt controller", o.WithPCIe, buildPCIeMSI},
		{"pcie_dma0", "PCIe DMA channel 0 with buffering and loopback", o.WithPCIe, buildPCIeDMA(DMABufferingDepth)},
		{"icap", "Internal configuration access port, reloads the FPGA over PCIe", o.WithPCIe, buildICAP},
		{"flash_cs_n", "SPI flash chip select", o.WithPCIe, buildFlashCSN},
		{"flash", "SPI flash bit-bang interface, updates the bitstream over PCIe", o.WithPCIe, buildFlash},
		{"leds", "User led chaser", o.WithLedChaser, buildLeds(UserLeds)},
		{"lms7002m", "LMS7002M transceiver control lines and SPI master", true, buildLMS7002M},
		{"gpio", "Power and IO voltage control lines", true, buildGPIO},
		{"pmic", "PMIC reference clock selector", true, buildPMIC},
		{"analyzer", "Logic analyzer over the LMS7002M lines", o.WithAnalyzer, buildAnalyzer(o.AnalyzerDepth)},
	}
}

type constant struct {
	name    string
	value   int64
	enabled bool
}

func (o Options) constants() []constant {
	return []constant{
		{"CONFIG_CLOCK_FREQUENCY", o.SysClkFreq, true},
		{"CONFIG_CSR_DATA_WIDTH", CSRDataWidth, true},
		{"CONFIG_CSR_ALIGNMENT", int64(utils.Bits(csr.DefaultStride)), true},
		{"CONFIG_BUS_DATA_WIDTH", BusDataWidth, true},
		{"CONFIG_CSR_PAGING", soc.DefaultCSRPaging, true},
		{"PCIE_LANES", int64(o.PCIeLanes), o.WithPCIe},
		{"DMA_CHANNELS", DMAChannels, o.WithPCIe},
		{"DMA_ADDR_WIDTH", DMAAddrWidth, o.WithPCIe},
		{"DMA_BUFFERING_DEPTH", DMABufferingDepth, o.WithPCIe},
		{"LMS7002M_SPI_CLK_FREQ", LMS7002MSPIClockFrequency, true},
		{"LMS7002M_SPI_DATA_WIDTH", LMS7002MSPIDataWidth, true},
		{"ANALYZER_DEPTH", int64(o.AnalyzerDepth), o.WithAnalyzer},
	}
}

func (o Options) flags() []constant {
	return []constant{
		{"CONFIG_HAS_PCIE", 0, o.WithPCIe},
		{"CONFIG_HAS_DMA_LOOPBACK", 0, o.WithPCIe},
		{"CONFIG_HAS_ICAP", 0, o.WithPCIe},
		{"CONFIG_HAS_SPIFLASH", 0, o.WithPCIe},
		{"CONFIG_HAS_LED_CHASER", 0, o.WithLedChaser},
		{"CONFIG_HAS_ANALYZER", 0, o.WithAnalyzer},
	}
}

// Builds the XTRX SoC model for the given options
func New(options Options) (*soc.SoC, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	s, err := soc.New(Name)
	if err != nil {
		return nil, err
	}

	for _, p := range options.peripherals() {
		if !p.enabled {
			continue
		}

		if _, err := s.AddCSRPeripheral(p.name, p.build, csr.WithMapDescription(p.description)); err != nil {
			return nil, fmt.Errorf("error building xtrx soc: %w", err)
		}
	}

	for _, c := range options.constants() {
		if !c.enabled {
			continue
		}

		if err := s.AddConstant(c.name, c.value); err != nil {
			return nil, err
		}
	}

	for _, f := range options.flags() {
		if !f.enabled {
			continue
		}

		if err := s.AddFlag(f.name); err != nil {
			return nil, err
		}
	}

	csrSize := uint64(PCIeBAR0Size)
	if !options.WithPCIe {
		csrSize = uint64(len(s.RegisterMaps())) * s.CSRPaging()
	}

	if err := s.AddMemoryRegion(soc.MemoryRegion{Name: "csr", BaseAddress: s.CSRBase(), Size: csrSize, Kind: soc.RegionKind_CSR}); err != nil {
		return nil, err
	}

	return s, nil
}

// Builds the XTRX SoC with the default options
func Default() (*soc.SoC, error) {
	return New(DefaultOptions())
}
