package xtrx

import (
	"fmt"
	"math/bits"

	"github.com/Manu343726/csrgen/pkg/csr"
)

// SoC controller: soft reset, scratch register and bus error counter
func buildCtrl(m *csr.RegisterMap) error {
	return addRegisters(m,
		storage("reset", 2, "",
			pulse("soc_rst", 0, "Write 1 to this register to reset the full SoC (pulse reset)"),
			field("cpu_rst", 1, 1, 0, "Write 1 to this register to reset the CPU(s) of the SoC (hold reset)"),
		),
		storage("scratch", 32, "Use this register as a scratch space to verify that software read/write accesses to the bus are working correctly",
			field("value", 0, 32, 0x12345678, ""),
		),
		status("bus_errors", 32, "Total number of bus errors (timeouts) since start"),
	)
}

func buildPCIePHY(m *csr.RegisterMap) error {
	return addRegisters(m,
		status("phy_link_status", 10, "PCIe link status",
			field("status", 0, 1, 0, "Link up"),
			field("rate", 1, 1, 0, "Link rate, 0: 2.5 Gb/s, 1: 5 Gb/s"),
			field("width", 2, 2, 0, "Negotiated link width, 0: x1, 1: x2, 2: x4, 3: x8"),
			field("ltssm", 4, 6, 0, "LTSSM state"),
		),
		status("phy_msi_enable", 1, "MSI enabled by the host"),
		status("phy_msix_enable", 1, "MSI-X enabled by the host"),
		status("phy_bus_master_enable", 1, "Bus mastering enabled by the host"),
		status("phy_max_request_size", 16, "Maximum request size negotiated with the host, in bytes"),
		status("phy_max_payload_size", 16, "Maximum payload size negotiated with the host, in bytes"),
	)
}

func buildPCIeMSI(m *csr.RegisterMap) error {
	return addRegisters(m,
		storage("enable", 32, "MSI vector enables, one bit per interrupt source"),
		command("clear", 32, "MSI vector clear, write 1 to acknowledge an interrupt source"),
		status("vector", 32, "Pending MSI vectors"),
	)
}

// One direction (reader or writer) of a scatter-gather DMA channel
func dmaDirection(direction string) []register {
	return []register{
		storage(direction+"_enable", 2, fmt.Sprintf("DMA %v control", direction),
			field("enable", 0, 1, 0, "Enable the DMA"),
			field("idle", 1, 1, 0, "Hold the DMA idle without flushing the table"),
		),
		storage(direction+"_table_value", 32, "Descriptor length and settings, written before the address",
			field("length", 0, 24, 0, "Transfer length in bytes"),
			field("irq_disable", 24, 1, 0, "Do not raise an interrupt when the descriptor completes"),
			field("last_disable", 25, 1, 0, "Do not flag the descriptor as last of the transfer"),
		),
		storage(direction+"_table_we", 32, "Descriptor address, writing it pushes the descriptor to the table"),
		storage(direction+"_table_loop_prog_n", 1, "Table loop mode: 0 programs the table, 1 loops over it"),
		status(direction+"_table_loop_status", 32, "Progress of the table loop",
			field("index", 0, 16, 0, "Index of the last descriptor processed"),
			field("count", 16, 16, 0, "Number of table loops completed"),
		),
		status(direction+"_table_level", 9, "Number of descriptors in the table"),
		command(direction+"_table_reset", 1, "Flush the descriptor table",
			pulse("reset", 0, "Write 1 to flush the table"),
		),
	}
}

func buildPCIeDMA(bufferingDepth int) func(m *csr.RegisterMap) error {
	return func(m *csr.RegisterMap) error {
		registers := append(dmaDirection("writer"), dmaDirection("reader")...)
		registers = append(registers, storage("loopback_enable", 1, "Loop the DMA reader stream back into the DMA writer"))

		for _, direction := range []string{"reader", "writer"} {
			registers = append(registers,
				storage(fmt.Sprintf("buffering_%v_fifo_control", direction), 32, fmt.Sprintf("DMA %v FIFO control", direction),
					field("depth", 0, 24, uint64(bufferingDepth), "FIFO depth in bytes"),
					field("scratch", 24, 4, 0, ""),
					field("level_mode", 31, 1, 0, "0: report the current level, 1: report the maximum level"),
				),
				status(fmt.Sprintf("buffering_%v_fifo_status", direction), 32, fmt.Sprintf("DMA %v FIFO status", direction),
					field("level", 0, 24, 0, "FIFO level in bytes"),
				),
			)
		}

		return addRegisters(m, registers...)
	}
}

func buildICAP(m *csr.RegisterMap) error {
	return addRegisters(m,
		storage("addr", 5, "ICAP register address"),
		storage("data", 32, "ICAP register data"),
		command("write", 1, "ICAP write",
			pulse("write", 0, "Write 1 to write data to the ICAP register at addr"),
		),
		status("done", 1, "ICAP operation done"),
		command("read", 1, "ICAP read",
			pulse("read", 0, "Write 1 to read the ICAP register at addr into data"),
		),
		command("reload", 1, "FPGA reload",
			pulse("reload", 0, "Write 1 to reload the FPGA from flash"),
		),
	)
}

func buildFlashCSN(m *csr.RegisterMap) error {
	return addRegisters(m,
		storage("out", 1, "SPI flash chip select, active low"),
	)
}

func buildFlash(m *csr.RegisterMap) error {
	return addRegisters(m,
		storage("bitbang", 4, "SPI flash bit-bang control",
			field("mosi", 0, 1, 0, "Output value for the MOSI pin"),
			field("clk", 1, 1, 0, "Output value for the SPI clock"),
			field("cs_n", 2, 1, 0, "Output value for the chip select"),
			csr.FieldDescriptor{Name: "dir", Offset: 3, Size: 1, Description: "MOSI pin direction", Values: values(
				"MOSI is an output",
				"MOSI is an input",
			)},
		),
		status("miso", 1, "Incoming value of the MISO signal"),
		storage("bitbang_en", 1, "Bit-bang enable, 0: hardware SPI core drives the pins, 1: bitbang register does"),
	)
}

func buildLeds(count int) func(m *csr.RegisterMap) error {
	return func(m *csr.RegisterMap) error {
		return addRegisters(m,
			storage("out", count, "Led output(s) control"),
		)
	}
}

func buildLMS7002M(m *csr.RegisterMap) error {
	return addRegisters(m,
		storage("control", 32, "LMS7002M control lines",
			csr.FieldDescriptor{Name: "reset", Offset: 0, Size: 1, Reset: 1, Values: values(
				"LMS7002M Normal Operation.",
				"LMS7002M Reset.",
			)},
			csr.FieldDescriptor{Name: "power_down", Offset: 1, Size: 1, Reset: 1, Values: values(
				"LMS7002M Normal Operation.",
				"LMS7002M Power-Down.",
			)},
			csr.FieldDescriptor{Name: "tx_enable", Offset: 8, Size: 1, Values: values(
				"LMS7002M TX Disabled.",
				"LMS7002M TX Enabled.",
			)},
			csr.FieldDescriptor{Name: "rx_enable", Offset: 9, Size: 1, Values: values(
				"LMS7002M RX Disabled.",
				"LMS7002M RX Enabled.",
			)},
		),
		storage("spi_control", 16, "SPI control",
			pulse("start", 0, "SPI Xfer Start (Write 1 to start Xfer)"),
			field("length", 8, 8, 0, "SPI Xfer Length (in bits)"),
		),
		status("spi_status", 1, "SPI status",
			field("done", 0, 1, 0, "SPI Xfer Done (when read as 1)"),
		),
		storage("spi_mosi", 32, "SPI MOSI data (MSB-first serialization)"),
		status("spi_miso", 32, "SPI MISO data (MSB-first de-serialization)"),
		storage("spi_cs", 17, "SPI chip select",
			field("sel", 0, 1, 1, "Write 1 to corresponding bit to enable Xfer for chip"),
			csr.FieldDescriptor{Name: "mode", Offset: 16, Size: 1, Values: values(
				"Normal operation (CS handled by Core).",
				"Manual operation (CS handled by User, direct recopy of sel).",
			)},
		),
		storage("spi_loopback", 1, "SPI loopback",
			csr.FieldDescriptor{Name: "mode", Offset: 0, Size: 1, Values: values(
				"Normal operation.",
				"Loopback operation (MOSI to MISO).",
			)},
		),
	)
}

// Power and IO voltage control lines. Pin polarities are not confirmed on hardware.
func buildGPIO(m *csr.RegisterMap) error {
	return addRegisters(m,
		storage("control", 32, "GPIO control lines",
			field("iovcc_sel", 0, 1, 0, "IO voltage select"),
			field("en_smsigio", 1, 1, 0, "Enable the SIM/signal IO level shifters"),
			field("pwrdwn_n", 2, 1, 0, "Power down, active low"),
		),
	)
}

func buildPMIC(m *csr.RegisterMap) error {
	return addRegisters(m,
		storage("control", 32, "Reference clock selection",
			csr.FieldDescriptor{Name: "sel", Offset: 0, Size: 1, Values: values(
				"Use VCTCXO Clk.",
				"Use External Clk.",
			)},
			csr.FieldDescriptor{Name: "en", Offset: 1, Size: 1, Reset: 1, Values: values(
				"Disable VCTCXO",
				"Enable VCTCXO",
			)},
		),
	)
}

// Logic analyzer over the LMS7002M control and SPI lines
var analyzerSignals = []string{"rst_n", "pwrdwn_n", "rxen", "txen", "clk", "cs_n", "mosi", "miso"}

func buildAnalyzer(depth int) func(m *csr.RegisterMap) error {
	dataWidth := len(analyzerSignals)
	depthWidth := bits.Len(uint(depth))

	return func(m *csr.RegisterMap) error {
		return addRegisters(m,
			storage("mux_value", 1, "Signal group selection"),
			storage("trigger_enable", 1, "Arm the trigger"),
			status("trigger_done", 1, "Trigger condition hit"),
			command("trigger_mem_write", 1, "Push trigger mask/value to the trigger memory",
				pulse("write", 0, "Write 1 to push mem_mask and mem_value"),
			),
			storage("trigger_mem_mask", dataWidth, "Trigger mask, one bit per signal"),
			storage("trigger_mem_value", dataWidth, "Trigger value, one bit per signal"),
			status("trigger_mem_full", 1, "Trigger memory full"),
			storage("subsampler_value", 16, "Subsampling ratio minus one"),
			storage("storage_enable", 1, "Start the capture"),
			status("storage_done", 1, "Capture done"),
			storage("storage_length", depthWidth, "Number of samples to capture"),
			storage("storage_offset", depthWidth, "Samples captured before the trigger"),
			status("storage_mem_level", depthWidth, "Samples available in the capture memory"),
			status("storage_mem_data", dataWidth, "Capture memory data, reading it pops a sample"),
		)
	}
}
