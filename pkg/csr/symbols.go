package csr

import (
	"github.com/Manu343726/csrgen/pkg/utils"
)

// Suffixes of the C macros generated for peripherals, registers and fields
const (
	SymbolSuffixBase       = "_BASE"
	SymbolSuffixAddress    = "_ADDR"
	SymbolSuffixSize       = "_SIZE"
	SymbolSuffixResetValue = "_RESET_VALUE"
	SymbolSuffixOffset     = "_OFFSET"
	SymbolSuffixMask       = "_MASK"
)

// Returns the C macro names generated for a register of the given peripheral.
// A header prefix is prepended to the peripheral name, so it does not change which names clash.
func RegisterSymbols(peripheral string, r *Register) []string {
	registerSymbol := utils.Symbol(peripheral, r.name)
	symbols := []string{
		registerSymbol + SymbolSuffixAddress,
		registerSymbol + SymbolSuffixSize,
		registerSymbol + SymbolSuffixResetValue,
	}

	for _, field := range r.fields {
		fieldSymbol := utils.Symbol(peripheral, r.name, field.Name)
		symbols = append(symbols,
			fieldSymbol+SymbolSuffixOffset,
			fieldSymbol+SymbolSuffixSize,
			fieldSymbol+SymbolSuffixMask,
		)
	}

	return symbols
}

// Returns the C macro names generated for the map: its base and the symbols of every register
func (m *RegisterMap) Symbols() []string {
	symbols := []string{utils.Symbol(m.name) + SymbolSuffixBase}

	for i := range m.registers {
		symbols = append(symbols, RegisterSymbols(m.name, &m.registers[i])...)
	}

	return symbols
}

// Maps each symbol generated by the map registers to the name of the register generating it
func (m *RegisterMap) symbolOwners() map[string]string {
	owners := make(map[string]string)

	for i := range m.registers {
		for _, symbol := range RegisterSymbols(m.name, &m.registers[i]) {
			owners[symbol] = m.registers[i].name
		}
	}

	return owners
}
