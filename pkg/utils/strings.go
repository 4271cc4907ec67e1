package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Formats an uint value into a fixed width binary string of n bits
func FormatUintBinary(value uint64, bits int) string {
	return fmt.Sprintf("%0*b", bits, value)
}

// Formats an uint value into an fixed width hex string of n characters
func FormatUintHex(value uint64, digits int) string {
	return fmt.Sprintf("0x%0*x", digits, value)
}

// Returns the number of hex digits needed to print a value of the given bit width
func HexDigits(bits int) int {
	return (bits + 3) / 4
}

// Returns an string containing all formatted sequence items separated by a given separator
func FormatSlice[T any](input []T, separator string) string {
	var builder strings.Builder

	for i, value := range input {
		builder.WriteString(fmt.Sprint(value))

		if i < len(input)-1 {
			builder.WriteString(separator)
		}
	}

	return builder.String()
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Returns true if name is usable as a C identifier
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Joins the non empty parts with underscores and uppercases the result (lms7002m, control -> LMS7002M_CONTROL)
func Symbol(parts ...string) string {
	return strings.ToUpper(strings.Join(Filter(parts, func(part string) bool { return len(part) > 0 }), "_"))
}

// Like Symbol() but lowercase, for C function names
func LowerSymbol(parts ...string) string {
	return strings.ToLower(Symbol(parts...))
}
