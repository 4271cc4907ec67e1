package utils

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// C syntax highlighting colors
var (
	cKeywordColor      = color.New(color.FgMagenta, color.Bold)
	cTypeColor         = color.New(color.FgCyan)
	cStringColor       = color.New(color.FgGreen)
	cNumberColor       = color.New(color.FgYellow)
	cCommentColor      = color.New(color.FgHiBlack)
	cPreprocessorColor = color.New(color.FgBlue)
	cOperatorColor     = color.New(color.FgRed)
	cFunctionColor     = color.New(color.FgHiYellow)
)

// C keywords found in generated headers and access functions
var cKeywords = map[string]bool{
	"const": true, "extern": true, "inline": true, "return": true,
	"static": true, "struct": true, "volatile": true, "sizeof": true,
	"if": true, "else": true, "for": true, "while": true,
}

// C type keywords
var cTypes = map[string]bool{
	"void": true, "char": true, "short": true, "int": true,
	"long": true, "unsigned": true, "signed": true, "bool": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"size_t": true, "uintptr_t": true,
}

var (
	cStringPattern       = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|<[A-Za-z0-9_./]+\.h>`)
	cCommentPattern      = regexp.MustCompile(`//.*$|/\*.*?\*/`)
	cPreprocessorPattern = regexp.MustCompile(`^\s*#\s*\w+`)
	cNumberPattern       = regexp.MustCompile(`\b(?:0[xX][0-9a-fA-F]+|0[bB][01]+|[0-9]+)[uUlL]*\b`)
	cFunctionCallPattern = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)
	cIdentifierPattern   = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
	cOperatorPattern     = regexp.MustCompile(`<<|>>|[+\-*/%&|^!~<>=?:]`)
)

type token struct {
	color *color.Color
	start int
	end   int
}

type tokens []token

func (ts tokens) overlaps(start, end int) bool {
	for _, t := range ts {
		if start < t.end && end > t.start {
			return true
		}
	}
	return false
}

// Adds a token for each match of the pattern not overlapping an already found token.
// group selects the capture group used as token (0 for the whole match).
func (ts *tokens) match(line string, pattern *regexp.Regexp, group int, pick func(text string) *color.Color) {
	for _, m := range pattern.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[2*group], m[2*group+1]
		if start < 0 || ts.overlaps(start, end) {
			continue
		}

		if c := pick(line[start:end]); c != nil {
			*ts = append(*ts, token{color: c, start: start, end: end})
		}
	}
}

func always(c *color.Color) func(string) *color.Color {
	return func(string) *color.Color { return c }
}

func highlightLine(line string) string {
	var found tokens

	// Order matters: earlier matches win over later overlapping ones
	found.match(line, cStringPattern, 0, always(cStringColor))
	found.match(line, cCommentPattern, 0, always(cCommentColor))
	found.match(line, cPreprocessorPattern, 0, always(cPreprocessorColor))
	found.match(line, cNumberPattern, 0, always(cNumberColor))
	found.match(line, cFunctionCallPattern, 1, func(name string) *color.Color {
		if cKeywords[name] || cTypes[name] {
			return nil
		}
		return cFunctionColor
	})
	found.match(line, cIdentifierPattern, 0, func(word string) *color.Color {
		if cKeywords[word] {
			return cKeywordColor
		} else if cTypes[word] {
			return cTypeColor
		}
		return nil
	})
	found.match(line, cOperatorPattern, 0, always(cOperatorColor))

	if len(found) == 0 {
		return line
	}

	sort.Slice(found, func(i, j int) bool { return found[i].start < found[j].start })

	var result strings.Builder
	pos := 0

	for _, t := range found {
		result.WriteString(line[pos:t.start])
		result.WriteString(t.color.Sprint(line[t.start:t.end]))
		pos = t.end
	}

	result.WriteString(line[pos:])

	return result.String()
}

// HighlightCCode applies syntax highlighting to C source code (line by line) and returns the colored string
func HighlightCCode(code string) string {
	return strings.Join(Map(strings.Split(code, "\n"), highlightLine), "\n")
}
