package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type LayoutField struct {
	// Name printed inside the field box
	Name string

	// First unit of the frame covered by the field
	Begin int

	// Number of units covered by the field
	Width int
}

// The last unit within the frame used by this field
func (f *LayoutField) TopUnit() int {
	return f.PastTopUnit() - 1
}

// The first unit within the frame used by the next field
func (f *LayoutField) PastTopUnit() int {
	return f.Begin + f.Width
}

type LayoutDirection uint

const (
	// Units increase left to right
	LayoutDirection_LeftToRight LayoutDirection = iota
	// Units increase right to left (msb first, the usual register diagram)
	LayoutDirection_RightToLeft
)

const unusedFieldName = "(unused)"

var ErrInvalidLayout = errors.New("invalid layout")

type layoutEntry struct {
	index     string
	name      string
	width     string
	minLength int
}

type layout struct {
	fields     []LayoutField
	frameWidth int
	unit       string
	leftpad    int
	direction  LayoutDirection
}

func (l *layout) field(i int) *LayoutField {
	if l.direction == LayoutDirection_RightToLeft {
		return &l.fields[len(l.fields)-i-1]
	}

	return &l.fields[i]
}

func (l *layout) entries(arrowTipsLength int) []layoutEntry {
	entries := make([]layoutEntry, len(l.fields))

	for i := range entries {
		field := l.field(i)
		entry := &entries[i]

		if l.direction == LayoutDirection_RightToLeft {
			entry.index = fmt.Sprint(field.TopUnit())
		} else {
			entry.index = fmt.Sprint(field.Begin)
		}

		entry.name = fmt.Sprintf(" %v ", field.Name)
		entry.width = fmt.Sprintf(" %v %v ", field.Width, l.unit)
		entry.minLength = Max([]int{len(entry.index), len(entry.name), arrowTipsLength + len(entry.width)})
	}

	return entries
}

// Writes text centered in a row of the given length, filling both sides with filler.
// decoration is the length of any text the caller writes around the row.
func writeCentered(text string, decoration int, filler string, length int, builder *strings.Builder) {
	free := length - len(text) - decoration
	left := free / 2
	right := free - left

	builder.WriteString(strings.Repeat(filler, left))
	builder.WriteString(text)
	builder.WriteString(strings.Repeat(filler, right))
}

func (l *layout) draw() string {
	const (
		bodySplitter   = "|"
		borderSplitter = "+"
		borderBody     = "-"
		arrowTipLeft   = "<-"
		arrowBody      = "-"
		arrowTipRight  = "->"
		indexBody      = " "
		arrowSplitter  = " "
	)

	leftpad := strings.Repeat(" ", l.leftpad)

	var indices, header, body, footer, widths strings.Builder

	for _, row := range []*strings.Builder{&indices, &header, &body, &footer, &widths} {
		row.WriteString(leftpad)
	}

	for _, entry := range l.entries(len(arrowTipLeft) + len(arrowTipRight)) {
		indices.WriteString(entry.index)
		indices.WriteString(strings.Repeat(indexBody, entry.minLength-len(entry.index)+1))
		header.WriteString(borderSplitter)
		header.WriteString(strings.Repeat(borderBody, entry.minLength))
		body.WriteString(bodySplitter)
		writeCentered(entry.name, 0, " ", entry.minLength, &body)
		footer.WriteString(borderSplitter)
		footer.WriteString(strings.Repeat(borderBody, entry.minLength))
		widths.WriteString(arrowSplitter)
		widths.WriteString(arrowTipLeft)
		writeCentered(entry.width, len(arrowTipLeft)+len(arrowTipRight), arrowBody, entry.minLength, &widths)
		widths.WriteString(arrowTipRight)
	}

	if l.direction == LayoutDirection_LeftToRight {
		indices.WriteString(fmt.Sprint(l.frameWidth - 1))
	} else {
		indices.WriteString("0")
	}

	header.WriteString(borderSplitter)
	body.WriteString(bodySplitter)
	footer.WriteString(borderSplitter)
	widths.WriteString(" ")

	var result strings.Builder

	for _, row := range []*strings.Builder{&indices, &header, &body, &footer, &widths} {
		result.WriteString(row.String())
		result.WriteString("\n")
	}

	return result.String()
}

// Sorts the fields by position and inserts "(unused)" fields in the gaps
func fillLayoutGaps(fields []LayoutField, frameWidth int) ([]LayoutField, error) {
	sorted := append([]LayoutField(nil), fields...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Begin < sorted[j].Begin })

	result := make([]LayoutField, 0, len(sorted)*2+1)
	currentUnit := 0

	for _, field := range sorted {
		if field.Width <= 0 {
			return nil, MakeError(ErrInvalidLayout, "field '%v' has width %v", field.Name, field.Width)
		}

		if field.Begin < currentUnit {
			return nil, MakeError(ErrInvalidLayout, "field '%v' begins at %v, overlapping the previous field", field.Name, field.Begin)
		}

		if field.Begin > currentUnit {
			result = append(result, LayoutField{
				Name:  unusedFieldName,
				Begin: currentUnit,
				Width: field.Begin - currentUnit,
			})
		}

		result = append(result, field)
		currentUnit = field.PastTopUnit()
	}

	if currentUnit < frameWidth {
		result = append(result, LayoutField{
			Name:  unusedFieldName,
			Begin: currentUnit,
			Width: frameWidth - currentUnit,
		})
	}

	return result, nil
}

// Draws an ascii diagram of a frame (e.g. a register) composed of fields of different unit lengths.
// Gaps between fields are drawn as unused fields.
func DrawLayout(fields []LayoutField, frameWidth int, unit string, direction LayoutDirection, leftpad int) (string, error) {
	allFields, err := fillLayoutGaps(fields, frameWidth)
	if err != nil {
		return "", err
	}

	if len(allFields) == 0 {
		return "", MakeError(ErrInvalidLayout, "empty frame")
	}

	frame := layout{
		fields:     allFields,
		frameWidth: allFields[len(allFields)-1].PastTopUnit(),
		unit:       unit,
		leftpad:    leftpad,
		direction:  direction,
	}

	return frame.draw(), nil
}
