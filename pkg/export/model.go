package export

import (
	"fmt"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/Manu343726/csrgen/pkg/utils"
)

// Template views of the SoC model, with symbols and literals already formatted

type fieldView struct {
	Name        string
	Symbol      string
	Function    string
	Offset      int
	Size        int
	Mask        string
	Reset       uint64
	Description string
	Values      []csr.FieldValue
}

// One bus word of a register, most significant first
type wordView struct {
	// Address expression of the word
	Address string

	// Position of the word within the register value
	Shift int
}

type registerView struct {
	Name        string
	Symbol      string
	Function    string
	Address     string
	AddressHex  string
	Width       int
	Words       int
	CType       string
	Reset       string
	Access      string
	Readable    bool
	Writable    bool
	Status      bool
	Description string
	Fields      []fieldView
	BusWords    []wordView
}

type peripheralView struct {
	Name        string
	Symbol      string
	Base        string
	Description string
	Registers   []registerView
}

type constantView struct {
	Name     string
	Symbol   string
	Function string
	Value    string
	CType    string
	IsFlag   bool
}

type regionView struct {
	Name   string
	Symbol string
	Base   string
	Size   string
	Kind   string
}

type headerView struct {
	SoC                 string
	WithAccessFunctions bool
	Peripherals         []peripheralView
	Constants           []constantView
	Regions             []regionView
}

// C literal of an address: 8 hex digits, 16 if it does not fit in 32 bits
func addressLiteral(address uint64) string {
	if utils.Fits(address, 32) {
		return utils.FormatUintHex(address, 8) + "L"
	}

	return utils.FormatUintHex(address, 16) + "ULL"
}

// C literal of a register sized value
func valueLiteral(value uint64, width int) string {
	if width > 32 {
		return utils.FormatUintHex(value, utils.HexDigits(width)) + "ULL"
	}

	return utils.FormatUintHex(value, utils.HexDigits(width)) + "U"
}

// Number of CSR bus words taken by a register of the given width
func csrWords(width int) int {
	wordBits := utils.Bits(csr.DefaultStride)
	return (width + wordBits - 1) / wordBits
}

// Bus words of a register, most significant first, the order LiteX accesses them in
func busWords(symbol string, width int) []wordView {
	words := csrWords(width)
	result := make([]wordView, words)

	for i := range result {
		result[i].Address = symbol + csr.SymbolSuffixAddress
		if i > 0 {
			result[i].Address += fmt.Sprintf(" + %v", i*csr.DefaultStride)
		}

		result[i].Shift = (words - 1 - i) * utils.Bits(csr.DefaultStride)
	}

	return result
}

// Smallest C unsigned type holding a register of the given width
func cType(width int) string {
	switch {
	case width <= 8:
		return "uint8_t"
	case width <= 16:
		return "uint16_t"
	case width <= 32:
		return "uint32_t"
	default:
		return "uint64_t"
	}
}

func (g *Generator) fieldView(peripheral string, register csr.Register, field csr.FieldDescriptor) fieldView {
	return fieldView{
		Name:        field.Name,
		Symbol:      utils.Symbol(g.options.Prefix+peripheral, register.Name(), field.Name),
		Function:    utils.LowerSymbol(peripheral, register.Name(), field.Name),
		Offset:      field.Offset,
		Size:        field.Size,
		Mask:        valueLiteral(field.Mask(), register.Width()),
		Reset:       field.Reset,
		Description: field.Description,
		Values:      field.Values,
	}
}

func (g *Generator) registerView(m *csr.RegisterMap, entry csr.RegisterEntry) registerView {
	r := entry.Register
	symbol := utils.Symbol(g.options.Prefix+m.Name(), r.Name())

	return registerView{
		Name:        r.Name(),
		Symbol:      symbol,
		Function:    utils.LowerSymbol(m.Name(), r.Name()),
		Address:     addressLiteral(entry.Address),
		AddressHex:  utils.FormatUintHex(entry.Address, 8),
		Width:       r.Width(),
		Words:       csrWords(r.Width()),
		CType:       cType(r.Width()),
		Reset:       valueLiteral(r.ResetValue(), r.Width()),
		Access:      r.Access().String(),
		Readable:    r.Access().Readable(),
		Writable:    r.Access().Writable(),
		Status:      r.Access().IsStatus(),
		Description: r.Description(),
		Fields: utils.Map(r.Fields(), func(f csr.FieldDescriptor) fieldView {
			return g.fieldView(m.Name(), r, f)
		}),
		BusWords: busWords(symbol, r.Width()),
	}
}

func (g *Generator) peripheralView(m *csr.RegisterMap) peripheralView {
	return peripheralView{
		Name:        m.Name(),
		Symbol:      utils.Symbol(g.options.Prefix + m.Name()),
		Base:        addressLiteral(m.BaseAddress()),
		Description: m.Description(),
		Registers: utils.Map(m.Registers(), func(entry csr.RegisterEntry) registerView {
			return g.registerView(m, entry)
		}),
	}
}

func newConstantView(c soc.Constant) constantView {
	view := constantView{
		Name:     c.Name,
		Symbol:   utils.Symbol(c.Name),
		Function: utils.LowerSymbol(c.Name),
		IsFlag:   c.IsFlag,
		CType:    "int",
		Value:    fmt.Sprint(c.Value),
	}

	if int64(int32(c.Value)) != c.Value {
		view.CType = "long long"
		view.Value += "LL"
	}

	return view
}

func newRegionView(r soc.MemoryRegion) regionView {
	return regionView{
		Name:   r.Name,
		Symbol: utils.Symbol(r.Name),
		Base:   addressLiteral(r.BaseAddress),
		Size:   addressLiteral(r.Size),
		Kind:   r.Kind.String(),
	}
}

func (g *Generator) headerView(s *soc.SoC) *headerView {
	return &headerView{
		SoC:                 s.Name(),
		WithAccessFunctions: g.options.WithAccessFunctions,
		Peripherals:         utils.Map(s.RegisterMaps(), g.peripheralView),
		Constants:           utils.Map(s.Constants(), newConstantView),
		Regions:             utils.Map(s.MemoryRegions(), newRegionView),
	}
}
