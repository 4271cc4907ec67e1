package description

// YAML document layout of a SoC description

type Document struct {
	Name          string       `yaml:"name"`
	CSRBase       uint64       `yaml:"csr_base"`
	CSRPaging     uint64       `yaml:"csr_paging"`
	Constants     []Constant   `yaml:"constants,omitempty"`
	MemoryRegions []Region     `yaml:"memory_regions,omitempty"`
	Peripherals   []Peripheral `yaml:"peripherals,omitempty"`
}

// A constant without value is a flag
type Constant struct {
	Name  string `yaml:"name"`
	Value *int64 `yaml:"value,omitempty"`
}

type Region struct {
	Name string `yaml:"name"`
	Base uint64 `yaml:"base"`
	Size uint64 `yaml:"size"`
	Kind string `yaml:"kind"`
}

// A peripheral without base is allocated on the next free CSR page
type Peripheral struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Base        *uint64    `yaml:"base,omitempty"`
	Stride      uint64     `yaml:"stride,omitempty"`
	Registers   []Register `yaml:"registers,omitempty"`
}

type Register struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Width       int     `yaml:"width"`
	Access      string  `yaml:"access"`
	Fields      []Field `yaml:"fields,omitempty"`
}

type Field struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Offset      int          `yaml:"offset"`
	Size        int          `yaml:"size"`
	Reset       uint64       `yaml:"reset,omitempty"`
	Pulse       bool         `yaml:"pulse,omitempty"`
	Values      []FieldValue `yaml:"values,omitempty"`
}

type FieldValue struct {
	Value       uint64 `yaml:"value"`
	Description string `yaml:"description"`
}
