// Package description loads and dumps SoC models as YAML documents
package description

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/Manu343726/csrgen/pkg/utils"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDescription = errors.New("invalid soc description")

// Decodes a YAML document and builds the SoC it describes.
// Unknown keys are rejected and the model is validated while it is built.
func Load(r io.Reader) (*soc.SoC, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var document Document
	if err := decoder.Decode(&document); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, utils.MakeError(ErrInvalidDescription, "empty document")
		}

		return nil, utils.MakeError(ErrInvalidDescription, "%w", err)
	}

	return document.Build()
}

// Loads a SoC description file
func LoadFile(fs afero.Fs, path string) (*soc.SoC, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading soc description: %w", err)
	}

	s, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	return s, nil
}

// Builds the SoC model described by the document
func (d *Document) Build() (*soc.SoC, error) {
	options := []soc.Option{soc.WithCSRBase(d.CSRBase)}
	if d.CSRPaging != 0 {
		options = append(options, soc.WithCSRPaging(d.CSRPaging))
	}

	s, err := soc.New(d.Name, options...)
	if err != nil {
		return nil, err
	}

	for _, c := range d.Constants {
		if c.Value == nil {
			err = s.AddFlag(c.Name)
		} else {
			err = s.AddConstant(c.Name, *c.Value)
		}

		if err != nil {
			return nil, err
		}
	}

	for _, r := range d.MemoryRegions {
		kind, err := soc.ParseRegionKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("region '%v': %w", r.Name, err)
		}

		if err := s.AddMemoryRegion(soc.MemoryRegion{Name: r.Name, BaseAddress: r.Base, Size: r.Size, Kind: kind}); err != nil {
			return nil, err
		}
	}

	for _, p := range d.Peripherals {
		if err := p.addTo(s); err != nil {
			return nil, fmt.Errorf("peripheral '%v': %w", p.Name, err)
		}
	}

	return s, nil
}

func (p *Peripheral) addTo(s *soc.SoC) error {
	options := []csr.RegisterMapOption{csr.WithMapDescription(p.Description)}
	if p.Stride != 0 {
		options = append(options, csr.WithStride(p.Stride))
	}

	if p.Base == nil {
		_, err := s.AddCSRPeripheral(p.Name, p.addRegisters, options...)
		return err
	}

	m, err := csr.NewRegisterMap(p.Name, *p.Base, options...)
	if err != nil {
		return err
	}

	if err := p.addRegisters(m); err != nil {
		return err
	}

	return s.AddRegisterMap(m)
}

func (p *Peripheral) addRegisters(m *csr.RegisterMap) error {
	for _, r := range p.Registers {
		access, err := csr.ParseAccessMode(r.Access)
		if err != nil {
			return fmt.Errorf("register '%v': %w", r.Name, err)
		}

		fields := utils.Map(r.Fields, Field.descriptor)

		register, err := csr.NewRegisterWithFields(r.Name, r.Width, access, fields, csr.WithDescription(r.Description))
		if err != nil {
			return err
		}

		if _, err := m.AddRegister(register); err != nil {
			return err
		}
	}

	return nil
}

func (f Field) descriptor() csr.FieldDescriptor {
	return csr.FieldDescriptor{
		Name:        f.Name,
		Description: f.Description,
		Offset:      f.Offset,
		Size:        f.Size,
		Reset:       f.Reset,
		Pulse:       f.Pulse,
		Values: utils.Map(f.Values, func(v FieldValue) csr.FieldValue {
			return csr.FieldValue{Value: v.Value, Description: v.Description}
		}),
	}
}

// Returns the document describing a SoC model
func FromSoC(s *soc.SoC) *Document {
	return &Document{
		Name:      s.Name(),
		CSRBase:   s.CSRBase(),
		CSRPaging: s.CSRPaging(),
		Constants: utils.Map(s.Constants(), func(c soc.Constant) Constant {
			if c.IsFlag {
				return Constant{Name: c.Name}
			}

			value := c.Value
			return Constant{Name: c.Name, Value: &value}
		}),
		MemoryRegions: utils.Map(s.MemoryRegions(), func(r soc.MemoryRegion) Region {
			return Region{Name: r.Name, Base: r.BaseAddress, Size: r.Size, Kind: r.Kind.String()}
		}),
		Peripherals: utils.Map(s.RegisterMaps(), peripheralFromMap),
	}
}

func peripheralFromMap(m *csr.RegisterMap) Peripheral {
	base := m.BaseAddress()

	return Peripheral{
		Name:        m.Name(),
		Description: m.Description(),
		Base:        &base,
		Stride:      m.Stride(),
		Registers: utils.Map(m.Registers(), func(entry csr.RegisterEntry) Register {
			return Register{
				Name:        entry.Register.Name(),
				Description: entry.Register.Description(),
				Width:       entry.Register.Width(),
				Access:      entry.Register.Access().String(),
				Fields:      utils.Map(entry.Register.Fields(), fieldFromDescriptor),
			}
		}),
	}
}

func fieldFromDescriptor(f csr.FieldDescriptor) Field {
	return Field{
		Name:        f.Name,
		Description: f.Description,
		Offset:      f.Offset,
		Size:        f.Size,
		Reset:       f.Reset,
		Pulse:       f.Pulse,
		Values: utils.Map(f.Values, func(v csr.FieldValue) FieldValue {
			return FieldValue{Value: v.Value, Description: v.Description}
		}),
	}
}

// Writes the YAML description of a SoC model
func Dump(w io.Writer, s *soc.SoC) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(FromSoC(s)); err != nil {
		return fmt.Errorf("error encoding soc description: %w", err)
	}

	return encoder.Close()
}
