package xtrx

import (
	"github.com/Manu343726/csrgen/pkg/csr"
)

type register struct {
	name        string
	width       int
	access      csr.AccessMode
	description string
	fields      []csr.FieldDescriptor
}

func addRegisters(m *csr.RegisterMap, registers ...register) error {
	for _, r := range registers {
		reg, err := csr.NewRegisterWithFields(r.name, r.width, r.access, r.fields, csr.WithDescription(r.description))
		if err != nil {
			return err
		}

		if _, err := m.AddRegister(reg); err != nil {
			return err
		}
	}

	return nil
}

// Builds the value table of a field, the i-th description documents value i
func values(descriptions ...string) []csr.FieldValue {
	result := make([]csr.FieldValue, len(descriptions))

	for i, description := range descriptions {
		result[i] = csr.FieldValue{Value: uint64(i), Description: description}
	}

	return result
}

func field(name string, offset, size int, reset uint64, description string) csr.FieldDescriptor {
	return csr.FieldDescriptor{Name: name, Offset: offset, Size: size, Reset: reset, Description: description}
}

func pulse(name string, offset int, description string) csr.FieldDescriptor {
	return csr.FieldDescriptor{Name: name, Offset: offset, Size: 1, Description: description, Pulse: true}
}

func storage(name string, width int, description string, fields ...csr.FieldDescriptor) register {
	return register{name: name, width: width, access: csr.AccessMode_Storage, description: description, fields: fields}
}

func status(name string, width int, description string, fields ...csr.FieldDescriptor) register {
	return register{name: name, width: width, access: csr.AccessMode_ReadOnly, description: description, fields: fields}
}

func command(name string, width int, description string, fields ...csr.FieldDescriptor) register {
	return register{name: name, width: width, access: csr.AccessMode_WriteOnly, description: description, fields: fields}
}
