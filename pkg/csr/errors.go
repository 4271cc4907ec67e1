package csr

import "errors"

var (
	ErrInvalidField          = errors.New("invalid field")
	ErrOverlappingField      = errors.New("overlapping field")
	ErrFieldOutOfBounds      = errors.New("field out of bounds")
	ErrDuplicateField        = errors.New("duplicate field")
	ErrUnknownField          = errors.New("unknown field")
	ErrInvalidRegister       = errors.New("invalid register")
	ErrDuplicateRegisterName = errors.New("duplicate register name")
	ErrUnknownRegister       = errors.New("unknown register")
	ErrInvalidRegisterMap    = errors.New("invalid register map")
)
