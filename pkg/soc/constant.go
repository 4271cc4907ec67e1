package soc

import "fmt"

// A named integer exported to the SoC header, or a valueless flag
type Constant struct {
	Name   string
	Value  int64
	IsFlag bool
}

func (c Constant) String() string {
	if c.IsFlag {
		return c.Name
	}

	return fmt.Sprintf("%v = %v", c.Name, c.Value)
}
