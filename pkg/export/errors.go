package export

import "errors"

var ErrGenerationIO = errors.New("error writing generated file")
