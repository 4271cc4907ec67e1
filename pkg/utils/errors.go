package utils

import (
	"fmt"
)

// Wraps err with a formatted detail message, so errors.Is(result, err) still holds
func MakeError(err error, detailsBody string, args ...any) error {
	return fmt.Errorf("%w: "+detailsBody, append([]any{err}, args...)...)
}
