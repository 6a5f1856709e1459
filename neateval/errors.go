package neateval

import "fmt"

// InvalidInputSizeError is returned when the number of supplied inputs
// does not match the spec's input row size.
type InvalidInputSizeError struct {
	Got, Want int
}

func (e *InvalidInputSizeError) Error() string {
	return fmt.Sprintf("neateval: got %d inputs, want %d", e.Got, e.Want)
}
