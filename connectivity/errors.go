package connectivity

import "fmt"

// DisconnectedOutputError reports that an output node has no active
// path from any input node.
type DisconnectedOutputError struct {
	Node int
}

func (e *DisconnectedOutputError) Error() string {
	return fmt.Sprintf("connectivity: output node %d is not reachable from any input", e.Node)
}
