// Temporary naming for Tacky generation.

package tackygen

import (
	"fmt"

	"github.com/raymyers/tacky-cc/pkg/tacky"
)

// tempNamer hands out temporary variables for one lowering run.
// Names are tmp.1, tmp.2, ... in allocation order.
type tempNamer struct {
	next int
}

func newTempNamer() *tempNamer {
	return &tempNamer{next: 1}
}

// Fresh allocates a new temporary
func (n *tempNamer) Fresh() tacky.Var {
	v := tacky.Var{Name: fmt.Sprintf("tmp.%d", n.next)}
	n.next++
	return v
}

// Count returns how many temporaries have been allocated
func (n *tempNamer) Count() int {
	return n.next - 1
}
