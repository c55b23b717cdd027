// file:artkv/pkg/x_art/errors.go
package x_art

import "errors"

var (
	// ErrAllocation reports that the node budget refused a new node. The
	// tree is left exactly as it was before the failing call.
	ErrAllocation = errors.New("x_art: node allocation failed")

	// ErrInvalidKey reports a key the tree was configured to reject.
	ErrInvalidKey = errors.New("x_art: invalid key")

	// ErrDestroyed reports a mutation on a destroyed tree.
	ErrDestroyed = errors.New("x_art: tree destroyed")
)
