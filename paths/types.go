// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: enumerator states, sentinel errors and the cursor sentinel.

package paths

import "errors"

var (
	// ErrNilLattice is returned by New when the lattice is nil.
	ErrNilLattice = errors.New("paths: lattice is nil")

	// ErrExhausted is returned by Current once every path has been produced.
	// It signals a contract violation by the caller, not a data error.
	ErrExhausted = errors.New("paths: enumerator exhausted")
)

// State is the enumerator state.
type State uint8

const (
	Ready     State = iota // Ready: the cursor denotes a readable path.
	Exhausted              // Exhausted: terminal until Reset.
)

// String returns "ready" or "exhausted".
func (s State) String() string {
	if s == Exhausted {
		return "exhausted"
	}

	return "ready"
}

// exhaustedMark is stored in cursor[0] once the odometer carries past the last digit.
const exhaustedMark = -1
