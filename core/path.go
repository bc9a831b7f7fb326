// SPDX-License-Identifier: MIT

package core

import "strings"

// Path is one complete selection: one node per visited position, in
// position order. Paths are values; nothing mutates a Path after it is produced.
type Path []Node

// Width returns the number of positions the path covers.
// For any path produced over a lattice it equals Lattice.Len().
func (p Path) Width() int {
	w := 0
	for _, n := range p {
		w += n.Width()
	}

	return w
}

// Labels returns the debug label of every node.
func (p Path) Labels() []string {
	out := make([]string, len(p))
	for i, n := range p {
		out[i] = n.Label()
	}

	return out
}

// String joins node labels with a single space.
func (p Path) String() string { return strings.Join(p.Labels(), " ") }
