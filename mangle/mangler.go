// Package mangle encodes qualified twkl names into unique linkage-level
// names.  The encoding is deterministic and length-prefixed so that no two
// distinct qualified names collide.
package mangle

import (
	"fmt"
	"strings"
)

// Prefix marks every mangled twkl symbol.
const Prefix = "_ZT"

// Mangler encodes logical names plus their namespace path into linkage
// names.  It is stateless; the zero value is ready to use.
type Mangler struct{}

// Mangle encodes a name qualified by a namespace path.  Each path component
// and the name itself are length-prefixed: `a::b::f` becomes `_ZTN1a1b1fE`.
func (m Mangler) Mangle(nsPath []string, name string) string {
	var sb strings.Builder

	sb.WriteString(Prefix)
	sb.WriteString("N")

	for _, ns := range nsPath {
		fmt.Fprintf(&sb, "%d%s", len(ns), ns)
	}

	fmt.Fprintf(&sb, "%d%s", len(name), name)
	sb.WriteString("E")

	return sb.String()
}

// MangleConstructor encodes the constructor of the class named by the last
// component of nsPath.
func (m Mangler) MangleConstructor(nsPath []string) string {
	return m.Mangle(nsPath, "C1")
}

// MangleDestructor encodes the destructor of the class named by the last
// component of nsPath.
func (m Mangler) MangleDestructor(nsPath []string) string {
	return m.Mangle(nsPath, "D1")
}
