package generate

import "strings"

// NamespaceKind distinguishes the two kinds of scope frame that qualify
// names.
type NamespaceKind int

const (
	// NSNamespace is a frame opened by a `namespace` item.
	NSNamespace NamespaceKind = iota

	// NSClass is a frame opened while generating the members of a class.
	NSClass
)

// Namespace is one frame of the namespace stack.
type Namespace struct {
	Name string
	Kind NamespaceKind
}

// NamespaceStack tracks the qualification context of the item currently
// being generated.  Pushes and pops must be strictly paired.
type NamespaceStack struct {
	frames []Namespace
}

// Push opens a frame.
func (ns *NamespaceStack) Push(name string, kind NamespaceKind) {
	ns.frames = append(ns.frames, Namespace{Name: name, Kind: kind})
}

// Pop closes the innermost frame.
func (ns *NamespaceStack) Pop() {
	ns.frames = ns.frames[:len(ns.frames)-1]
}

// Path returns the names of the open frames, outermost first.
func (ns *NamespaceStack) Path() []string {
	path := make([]string, len(ns.frames))
	for i, frame := range ns.frames {
		path[i] = frame.Name
	}

	return path
}

// PathKey returns the open frames joined into a single comparable key.
func (ns *NamespaceStack) PathKey() string {
	return strings.Join(ns.Path(), "::")
}

// -----------------------------------------------------------------------------

// TemplateKey identifies a registered template.  Two templates collide only
// when their name, template arity, and enclosing namespace path all match.
type TemplateKey struct {
	Name   string
	Arity  int
	NSPath string
}
