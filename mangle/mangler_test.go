package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMangleEncoding(t *testing.T) {
	var m Mangler

	assert.Equal(t, "_ZTN1fE", m.Mangle(nil, "f"))
	assert.Equal(t, "_ZTN4math3addE", m.Mangle([]string{"math"}, "add"))
	assert.Equal(t, "_ZTN1a1b1fE", m.Mangle([]string{"a", "b"}, "f"))
}

func TestMangleIsDeterministic(t *testing.T) {
	var m Mangler

	path := []string{"outer", "inner"}
	assert.Equal(t, m.Mangle(path, "thing"), m.Mangle(path, "thing"))
}

func TestMangleDistinguishesPaths(t *testing.T) {
	var m Mangler

	// `a::bf` and `a::b::f` must not collide: components are length
	// prefixed.
	assert.NotEqual(t, m.Mangle([]string{"a"}, "bf"), m.Mangle([]string{"a", "b"}, "f"))
}

func TestSpecialMembers(t *testing.T) {
	var m Mangler

	ctor := m.MangleConstructor([]string{"Vec"})
	dtor := m.MangleDestructor([]string{"Vec"})

	assert.Equal(t, "_ZTN3Vec2C1E", ctor)
	assert.Equal(t, "_ZTN3Vec2D1E", dtor)
	assert.NotEqual(t, ctor, dtor)
}
