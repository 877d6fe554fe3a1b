package quijy

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"quijy/mat"
)

// Sig returns a Pauli operator: "x", "y", "z", or "i" for the identity.
func Sig(axis string, options ...Options) (mat.Matrix, error) {
	var dense [][]complex128
	switch strings.ToLower(axis) {
	case "x":
		dense = mat.PauliX
	case "y":
		dense = mat.PauliY
	case "z":
		dense = mat.PauliZ
	case "i":
		return Eye(2, options...), nil
	default:
		return nil, errors.Errorf("unknown axis %q", axis)
	}
	return Quijify(dense, getOptions(options).Qtype(Dop))
}

// BasisVec returns the i-th computational basis state of an n dimensional
// space.
func BasisVec(i, n int, options ...Options) (mat.Matrix, error) {
	if i < 0 || i >= n {
		return nil, errors.Errorf("%d %d", i, n)
	}
	vs := make([]complex128, n)
	vs[i] = 1
	return Quijify(vs, options...)
}

// BellState returns one of the four maximally entangled two-qubit states:
// "phi+", "phi-", "psi+" or "psi-". The Qtype option selects the
// representation, e.g. Dop for the corresponding density operator.
func BellState(label string, options ...Options) (mat.Matrix, error) {
	c := complex(1/math.Sqrt2, 0)
	var vs []complex128
	switch strings.ToLower(label) {
	case "phi+":
		vs = []complex128{c, 0, 0, c}
	case "phi-":
		vs = []complex128{c, 0, 0, -c}
	case "psi+":
		vs = []complex128{0, c, c, 0}
	case "psi-":
		vs = []complex128{0, c, -c, 0}
	default:
		return nil, errors.Errorf("unknown bell state %q", label)
	}
	return Quijify(vs, options...)
}
