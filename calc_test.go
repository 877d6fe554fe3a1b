package quijy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quijy/mat"
)

func TestExpec(t *testing.T) {
	t.Parallel()
	up, err := BasisVec(0, 2)
	require.NoError(t, err)
	down, err := BasisVec(1, 2)
	require.NoError(t, err)
	sigz, err := Sig("z")
	require.NoError(t, err)

	// Operator expectation values on eigenstates.
	e, err := Expec(up, sigz)
	require.NoError(t, err)
	require.InDelta(t, 1, real(e), 1e-12)
	e, err = Expec(sigz, down)
	require.NoError(t, err)
	require.InDelta(t, -1, real(e), 1e-12)

	// State overlaps are squared magnitudes.
	e, err = Expec(up, up)
	require.NoError(t, err)
	require.InDelta(t, 1, real(e), 1e-12)
	e, err = Expec(up, down)
	require.NoError(t, err)
	require.InDelta(t, 0, real(e), 1e-12)

	plus, err := Quijify([]complex128{1, 1}, NewOptions().Qtype(Ket).Normalized(true))
	require.NoError(t, err)
	e, err = Expec(up, plus)
	require.NoError(t, err)
	require.InDelta(t, 0.5, real(e), 1e-12)

	// Two operators contract to tr(ab).
	rho, err := Quijify(plus, NewOptions().Qtype(Dop))
	require.NoError(t, err)
	e, err = Expec(rho, sigz)
	require.NoError(t, err)
	require.InDelta(t, 0, real(e), 1e-12)
	sigx, err := Sig("x")
	require.NoError(t, err)
	e, err = Expec(rho, sigx)
	require.NoError(t, err)
	require.InDelta(t, 1, real(e), 1e-12)
}

func TestExpecMismatch(t *testing.T) {
	t.Parallel()
	a := RandKet(2)
	b := RandKet(3)
	_, err := Expec(a, b)
	require.Error(t, err)
}

func TestPurity(t *testing.T) {
	t.Parallel()
	k := RandKet(4)
	rho, err := Quijify(k, NewOptions().Qtype(Dop))
	require.NoError(t, err)

	p, err := Purity(rho)
	require.NoError(t, err)
	require.InDelta(t, 1, p, 1e-12)

	mixed := mat.Scale(0.5, Eye(2))
	p, err = Purity(mixed)
	require.NoError(t, err)
	require.InDelta(t, 0.5, p, 1e-12)

	_, err = Purity(k)
	require.Error(t, err)
}

func TestEntropy(t *testing.T) {
	t.Parallel()
	// Pure states carry no entropy.
	rho, err := Quijify(RandKet(4), NewOptions().Qtype(Dop))
	require.NoError(t, err)
	s, err := Entropy(rho)
	require.NoError(t, err)
	require.InDelta(t, 0, s, 1e-9)

	// The maximally mixed qubit carries one bit.
	s, err = Entropy(mat.Scale(0.5, Eye(2)))
	require.NoError(t, err)
	require.InDelta(t, 1, s, 1e-12)

	// An equal classical mixture of two orthogonal pure states does too.
	up, err := Quijify([]complex128{1, 0}, NewOptions().Qtype(Dop))
	require.NoError(t, err)
	down, err := Quijify([]complex128{0, 1}, NewOptions().Qtype(Dop))
	require.NoError(t, err)
	mixture := mat.Add(mat.Scale(0.5, up), mat.Scale(0.5, down))
	s, err = Entropy(mixture)
	require.NoError(t, err)
	require.InDelta(t, 1, s, 1e-12)

	// So does the reduced state of a Bell pair.
	bell, err := BellState("psi-")
	require.NoError(t, err)
	reduced, err := Ptr(bell, []int{2, 2}, []int{0})
	require.NoError(t, err)
	s, err = Entropy(reduced)
	require.NoError(t, err)
	require.InDelta(t, 1, s, 1e-9)
}
