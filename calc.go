package quijy

import (
	"math"

	"github.com/pkg/errors"

	"quijy/mat"
)

// Expec is the expectation value between a and b: tr(a b) for two
// operators, <a|b|a> for a vector a with operator b, and the overlap
// probability |<a|b>|^2 for two vectors.
func Expec(a, b mat.Matrix) (complex128, error) {
	av, bv := isVec(a) && !IsOp(a), isVec(b) && !IsOp(b)
	switch {
	case av && bv:
		if vecLen(a) != vecLen(b) {
			return 0, errors.Errorf("%d %d", vecLen(a), vecLen(b))
		}
		ip := mat.Mul(braOf(a), ketOf(b)).At(0, 0)
		return complex(real(ip)*real(ip)+imag(ip)*imag(ip), 0), nil
	case av:
		if b.Rows() != b.Cols() || b.Rows() != vecLen(a) {
			return 0, errors.Errorf("%d %d %d", b.Rows(), b.Cols(), vecLen(a))
		}
		return mat.Mul(braOf(a), mat.Mul(b, ketOf(a))).At(0, 0), nil
	case bv:
		return Expec(b, a)
	case IsOp(a) && IsOp(b):
		if a.Rows() != b.Rows() {
			return 0, errors.Errorf("%d %d", a.Rows(), b.Rows())
		}
		return Tr(mat.Mul(a, b)), nil
	}
	return 0, errors.Errorf("%d %d %d %d", a.Rows(), a.Cols(), b.Rows(), b.Cols())
}

// Purity is tr(rho^2), 1 for pure states and 1/n for the maximally mixed
// state.
func Purity(rho mat.Matrix) (float64, error) {
	if rho.Rows() != rho.Cols() {
		return 0, errors.Errorf("%d %d", rho.Rows(), rho.Cols())
	}
	return real(Tr(mat.Mul(rho, rho))), nil
}

// Entropy is the von Neumann entropy of a density operator in bits,
// -sum(p log2 p) over its spectrum.
func Entropy(rho mat.Matrix) (float64, error) {
	if rho.Rows() != rho.Cols() {
		return 0, errors.Errorf("%d %d", rho.Rows(), rho.Cols())
	}

	var s float64
	for _, p := range mat.HermEig(rho) {
		// Eigenvalues of a density operator are probabilities; tiny negative
		// values are eigensolver noise.
		if p < DefaultTol {
			continue
		}
		s -= p * math.Log2(p)
	}
	return s, nil
}

func ketOf(a mat.Matrix) mat.Matrix {
	if IsBra(a) && a.Cols() > 1 {
		return mat.Adjoint(a)
	}
	return a
}

func braOf(a mat.Matrix) mat.Matrix {
	return mat.Adjoint(ketOf(a))
}

func vecLen(a mat.Matrix) int {
	return a.Rows() * a.Cols()
}
