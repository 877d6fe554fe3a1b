// Package quijy is a quantum-information toolkit: construction,
// normalization, tensor composition and partial tracing of quantum state
// vectors and density operators over dense or compressed-row sparse complex
// matrices.
//
// States are plain mat.Matrix values. A ket has shape (n,1), a bra (1,n) and
// a density operator (n,n); the functions here are the shape, representation
// and subsystem-index bookkeeping around the matrix algebra in quijy/mat.
package quijy

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"quijy/mat"
)

// DefaultTol is the default absolute tolerance for chopping and for
// tolerance-based comparisons.
const DefaultTol = 1e-15

// Qtype is the requested representation of a quantum state.
type Qtype int

const (
	// Auto keeps the shape of the input; a flat sequence becomes a ket.
	Auto Qtype = iota
	Ket
	Bra
	Dop
)

// ParseQtype accepts the usual shorthand labels.
func ParseQtype(s string) (Qtype, error) {
	switch strings.ToLower(s) {
	case "":
		return Auto, nil
	case "ket", "k":
		return Ket, nil
	case "bra", "b":
		return Bra, nil
	case "dop", "rho", "r", "d":
		return Dop, nil
	}
	return Auto, errors.Errorf("unknown qtype %q", s)
}

func (q Qtype) String() string {
	switch q {
	case Auto:
		return "auto"
	case Ket:
		return "ket"
	case Bra:
		return "bra"
	case Dop:
		return "dop"
	}
	return "invalid"
}

// Options configure construction and cleanup.
type Options struct {
	qtype      Qtype
	sparse     bool
	dense      bool
	normalized bool
	chopped    bool
	tol        float64
}

// NewOptions returns the default options.
func NewOptions() Options {
	opt := Options{}
	opt.tol = DefaultTol
	return opt
}

// Qtype sets the requested representation kind.
func (opt Options) Qtype(q Qtype) Options {
	opt.qtype = q
	return opt
}

// Sparse forces compressed-row output.
func (opt Options) Sparse(s bool) Options {
	opt.sparse = s
	return opt
}

// Dense forces dense output regardless of the input representation.
func (opt Options) Dense(d bool) Options {
	opt.dense = d
	return opt
}

// Normalized divides kets and bras by their 2-norm, operators by their trace.
func (opt Options) Normalized(n bool) Options {
	opt.normalized = n
	return opt
}

// Chopped zeroes entries below the tolerance after construction.
func (opt Options) Chopped(c bool) Options {
	opt.chopped = c
	return opt
}

// Tol sets the absolute tolerance used by Chopped and by comparisons.
func (opt Options) Tol(tol float64) Options {
	opt.tol = tol
	return opt
}

func getOptions(options []Options) Options {
	if len(options) > 0 {
		return options[0]
	}
	return NewOptions()
}

// Quijify builds a quantum state matrix from raw numeric data: a flat
// sequence ([]complex128 or []float64), a nested sequence ([][]complex128 or
// [][]float64), or an existing mat.Matrix. The requested Qtype reshapes the
// data into a ket, bra (conjugated) or density operator (outer product for
// vector input). Output is sparse iff the Sparse option is set or the input
// matrix is already sparse, unless Dense is forced.
func Quijify(data any, options ...Options) (mat.Matrix, error) {
	opt := getOptions(options)

	a, err := asMatrix(data)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if opt.sparse {
		a = mat.ToCSR(a)
	}

	switch opt.qtype {
	case Auto:
	case Ket:
		if !isVec(a) {
			return nil, errors.Errorf("%d %d", a.Rows(), a.Cols())
		}
		if IsBra(a) && a.Cols() > 1 {
			a = mat.Adjoint(a)
		}
	case Bra:
		if !isVec(a) {
			return nil, errors.Errorf("%d %d", a.Rows(), a.Cols())
		}
		if a.Cols() == 1 && a.Rows() > 1 {
			a = mat.Adjoint(a)
		}
	case Dop:
		switch {
		case isVec(a) && (a.Rows() > 1 || a.Cols() > 1):
			v := a
			if IsBra(a) && a.Cols() > 1 {
				v = mat.Adjoint(a)
			}
			a = mat.Mul(v, mat.Adjoint(v))
		case a.Rows() == a.Cols():
		default:
			return nil, errors.Errorf("%d %d", a.Rows(), a.Cols())
		}
	default:
		return nil, errors.Errorf("unknown qtype %d", opt.qtype)
	}

	if opt.dense {
		a = mat.ToDense(a)
	}
	if opt.normalized {
		if err := NmlzInPlace(a); err != nil {
			return nil, errors.Wrap(err, "")
		}
	}
	if opt.chopped {
		mat.ChopInPlace(a, opt.tol)
	}
	return a, nil
}

// Qjf is shorthand for Quijify.
func Qjf(data any, options ...Options) (mat.Matrix, error) {
	return Quijify(data, options...)
}

func asMatrix(data any) (mat.Matrix, error) {
	switch data := data.(type) {
	case mat.Matrix:
		return data, nil
	case []complex128:
		if len(data) == 0 {
			return nil, errors.Errorf("empty")
		}
		return mat.Vec(data), nil
	case []float64:
		if len(data) == 0 {
			return nil, errors.Errorf("empty")
		}
		vs := make([]complex128, len(data))
		for i, v := range data {
			vs[i] = complex(v, 0)
		}
		return mat.Vec(vs), nil
	case [][]complex128:
		if err := checkRagged(len(data), func(i int) int { return len(data[i]) }); err != nil {
			return nil, err
		}
		return mat.M(data), nil
	case [][]float64:
		if err := checkRagged(len(data), func(i int) int { return len(data[i]) }); err != nil {
			return nil, err
		}
		rows := make([][]complex128, len(data))
		for i, row := range data {
			rows[i] = make([]complex128, len(row))
			for j, v := range row {
				rows[i][j] = complex(v, 0)
			}
		}
		return mat.M(rows), nil
	}
	return nil, errors.Errorf("unsupported data type %T", data)
}

func checkRagged(rows int, rowLen func(int) int) error {
	if rows == 0 {
		return errors.Errorf("empty")
	}
	for i := 0; i < rows; i++ {
		if rowLen(i) != rowLen(0) {
			return errors.Errorf("%d %d %d", i, rowLen(i), rowLen(0))
		}
	}
	return nil
}

func isVec(a mat.Matrix) bool {
	return a.Rows() == 1 || a.Cols() == 1
}

// IsKet reports whether a is column-vector shaped.
func IsKet(a mat.Matrix) bool {
	return a.Cols() == 1
}

// IsBra reports whether a is row-vector shaped.
func IsBra(a mat.Matrix) bool {
	return a.Rows() == 1
}

// IsOp reports whether a is square.
func IsOp(a mat.Matrix) bool {
	return a.Rows() == a.Cols()
}

// IsHerm reports whether a equals its conjugate transpose within the
// tolerance. Sparse matrices are compared through their nonzero structure
// without densifying.
func IsHerm(a mat.Matrix, options ...Options) bool {
	opt := getOptions(options)
	if a.Rows() != a.Cols() {
		return false
	}
	if s, ok := a.(*mat.CSR); ok {
		d := mat.Add(s, mat.Scale(-1, s.Adjoint())).(*mat.CSR)
		return d.MaxAbs() <= opt.tol
	}
	return mat.MaxAbsDiff(a, mat.Adjoint(a)) <= opt.tol
}

// Tr is the trace. Dispatch between the dense and sparse implementations
// happens here, once.
func Tr(a mat.Matrix) complex128 {
	switch a := a.(type) {
	case *mat.CSR:
		return a.Trace()
	default:
		return mat.ToDense(a).Trace()
	}
}

// Nmlz returns a normalized: kets and bras divided by their 2-norm,
// operators by their trace. The input is left unmodified.
func Nmlz(a mat.Matrix) (mat.Matrix, error) {
	b := mat.Clone(a)
	if err := NmlzInPlace(b); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return b, nil
}

// NmlzInPlace is Nmlz mutating its argument.
func NmlzInPlace(a mat.Matrix) error {
	var c complex128
	switch {
	case isVec(a) && !IsOp(a):
		n := norm2(a)
		if n == 0 {
			return errors.Errorf("zero norm")
		}
		c = complex(1/n, 0)
	case IsOp(a):
		t := Tr(a)
		if t == 0 {
			return errors.Errorf("zero trace")
		}
		c = 1 / t
	default:
		return errors.Errorf("%d %d", a.Rows(), a.Cols())
	}

	switch a := a.(type) {
	case *mat.CSR:
		a.Scale(c)
	default:
		a.(*mat.Dense).Scale(c)
	}
	return nil
}

func norm2(a mat.Matrix) float64 {
	var s float64
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			v := a.At(i, j)
			s += real(v)*real(v) + imag(v)*imag(v)
		}
	}
	return math.Sqrt(s)
}

// Chop returns a copy of a with the real and imaginary parts of every entry
// independently zeroed when below the tolerance.
func Chop(a mat.Matrix, options ...Options) mat.Matrix {
	return mat.Chop(a, getOptions(options).tol)
}

// ChopInPlace is Chop mutating its argument. On sparse matrices the zeroed
// entries are removed from the nonzero structure.
func ChopInPlace(a mat.Matrix, options ...Options) {
	mat.ChopInPlace(a, getOptions(options).tol)
}

// Eye returns the identity operator of dimension n.
func Eye(n int, options ...Options) mat.Matrix {
	if getOptions(options).sparse {
		return mat.CSRIdentity(n)
	}
	return mat.Identity(n)
}
