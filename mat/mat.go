// Package mat provides complex matrices in dense and compressed-row form.
//
// The two representations are behaviorally interchangeable; every operation
// has a dense and a sparse path. Dense storage and dense products are
// delegated to gonum. Operations here panic on impossible shapes, validation
// with error returns belongs to the callers at the toolkit boundary.
package mat

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	PauliX = [][]complex128{
		{0, 1},
		{1, 0},
	}
	PauliY = [][]complex128{
		{0, -1i},
		{1i, 0},
	}
	PauliZ = [][]complex128{
		{1, 0},
		{0, -1},
	}
)

// Matrix is a complex matrix, either dense or compressed-row.
type Matrix interface {
	Rows() int
	Cols() int
	At(i, j int) complex128
	IsSparse() bool
}

// Dense is a dense complex matrix backed by a gonum CDense.
type Dense struct {
	m *mat.CDense
}

func M(dense [][]complex128) *Dense {
	rows, cols := len(dense), len(dense[0])
	data := make([]complex128, 0, rows*cols)
	for _, row := range dense {
		if len(row) != cols {
			panic(fmt.Sprintf("%d %d", len(row), cols))
		}
		data = append(data, row...)
	}
	return &Dense{m: mat.NewCDense(rows, cols, data)}
}

// Vec returns the column vector with the given entries.
func Vec(vs []complex128) *Dense {
	a := Zeros(len(vs), 1)
	for i, v := range vs {
		a.Set(i, 0, v)
	}
	return a
}

func Zeros(rows, cols int) *Dense {
	return &Dense{m: mat.NewCDense(rows, cols, nil)}
}

func Identity(n int) *Dense {
	a := Zeros(n, n)
	for i := 0; i < n; i++ {
		a.m.Set(i, i, 1)
	}
	return a
}

func (a *Dense) Rows() int                  { rows, _ := a.m.Dims(); return rows }
func (a *Dense) Cols() int                  { _, cols := a.m.Dims(); return cols }
func (a *Dense) At(i, j int) complex128     { return a.m.At(i, j) }
func (a *Dense) Set(i, j int, v complex128) { a.m.Set(i, j, v) }
func (a *Dense) IsSparse() bool             { return false }

// CDense exposes the underlying gonum matrix.
func (a *Dense) CDense() *mat.CDense { return a.m }

func (a *Dense) Clone() *Dense {
	b := Zeros(a.Rows(), a.Cols())
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			b.m.Set(i, j, a.m.At(i, j))
		}
	}
	return b
}

// Scale multiplies every entry by c in place.
func (a *Dense) Scale(c complex128) {
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			a.m.Set(i, j, c*a.m.At(i, j))
		}
	}
}

// Adjoint returns the conjugate transpose.
func (a *Dense) Adjoint() *Dense {
	b := Zeros(a.Cols(), a.Rows())
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			b.m.Set(j, i, cmplx.Conj(a.m.At(i, j)))
		}
	}
	return b
}

func (a *Dense) Trace() complex128 {
	if a.Rows() != a.Cols() {
		panic(fmt.Sprintf("%d %d", a.Rows(), a.Cols()))
	}
	var t complex128
	for i := 0; i < a.Rows(); i++ {
		t += a.m.At(i, i)
	}
	return t
}

func (a *Dense) CSR() *CSR {
	ts := make([]vRowCol, 0)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if v := a.m.At(i, j); v != 0 {
				ts = append(ts, vRowCol{v: v, row: i, col: j})
			}
		}
	}
	return csrFromSorted(a.Rows(), a.Cols(), ts)
}

func (a *Dense) String() string { return format(a) }

// Kron is the Kronecker product. The result is sparse whenever any operand
// is sparse.
func Kron(a, b Matrix) Matrix {
	as, aok := a.(*CSR)
	bs, bok := b.(*CSR)
	switch {
	case aok && bok:
		return csrKron(as, bs)
	case aok:
		return csrKron(as, ToCSR(b))
	case bok:
		return csrKron(ToCSR(a), bs)
	}
	return kronDense(a.(*Dense), b.(*Dense))
}

func kronDense(a, b *Dense) *Dense {
	ar, ac := a.Rows(), a.Cols()
	br, bc := b.Rows(), b.Cols()
	k := Zeros(ar*br, ac*bc)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			av := a.m.At(i, j)
			if av == 0 {
				continue
			}
			for y := 0; y < br; y++ {
				for x := 0; x < bc; x++ {
					k.m.Set(i*br+y, j*bc+x, av*b.m.At(y, x))
				}
			}
		}
	}
	return k
}

// Mul is the matrix product. The result is sparse iff both operands are.
func Mul(a, b Matrix) Matrix {
	if a.Cols() != b.Rows() {
		panic(fmt.Sprintf("%d %d", a.Cols(), b.Rows()))
	}
	as, aok := a.(*CSR)
	bs, bok := b.(*CSR)
	if aok && bok {
		return csrMul(as, bs)
	}
	c := Zeros(a.Rows(), b.Cols())
	for i := 0; i < a.Rows(); i++ {
		for k := 0; k < a.Cols(); k++ {
			av := a.At(i, k)
			if av == 0 {
				continue
			}
			for j := 0; j < b.Cols(); j++ {
				c.m.Set(i, j, c.m.At(i, j)+av*b.At(k, j))
			}
		}
	}
	return c
}

// Add returns a + b.
func Add(a, b Matrix) Matrix {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		panic(fmt.Sprintf("%d %d %d %d", a.Rows(), a.Cols(), b.Rows(), b.Cols()))
	}
	as, aok := a.(*CSR)
	bs, bok := b.(*CSR)
	if aok && bok {
		return csrAdd(as, bs)
	}
	c := Zeros(a.Rows(), a.Cols())
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			c.m.Set(i, j, a.At(i, j)+b.At(i, j))
		}
	}
	return c
}

// Scale returns c*a without modifying a.
func Scale(c complex128, a Matrix) Matrix {
	switch a := a.(type) {
	case *CSR:
		b := a.Clone()
		b.Scale(c)
		return b
	default:
		b := a.(*Dense).Clone()
		b.Scale(c)
		return b
	}
}

// Adjoint returns the conjugate transpose, preserving the representation.
func Adjoint(a Matrix) Matrix {
	switch a := a.(type) {
	case *CSR:
		return a.Adjoint()
	default:
		return a.(*Dense).Adjoint()
	}
}

// Clone returns a copy, preserving the representation.
func Clone(a Matrix) Matrix {
	switch a := a.(type) {
	case *CSR:
		return a.Clone()
	default:
		return a.(*Dense).Clone()
	}
}

// ToDense converts to the dense representation.
func ToDense(a Matrix) *Dense {
	if d, ok := a.(*Dense); ok {
		return d
	}
	return a.(*CSR).Dense()
}

// ToCSR converts to the compressed-row representation.
func ToCSR(a Matrix) *CSR {
	if s, ok := a.(*CSR); ok {
		return s
	}
	return a.(*Dense).CSR()
}

// NNZ is the number of stored nonzero entries.
func NNZ(a Matrix) int {
	if s, ok := a.(*CSR); ok {
		return len(s.val)
	}
	n := 0
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if a.At(i, j) != 0 {
				n++
			}
		}
	}
	return n
}

// MaxAbsDiff is the largest entrywise |a-b|.
func MaxAbsDiff(a, b Matrix) float64 {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		panic(fmt.Sprintf("%d %d %d %d", a.Rows(), a.Cols(), b.Rows(), b.Cols()))
	}
	var d float64
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			d = max(d, cmplx.Abs(a.At(i, j)-b.At(i, j)))
		}
	}
	return d
}

func EqualApprox(a, b Matrix, tol float64) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	return MaxAbsDiff(a, b) <= tol
}

// Chop zeroes the real and imaginary parts of every entry independently when
// their magnitude is below tol, returning a new matrix.
func Chop(a Matrix, tol float64) Matrix {
	b := Clone(a)
	ChopInPlace(b, tol)
	return b
}

// ChopInPlace is Chop mutating its argument. On a CSR matrix the zeroed
// entries are removed from the nonzero structure.
func ChopInPlace(a Matrix, tol float64) {
	switch a := a.(type) {
	case *CSR:
		a.chop(tol)
	default:
		d := a.(*Dense)
		for i := 0; i < d.Rows(); i++ {
			for j := 0; j < d.Cols(); j++ {
				d.m.Set(i, j, chopValue(d.m.At(i, j), tol))
			}
		}
	}
}

func chopValue(v complex128, tol float64) complex128 {
	re, im := real(v), imag(v)
	if math.Abs(re) < tol {
		re = 0
	}
	if math.Abs(im) < tol {
		im = 0
	}
	return complex(re, im)
}

func format(a Matrix) string {
	lines := make([]string, 0, a.Rows())
	for i := 0; i < a.Rows(); i++ {
		cs := make([]string, 0, a.Cols())
		for j := 0; j < a.Cols(); j++ {
			v := a.At(i, j)
			switch {
			case imag(v) == 0:
				cs = append(cs, formatF(real(v)))
			case real(v) == 0:
				cs = append(cs, formatF(imag(v))+"i")
			default:
				cs = append(cs, formatF(real(v))+"+"+formatF(imag(v))+"i")
			}
		}
		lines = append(lines, strings.Join(cs, "\t"))
	}
	return strings.Join(lines, "\n")
}

func formatF(v float64) string {
	// If v is 0 or -0, return "0" immediately to avoid returning "-0".
	if v == 0 {
		return " 0"
	}

	s := fmt.Sprintf("%v", v)

	// Add a space before non-negative numbers to align with other negative numbers in the same column.
	if v >= 0 {
		s = " " + s
	}

	return s
}
