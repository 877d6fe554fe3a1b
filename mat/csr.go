package mat

import (
	"cmp"
	"fmt"
	"math/cmplx"
	"slices"
)

type vRowCol struct {
	v   complex128
	row int
	col int
}

func rowMajor(a, b vRowCol) int {
	if c := cmp.Compare(a.row, b.row); c != 0 {
		return c
	}
	return cmp.Compare(a.col, b.col)
}

// CSR is a compressed-row sparse complex matrix. Entries within a row are
// ordered by column and no explicit zeros are stored.
type CSR struct {
	rows int
	cols int

	rowPtr []int
	colInd []int
	val    []complex128
}

func CSRM(dense [][]complex128) *CSR {
	return M(dense).CSR()
}

func CSRZeros(rows, cols int) *CSR {
	return &CSR{rows: rows, cols: cols, rowPtr: make([]int, rows+1)}
}

func CSRIdentity(n int) *CSR {
	a := &CSR{rows: n, cols: n, rowPtr: make([]int, n+1), colInd: make([]int, n), val: make([]complex128, n)}
	for i := 0; i < n; i++ {
		a.rowPtr[i+1] = i + 1
		a.colInd[i] = i
		a.val[i] = 1
	}
	return a
}

// csrFromSorted builds a CSR matrix from row-major sorted triplets without
// duplicate positions or explicit zeros.
func csrFromSorted(rows, cols int, ts []vRowCol) *CSR {
	a := &CSR{rows: rows, cols: cols, rowPtr: make([]int, rows+1), colInd: make([]int, 0, len(ts)), val: make([]complex128, 0, len(ts))}
	for _, t := range ts {
		a.rowPtr[t.row+1]++
		a.colInd = append(a.colInd, t.col)
		a.val = append(a.val, t.v)
	}
	for i := 0; i < rows; i++ {
		a.rowPtr[i+1] += a.rowPtr[i]
	}
	return a
}

func (a *CSR) Rows() int      { return a.rows }
func (a *CSR) Cols() int      { return a.cols }
func (a *CSR) IsSparse() bool { return true }
func (a *CSR) NNZ() int       { return len(a.val) }

func (a *CSR) At(i, j int) complex128 {
	row := a.colInd[a.rowPtr[i]:a.rowPtr[i+1]]
	k, ok := slices.BinarySearch(row, j)
	if !ok {
		return 0
	}
	return a.val[a.rowPtr[i]+k]
}

func (a *CSR) Clone() *CSR {
	return &CSR{
		rows:   a.rows,
		cols:   a.cols,
		rowPtr: slices.Clone(a.rowPtr),
		colInd: slices.Clone(a.colInd),
		val:    slices.Clone(a.val),
	}
}

// Scale multiplies every stored entry by c in place.
func (a *CSR) Scale(c complex128) {
	for i := range a.val {
		a.val[i] *= c
	}
}

// MaxAbs is the largest magnitude among the stored entries.
func (a *CSR) MaxAbs() float64 {
	var m float64
	for _, v := range a.val {
		m = max(m, cmplx.Abs(v))
	}
	return m
}

func (a *CSR) Trace() complex128 {
	if a.rows != a.cols {
		panic(fmt.Sprintf("%d %d", a.rows, a.cols))
	}
	var t complex128
	for i := 0; i < a.rows; i++ {
		t += a.At(i, i)
	}
	return t
}

// Adjoint returns the conjugate transpose.
func (a *CSR) Adjoint() *CSR {
	ts := make([]vRowCol, 0, len(a.val))
	a.All()(func(ij [2]int, v complex128) bool {
		ts = append(ts, vRowCol{v: conj(v), row: ij[1], col: ij[0]})
		return true
	})
	slices.SortFunc(ts, rowMajor)
	return csrFromSorted(a.cols, a.rows, ts)
}

func (a *CSR) Dense() *Dense {
	d := Zeros(a.rows, a.cols)
	a.All()(func(ij [2]int, v complex128) bool {
		d.Set(ij[0], ij[1], v)
		return true
	})
	return d
}

func (a *CSR) String() string { return format(a) }

// All iterates the stored entries in row-major order, yielding the
// {row, col} position and the value.
func (a *CSR) All() func(yield func([2]int, complex128) bool) {
	return func(yield func([2]int, complex128) bool) {
		for i := 0; i < a.rows; i++ {
			for k := a.rowPtr[i]; k < a.rowPtr[i+1]; k++ {
				if !yield([2]int{i, a.colInd[k]}, a.val[k]) {
					return
				}
			}
		}
	}
}

func (a *CSR) chop(tol float64) {
	for k, v := range a.val {
		a.val[k] = chopValue(v, tol)
	}

	nnz := 0
	for i := 0; i < a.rows; i++ {
		from, to := a.rowPtr[i], a.rowPtr[i+1]
		a.rowPtr[i] = nnz
		for k := from; k < to; k++ {
			if a.val[k] == 0 {
				continue
			}
			a.colInd[nnz] = a.colInd[k]
			a.val[nnz] = a.val[k]
			nnz++
		}
	}
	a.rowPtr[a.rows] = nnz
	a.colInd = a.colInd[:nnz]
	a.val = a.val[:nnz]
}

func csrKron(a, b *CSR) *CSR {
	k := &CSR{
		rows:   a.rows * b.rows,
		cols:   a.cols * b.cols,
		rowPtr: make([]int, a.rows*b.rows+1),
		colInd: make([]int, 0, len(a.val)*len(b.val)),
		val:    make([]complex128, 0, len(a.val)*len(b.val)),
	}
	for ar := 0; ar < a.rows; ar++ {
		for br := 0; br < b.rows; br++ {
			for ka := a.rowPtr[ar]; ka < a.rowPtr[ar+1]; ka++ {
				for kb := b.rowPtr[br]; kb < b.rowPtr[br+1]; kb++ {
					k.colInd = append(k.colInd, a.colInd[ka]*b.cols+b.colInd[kb])
					k.val = append(k.val, a.val[ka]*b.val[kb])
				}
			}
			k.rowPtr[ar*b.rows+br+1] = len(k.val)
		}
	}
	return k
}

func csrMul(a, b *CSR) *CSR {
	c := CSRZeros(a.rows, b.cols)
	acc := make([]complex128, b.cols)
	touched := make([]int, 0, b.cols)
	for i := 0; i < a.rows; i++ {
		touched = touched[:0]
		for ka := a.rowPtr[i]; ka < a.rowPtr[i+1]; ka++ {
			j, av := a.colInd[ka], a.val[ka]
			for kb := b.rowPtr[j]; kb < b.rowPtr[j+1]; kb++ {
				col := b.colInd[kb]
				if acc[col] == 0 {
					touched = append(touched, col)
				}
				acc[col] += av * b.val[kb]
			}
		}
		slices.Sort(touched)
		for _, col := range touched {
			if acc[col] != 0 {
				c.colInd = append(c.colInd, col)
				c.val = append(c.val, acc[col])
			}
			acc[col] = 0
		}
		c.rowPtr[i+1] = len(c.val)
	}
	return c
}

func csrAdd(a, b *CSR) *CSR {
	c := CSRZeros(a.rows, a.cols)
	for i := 0; i < a.rows; i++ {
		ka, kb := a.rowPtr[i], b.rowPtr[i]
		for ka < a.rowPtr[i+1] || kb < b.rowPtr[i+1] {
			var col int
			var v complex128
			switch {
			case kb >= b.rowPtr[i+1] || (ka < a.rowPtr[i+1] && a.colInd[ka] < b.colInd[kb]):
				col, v = a.colInd[ka], a.val[ka]
				ka++
			case ka >= a.rowPtr[i+1] || b.colInd[kb] < a.colInd[ka]:
				col, v = b.colInd[kb], b.val[kb]
				kb++
			default:
				col, v = a.colInd[ka], a.val[ka]+b.val[kb]
				ka++
				kb++
			}
			if v != 0 {
				c.colInd = append(c.colInd, col)
				c.val = append(c.val, v)
			}
		}
		c.rowPtr[i+1] = len(c.val)
	}
	return c
}

func conj(v complex128) complex128 {
	return complex(real(v), -imag(v))
}
