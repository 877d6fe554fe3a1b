package mat

import (
	"fmt"
	"math"
	"testing"
)

func TestKron(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a [][]complex128
		b [][]complex128
		c [][]complex128
	}{
		{
			a: [][]complex128{
				{1, -4, 7},
				{-2, 0, 3},
			},
			b: [][]complex128{
				{8, -9, -6, 5},
				{1, -3, 0, 7},
				{2, 8, -8, -3},
				{1, 2, -5, -1},
			},
			c: [][]complex128{
				{8, -9, -6, 5, -32, 36, 24, -20, 56, -63, -42, 35},
				{1, -3, 0, 7, -4, 12, 0, -28, 7, -21, 0, 49},
				{2, 8, -8, -3, -8, -32, 32, 12, 14, 56, -56, -21},
				{1, 2, -5, -1, -4, -8, 20, 4, 7, 14, -35, -7},
				{-16, 18, 12, -10, 0, 0, 0, 0, 24, -27, -18, 15},
				{-2, 6, 0, -14, 0, 0, 0, 0, 3, -9, 0, 21},
				{-4, -16, 16, 6, 0, 0, 0, 0, 6, 24, -24, -9},
				{-2, -4, 10, 2, 0, 0, 0, 0, 3, 6, -15, -3},
			},
		},
		// Scalar kronecker.
		{
			a: [][]complex128{{1}},
			b: [][]complex128{
				{1, 2},
				{3, 4},
			},
			c: [][]complex128{
				{1, 2},
				{3, 4},
			},
		},
		// Complex entries.
		{
			a: [][]complex128{{1i, 2}},
			b: [][]complex128{
				{1, -1i},
				{0, 3},
			},
			c: [][]complex128{
				{1i, 1, 2, -2i},
				{0, 3i, 0, 6},
			},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%s", M(test.a)), func(t *testing.T) {
			t.Parallel()
			want := M(test.c)

			k := Kron(M(test.a), M(test.b))
			if k.IsSparse() {
				t.Fatalf("dense operands gave a sparse result")
			}
			if !EqualApprox(k, want, 0) {
				t.Fatalf("%s, expected %s", k, want)
			}

			ks := Kron(CSRM(test.a), CSRM(test.b))
			if !ks.IsSparse() {
				t.Fatalf("sparse operands gave a dense result")
			}
			if !EqualApprox(ks, want, 0) {
				t.Fatalf("%s, expected %s", ks, want)
			}

			km := Kron(M(test.a), CSRM(test.b))
			if !km.IsSparse() {
				t.Fatalf("mixed operands gave a dense result")
			}
			if !EqualApprox(km, want, 0) {
				t.Fatalf("%s, expected %s", km, want)
			}
		})
	}
}

func TestMul(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a [][]complex128
		b [][]complex128
		c [][]complex128
	}{
		{
			a: [][]complex128{
				{1, 2},
				{3, 4},
			},
			b: [][]complex128{
				{0, 1},
				{1, 0},
			},
			c: [][]complex128{
				{2, 1},
				{4, 3},
			},
		},
		// Outer product of a column with a row.
		{
			a: [][]complex128{{1}, {2}, {3i}},
			b: [][]complex128{{1, 2, -3i}},
			c: [][]complex128{
				{1, 2, -3i},
				{2, 4, -6i},
				{3i, 6i, 9},
			},
		},
		// Rectangular, accumulating over the inner dimension.
		{
			a: [][]complex128{
				{1, 2, 0},
				{0, 1i, 3},
			},
			b: [][]complex128{
				{1, 0},
				{2, 1},
				{0, -1i},
			},
			c: [][]complex128{
				{5, 2},
				{2i, -2i},
			},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%s", M(test.a)), func(t *testing.T) {
			t.Parallel()
			want := M(test.c)

			p := Mul(M(test.a), M(test.b))
			if !EqualApprox(p, want, 1e-12) {
				t.Fatalf("%s, expected %s", p, want)
			}

			ps := Mul(CSRM(test.a), CSRM(test.b))
			if !ps.IsSparse() {
				t.Fatalf("sparse operands gave a dense result")
			}
			if !EqualApprox(ps, want, 1e-12) {
				t.Fatalf("%s, expected %s", ps, want)
			}

			pm := Mul(M(test.a), CSRM(test.b))
			if pm.IsSparse() {
				t.Fatalf("mixed operands gave a sparse result")
			}
			if !EqualApprox(pm, want, 1e-12) {
				t.Fatalf("%s, expected %s", pm, want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a          [][]complex128
		b          [][]complex128
		c          [][]complex128
		numNonZero int
	}{
		{
			a: [][]complex128{
				{1, 0},
				{0, 2i},
			},
			b: [][]complex128{
				{-1, 0},
				{2, -5},
			},
			c: [][]complex128{
				{0, 0},
				{2, 2i - 5},
			},
			numNonZero: 2,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%s", M(test.a)), func(t *testing.T) {
			t.Parallel()
			want := M(test.c)

			s := Add(M(test.a), M(test.b))
			if !EqualApprox(s, want, 0) {
				t.Fatalf("%s, expected %s", s, want)
			}

			ss := Add(CSRM(test.a), CSRM(test.b))
			if !EqualApprox(ss, want, 0) {
				t.Fatalf("%s, expected %s", ss, want)
			}
			// Cancelled entries must leave the nonzero structure.
			if ss.(*CSR).NNZ() != test.numNonZero {
				t.Fatalf("%d, expected %d", ss.(*CSR).NNZ(), test.numNonZero)
			}
		})
	}
}

func TestAdjoint(t *testing.T) {
	t.Parallel()
	a := [][]complex128{
		{1 + 2i, 0, -3i},
		{4, 5i, 0},
	}
	want := M([][]complex128{
		{1 - 2i, 4},
		{0, -5i},
		{3i, 0},
	})

	if got := M(a).Adjoint(); !EqualApprox(got, want, 0) {
		t.Fatalf("%s, expected %s", got, want)
	}
	if got := CSRM(a).Adjoint(); !EqualApprox(got, want, 0) {
		t.Fatalf("%s, expected %s", got, want)
	}
}

func TestTrace(t *testing.T) {
	t.Parallel()
	a := [][]complex128{
		{2, 1},
		{4, 5i},
	}
	want := 2 + 5i
	if got := M(a).Trace(); got != want {
		t.Fatalf("%v, expected %v", got, want)
	}
	if got := CSRM(a).Trace(); got != want {
		t.Fatalf("%v, expected %v", got, want)
	}
}

func TestChopCSR(t *testing.T) {
	t.Parallel()
	a := CSRM([][]complex128{
		{1, 1e-14},
		{0.1 + 0.2i, 0},
	})
	if a.NNZ() != 3 {
		t.Fatalf("%d, expected %d", a.NNZ(), 3)
	}

	ChopInPlace(a, 0.11)
	want := M([][]complex128{
		{1, 0},
		{0.2i, 0},
	})
	if !EqualApprox(a, want, 0) {
		t.Fatalf("%s, expected %s", a, want)
	}
	if a.NNZ() != 2 {
		t.Fatalf("%d, expected %d", a.NNZ(), 2)
	}
}

func TestHermEig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a    [][]complex128
		vals []float64
	}{
		{
			a: [][]complex128{
				{1, 0},
				{0, -1},
			},
			vals: []float64{-1, 1},
		},
		{
			a: [][]complex128{
				{0, -1i},
				{1i, 0},
			},
			vals: []float64{-1, 1},
		},
		{
			a: [][]complex128{
				{2, 1 + 1i},
				{1 - 1i, 3},
			},
			// Eigenvalues of [[2, 1+i], [1-i, 3]]: (5 +- sqrt(9))/2.
			vals: []float64{1, 4},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%s", M(test.a)), func(t *testing.T) {
			t.Parallel()
			got := HermEig(M(test.a))
			if len(got) != len(test.vals) {
				t.Fatalf("%d, expected %d", len(got), len(test.vals))
			}
			for i, v := range got {
				if math.Abs(v-test.vals[i]) > 1e-12 {
					t.Fatalf("%v, expected %v", got, test.vals)
				}
			}
		})
	}
}
