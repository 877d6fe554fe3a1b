package mat

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// HermEig returns the eigenvalues of a Hermitian matrix in ascending order.
// A Hermitian H = A + iB embeds into the real symmetric [[A, -B], [B, A]],
// whose spectrum is that of H with every eigenvalue doubled; the doubled
// spectrum is folded back by averaging adjacent pairs.
func HermEig(a Matrix) []float64 {
	n := a.Rows()
	if a.Cols() != n {
		panic(fmt.Sprintf("%d %d", n, a.Cols()))
	}

	sym := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := a.At(i, j)
			sym.SetSym(i, j, real(v))
			sym.SetSym(n+i, n+j, real(v))
			sym.SetSym(i, n+j, -imag(v))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, false); !ok {
		panic("eig.Factorize failed")
	}
	vals := eig.Values(nil)

	folded := make([]float64, n)
	for i := range folded {
		folded[i] = (vals[2*i] + vals[2*i+1]) / 2
	}
	return folded
}
