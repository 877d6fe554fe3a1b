package quijy

import (
	"fmt"
	"math/rand"

	"quijy/mat"
)

// RandMatrix returns an n x n matrix with uniform complex entries in
// [-1, 1) + [-1, 1)i.
func RandMatrix(n int) *mat.Dense {
	a := mat.Zeros(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, complex(rand.Float64()*2-1, rand.Float64()*2-1))
		}
	}
	return a
}

// RandKet returns a normalized random pure state.
func RandKet(n int) *mat.Dense {
	v := mat.Zeros(n, 1)
	for i := 0; i < n; i++ {
		v.Set(i, 0, complex(rand.Float64()*2-1, rand.Float64()*2-1))
	}
	if err := NmlzInPlace(v); err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return v
}

// RandRho returns a random density operator: Hermitian, positive
// semi-definite and unit trace.
func RandRho(n int) *mat.Dense {
	a := RandMatrix(n)
	rho := mat.Mul(a, a.Adjoint()).(*mat.Dense)
	if err := NmlzInPlace(rho); err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return rho
}
