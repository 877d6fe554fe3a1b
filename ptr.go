package quijy

import (
	"slices"

	"github.com/pkg/errors"

	"quijy/mat"
)

// Ptr is the partial trace: it reduces a state on the composite space
// described by dims to the density operator on the subsystems named by keep,
// tracing out all others. The input may be a ket, a bra or an operator,
// dense or sparse; the result is always a dense operator with the kept
// subsystems ordered as in dims, whatever order keep is supplied in.
//
// Kets and bras take a reshape-and-contract path that never forms the full
// density operator; it produces the same values as the general operator
// path.
func Ptr(a mat.Matrix, dims []int, keep []int) (*mat.Dense, error) {
	kept, err := checkSubsystems(a, dims, keep)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	// Keeping every subsystem reduces nothing: return the density-operator
	// form of the input.
	if len(kept) == len(dims) {
		if isVec(a) && !IsOp(a) {
			v := a
			if IsBra(a) {
				v = mat.Adjoint(a)
			}
			return mat.ToDense(mat.Mul(v, mat.Adjoint(v))), nil
		}
		return mat.ToDense(a).Clone(), nil
	}

	kOff, tOff := subsystemOffsets(dims, kept)

	switch {
	case isVec(a) && !IsOp(a):
		v := a
		if IsBra(a) {
			v = mat.Adjoint(a)
		}
		return ptrKet(v, kOff, tOff), nil
	case a.IsSparse():
		return ptrCSR(a.(*mat.CSR), dims, kept), nil
	default:
		return ptrDense(mat.ToDense(a), kOff, tOff), nil
	}
}

func checkSubsystems(a mat.Matrix, dims []int, keep []int) ([]int, error) {
	n := 1
	for _, d := range dims {
		if d <= 0 {
			return nil, errors.Errorf("%v", dims)
		}
		n *= d
	}
	switch {
	case isVec(a) && !IsOp(a):
		if a.Rows()*a.Cols() != n {
			return nil, errors.Errorf("%d %d %v", a.Rows(), a.Cols(), dims)
		}
	case IsOp(a):
		if a.Rows() != n {
			return nil, errors.Errorf("%d %v", a.Rows(), dims)
		}
	default:
		return nil, errors.Errorf("%d %d", a.Rows(), a.Cols())
	}

	if len(keep) == 0 {
		return nil, errors.Errorf("no kept subsystems")
	}
	kept := slices.Clone(keep)
	slices.Sort(kept)
	for i, k := range kept {
		if k < 0 || k >= len(dims) {
			return nil, errors.Errorf("index %d out of %v", k, dims)
		}
		if i > 0 && kept[i-1] == k {
			return nil, errors.Errorf("duplicate index %d", k)
		}
	}
	return kept, nil
}

// subsystemOffsets decomposes the flat index of the composite space into a
// kept part and a traced part: every flat index is exactly one
// kOff[i]+tOff[e]. Both offset lists are in row-major order of their
// subsystems.
func subsystemOffsets(dims []int, kept []int) (kOff, tOff []int) {
	strides := make([]int, len(dims))
	s := 1
	for pos := len(dims) - 1; pos >= 0; pos-- {
		strides[pos] = s
		s *= dims[pos]
	}

	offsets := func(positions []int) []int {
		offs := []int{0}
		for _, pos := range positions {
			next := make([]int, 0, len(offs)*dims[pos])
			for _, o := range offs {
				for d := 0; d < dims[pos]; d++ {
					next = append(next, o+d*strides[pos])
				}
			}
			offs = next
		}
		return offs
	}

	traced := make([]int, 0, len(dims)-len(kept))
	for pos := range dims {
		if !slices.Contains(kept, pos) {
			traced = append(traced, pos)
		}
	}
	return offsets(kept), offsets(traced)
}

// ptrKet contracts a pure state directly: rho[i,j] = sum_e v[i,e]*conj(v[j,e]).
func ptrKet(v mat.Matrix, kOff, tOff []int) *mat.Dense {
	kn := len(kOff)
	rho := mat.Zeros(kn, kn)
	for _, e := range tOff {
		for i := 0; i < kn; i++ {
			vi := v.At(kOff[i]+e, 0)
			if vi == 0 {
				continue
			}
			for j := 0; j < kn; j++ {
				vj := v.At(kOff[j]+e, 0)
				rho.Set(i, j, rho.At(i, j)+vi*complex(real(vj), -imag(vj)))
			}
		}
	}
	return rho
}

// ptrDense sums the diagonal blocks of the traced subsystems.
func ptrDense(a *mat.Dense, kOff, tOff []int) *mat.Dense {
	kn := len(kOff)
	rho := mat.Zeros(kn, kn)
	for _, e := range tOff {
		for i := 0; i < kn; i++ {
			for j := 0; j < kn; j++ {
				rho.Set(i, j, rho.At(i, j)+a.At(kOff[i]+e, kOff[j]+e))
			}
		}
	}
	return rho
}

// ptrCSR visits only the stored entries, keeping those whose traced
// sub-indices agree on the row and column side.
func ptrCSR(a *mat.CSR, dims []int, kept []int) *mat.Dense {
	kn := 1
	for _, k := range kept {
		kn *= dims[k]
	}
	rho := mat.Zeros(kn, kn)
	a.All()(func(ij [2]int, v complex128) bool {
		ri, re := splitIndex(ij[0], dims, kept)
		ci, ce := splitIndex(ij[1], dims, kept)
		if re != ce {
			return true
		}
		rho.Set(ri, ci, rho.At(ri, ci)+v)
		return true
	})
	return rho
}

// splitIndex decomposes a flat composite index into its kept and traced
// sub-indices.
func splitIndex(idx int, dims []int, kept []int) (kIdx, tIdx int) {
	digits := make([]int, len(dims))
	for pos := len(dims) - 1; pos >= 0; pos-- {
		digits[pos] = idx % dims[pos]
		idx /= dims[pos]
	}
	for pos, d := range digits {
		if slices.Contains(kept, pos) {
			kIdx = kIdx*dims[pos] + d
		} else {
			tIdx = tIdx*dims[pos] + d
		}
	}
	return kIdx, tIdx
}
