package quijy

import (
	"slices"

	"github.com/pkg/errors"

	"quijy/mat"
)

// Kron composes matrices by left-folded Kronecker product. With no arguments
// it returns the 1x1 multiplicative identity; a single argument is returned
// unchanged, not copied. The result is sparse whenever any operand is.
func Kron(ms ...mat.Matrix) mat.Matrix {
	switch len(ms) {
	case 0:
		return mat.M([][]complex128{{1}})
	case 1:
		return ms[0]
	}

	k := mat.Kron(ms[0], ms[1])
	for _, m := range ms[2:] {
		k = mat.Kron(k, m)
	}
	return k
}

// KronPow composes n copies of a.
func KronPow(a mat.Matrix, n int) mat.Matrix {
	ms := make([]mat.Matrix, n)
	for i := range ms {
		ms[i] = a
	}
	return Kron(ms...)
}

// Eyepad tensors the given operators into the subsystems named by inds and
// identities into every other factor of the composite space described by
// dims, always in the original dimension order regardless of the order inds
// are supplied in.
//
// A single operator with several indices is placed at each of them when it
// matches the individual dimensions, or spans them as one merged block when
// its dimension equals the product of adjacent ones. With one operator per
// index, operators pair with indices positionally. Exactly one dims entry
// may be negative, meaning its dimension is inferred from the operator
// placed over it. The Sparse and Dense options force the output
// representation.
func Eyepad(ops []mat.Matrix, dims []int, inds []int, options ...Options) (mat.Matrix, error) {
	opt := getOptions(options)
	if len(ops) == 0 {
		return nil, errors.Errorf("no operators")
	}
	for _, op := range ops {
		if op.Rows() != op.Cols() {
			return nil, errors.Errorf("%d %d", op.Rows(), op.Cols())
		}
	}
	wildcards := 0
	for _, d := range dims {
		switch {
		case d < 0:
			wildcards++
		case d == 0:
			return nil, errors.Errorf("%v", dims)
		}
	}
	if wildcards > 1 {
		return nil, errors.Errorf("%d wildcards in %v", wildcards, dims)
	}
	if len(inds) == 0 {
		return nil, errors.Errorf("no indices")
	}
	seen := make(map[int]bool, len(inds))
	for _, ind := range inds {
		if ind < 0 || ind >= len(dims) {
			return nil, errors.Errorf("index %d out of %v", ind, dims)
		}
		if seen[ind] {
			return nil, errors.Errorf("duplicate index %d", ind)
		}
		seen[ind] = true
	}

	layout, err := placeOps(ops, dims, inds)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	for _, d := range layout.dims {
		if d < 0 {
			return nil, errors.Errorf("cannot infer %v", dims)
		}
	}

	sparse := opt.sparse
	for _, op := range ops {
		if op.IsSparse() {
			sparse = true
		}
	}
	if opt.dense {
		sparse = false
	}

	factors := make([]mat.Matrix, 0, len(dims))
	for pos := 0; pos < len(dims); pos++ {
		switch {
		case layout.opAt[pos] != nil:
			factors = append(factors, layout.opAt[pos])
			pos += layout.span[pos] - 1
		case sparse:
			factors = append(factors, mat.CSRIdentity(layout.dims[pos]))
		default:
			factors = append(factors, mat.Identity(layout.dims[pos]))
		}
	}
	if sparse {
		for i, f := range factors {
			factors[i] = mat.ToCSR(f)
		}
	} else {
		for i, f := range factors {
			factors[i] = mat.ToDense(f)
		}
	}
	// With a single factor Kron would hand back the operator itself; the
	// result must be safe for the caller to mutate.
	if len(factors) == 1 {
		return mat.Clone(factors[0]), nil
	}
	return Kron(factors...), nil
}

// layout records which operator sits at which dimension position, how many
// adjacent factors it spans, and the dimension list with wildcards resolved.
type layout struct {
	dims []int
	opAt map[int]mat.Matrix
	span map[int]int
}

func placeOps(ops []mat.Matrix, dims []int, inds []int) (layout, error) {
	l := layout{dims: slices.Clone(dims), opAt: make(map[int]mat.Matrix), span: make(map[int]int)}

	// Positional pairing: each operator matches its single index.
	pairwise := func(ops []mat.Matrix, inds []int) bool {
		if len(ops) != len(inds) {
			return false
		}
		for i, op := range ops {
			d := dims[inds[i]]
			if d >= 0 && d != op.Rows() {
				return false
			}
		}
		return true
	}

	// slices.Repeat(ops, len(inds)), spelled out for Go toolchains
	// predating its addition to the standard library.
	repeated := make([]mat.Matrix, 0, len(ops)*len(inds))
	for i := 0; i < len(inds); i++ {
		repeated = append(repeated, ops...)
	}

	switch {
	case len(ops) == 1 && pairwise(repeated, inds):
		for _, ind := range inds {
			l.place(ops[0], ind)
		}
	case pairwise(ops, inds):
		for i, op := range ops {
			l.place(op, inds[i])
		}
	default:
		// Operators larger than single factors consume runs of adjacent
		// indices, in ascending index order.
		sorted := slices.Clone(inds)
		slices.Sort(sorted)
		for _, op := range ops {
			n, err := l.placeSpan(op, sorted)
			if err != nil {
				return layout{}, err
			}
			sorted = sorted[n:]
		}
		if len(sorted) > 0 {
			return layout{}, errors.Errorf("unconsumed indices %v", sorted)
		}
	}
	return l, nil
}

func (l *layout) place(op mat.Matrix, ind int) {
	l.opAt[ind] = op
	l.span[ind] = 1
	if l.dims[ind] < 0 {
		l.dims[ind] = op.Rows()
	}
}

// placeSpan assigns op to a run of adjacent indices at the front of sorted
// whose dimensions multiply to the operator dimension, and reports how many
// indices were consumed.
func (l *layout) placeSpan(op mat.Matrix, sorted []int) (int, error) {
	if len(sorted) == 0 {
		return 0, errors.Errorf("no index for %dx%d operator", op.Rows(), op.Cols())
	}
	start := sorted[0]
	size := 1
	wildcard := -1
	n := 0
	for _, ind := range sorted {
		if ind != start+n {
			return 0, errors.Errorf("nonadjacent index %d for %dx%d operator", ind, op.Rows(), op.Cols())
		}
		switch {
		case l.dims[ind] < 0:
			wildcard = ind
		default:
			size *= l.dims[ind]
		}
		n++
		if wildcard == -1 && size == op.Rows() {
			break
		}
		if wildcard != -1 && op.Rows()%size == 0 {
			break
		}
		if size > op.Rows() {
			return 0, errors.Errorf("%d %d", size, op.Rows())
		}
	}
	if wildcard != -1 {
		if op.Rows()%size != 0 {
			return 0, errors.Errorf("%d %d", size, op.Rows())
		}
		l.dims[wildcard] = op.Rows() / size
		size = op.Rows()
	}
	if size != op.Rows() {
		return 0, errors.Errorf("%d %d", size, op.Rows())
	}
	l.opAt[start] = op
	l.span[start] = n
	return n, nil
}
