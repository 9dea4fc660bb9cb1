// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package vectorize

import (
	"math"
	"sort"
)

// Sparse is a sparse vector: parallel slices of strictly ascending
// column indices and their values. The zero value is the zero vector.
type Sparse struct {
	Indices []int32
	Values  []float64
}

// FromMap builds a Sparse from a column→value map, dropping zeros.
func FromMap(entries map[int]float64) Sparse {
	if len(entries) == 0 {
		return Sparse{}
	}
	indices := make([]int32, 0, len(entries))
	for idx, val := range entries {
		if val != 0 {
			indices = append(indices, int32(idx))
		}
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = entries[int(idx)]
	}
	return Sparse{Indices: indices, Values: values}
}

// Dot returns the inner product of a and b.
func Dot(a, b Sparse) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] < b.Indices[j]:
			i++
		case a.Indices[i] > b.Indices[j]:
			j++
		default:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		}
	}
	return sum
}

// Norm returns the L2 norm of v.
func (v Sparse) Norm() float64 {
	var sum float64
	for _, val := range v.Values {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// Scale returns v multiplied by s.
func (v Sparse) Scale(s float64) Sparse {
	out := Sparse{
		Indices: v.Indices,
		Values:  make([]float64, len(v.Values)),
	}
	for i, val := range v.Values {
		out.Values[i] = val * s
	}
	return out
}

// Cosine returns the cosine similarity of a and b, or 0 when either
// vector has zero norm.
func Cosine(a, b Sparse) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// WeightedSum returns sum(weights[i] * vectors[i]). The slices must have
// equal length.
func WeightedSum(weights []float64, vectors []Sparse) Sparse {
	acc := make(map[int]float64)
	for i, vec := range vectors {
		w := weights[i]
		if w == 0 {
			continue
		}
		for j, idx := range vec.Indices {
			acc[int(idx)] += w * vec.Values[j]
		}
	}
	return FromMap(acc)
}

// Mean returns the element-wise arithmetic mean of vectors. The mean of
// a single vector is that vector exactly; the mean of none is the zero
// vector.
func Mean(vectors []Sparse) Sparse {
	if len(vectors) == 0 {
		return Sparse{}
	}
	if len(vectors) == 1 {
		return vectors[0]
	}
	weights := make([]float64, len(vectors))
	inv := 1.0 / float64(len(vectors))
	for i := range weights {
		weights[i] = inv
	}
	return WeightedSum(weights, vectors)
}
