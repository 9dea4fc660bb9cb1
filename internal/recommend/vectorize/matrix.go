// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package vectorize

import (
	"runtime"
	"sync"
)

// Matrix holds one sparse vector per catalog item, row-aligned with the
// snapshot's item slice. Norms are cached at construction; the matrix is
// immutable afterwards and safe for concurrent reads.
type Matrix struct {
	dim   int
	rows  []Sparse
	norms []float64
}

// NewMatrix builds a matrix from rows of dimensionality dim.
func NewMatrix(dim int, rows []Sparse) *Matrix {
	norms := make([]float64, len(rows))
	for i, row := range rows {
		norms[i] = row.Norm()
	}
	return &Matrix{dim: dim, rows: rows, norms: norms}
}

// Len returns the number of rows.
func (m *Matrix) Len() int { return len(m.rows) }

// Dim returns the vector dimensionality.
func (m *Matrix) Dim() int { return m.dim }

// Row returns row i.
func (m *Matrix) Row(i int) Sparse { return m.rows[i] }

// Cosine returns the cosine similarity between row i and query.
func (m *Matrix) Cosine(i int, query Sparse) float64 {
	qn := query.Norm()
	if qn == 0 || m.norms[i] == 0 {
		return 0
	}
	return Dot(m.rows[i], query) / (m.norms[i] * qn)
}

// CosineAll returns the cosine similarity of query against every row.
// Work is split across GOMAXPROCS goroutines; rows under the
// parallelism threshold are scored inline.
func (m *Matrix) CosineAll(query Sparse) []float64 {
	sims := make([]float64, len(m.rows))
	qn := query.Norm()
	if qn == 0 {
		return sims
	}

	const parallelThreshold = 2048
	workers := runtime.GOMAXPROCS(0)
	if len(m.rows) < parallelThreshold || workers < 2 {
		m.scoreRange(query, qn, 0, len(m.rows), sims)
		return sims
	}

	chunk := (len(m.rows) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(m.rows); start += chunk {
		end := start + chunk
		if end > len(m.rows) {
			end = len(m.rows)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			m.scoreRange(query, qn, start, end, sims)
		}(start, end)
	}
	wg.Wait()
	return sims
}

func (m *Matrix) scoreRange(query Sparse, queryNorm float64, start, end int, out []float64) {
	for i := start; i < end; i++ {
		if m.norms[i] == 0 {
			continue
		}
		out[i] = Dot(m.rows[i], query) / (m.norms[i] * queryNorm)
	}
}
