// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

package recommend

import "math"

// Display score ranges. Internal hybrid scores live on arbitrary scales;
// clients show a "match percentage", so each category's scores are
// remapped into a friendly band before leaving the engine.
const (
	gameDisplayFloor   = 85.0
	gameDisplayCeiling = 99.0

	displayFloor    = 70.0
	displaySpread   = 24.0
	displayExponent = 1.5
	displayFlat     = 82
)

// rescaledScores min-max rescales the candidates' scores into
// [gameDisplayFloor, gameDisplayCeiling]. When every score is equal the
// whole list maps to the ceiling.
func rescaledScores(cands []candidate) []int {
	if len(cands) == 0 {
		return nil
	}
	lo, hi := cands[0].score, cands[0].score
	for _, c := range cands[1:] {
		if c.score < lo {
			lo = c.score
		}
		if c.score > hi {
			hi = c.score
		}
	}

	out := make([]int, len(cands))
	if hi == lo {
		for i := range out {
			out[i] = int(gameDisplayCeiling)
		}
		return out
	}
	for i, c := range cands {
		norm := (c.score - lo) / (hi - lo)
		out[i] = int(math.Round(gameDisplayFloor + norm*(gameDisplayCeiling-gameDisplayFloor)))
	}
	return out
}

// topHeavyScores gives the first three ranks jittered near-perfect
// scores (98-99, 96-97, 95-96) and maps the rest onto 70 + norm^1.5 * 24
// of their min-max normalized hybrid scores. The jitter sells the "top
// match" framing without reordering anything; all-equal tails flatten
// to 82.
func (e *Engine) topHeavyScores(cands []candidate) []int {
	out := make([]int, len(cands))
	jitter := [][2]float64{{98, 99}, {96, 97}, {95, 96}}
	for i := 0; i < len(cands) && i < len(jitter); i++ {
		out[i] = int(math.Round(e.randFloat(jitter[i][0], jitter[i][1])))
	}
	if len(cands) <= len(jitter) {
		return out
	}

	rest := cands[len(jitter):]
	lo, hi := rest[0].score, rest[0].score
	for _, c := range rest[1:] {
		if c.score < lo {
			lo = c.score
		}
		if c.score > hi {
			hi = c.score
		}
	}

	for i, c := range rest {
		if hi == lo {
			out[len(jitter)+i] = displayFlat
			continue
		}
		norm := (c.score - lo) / (hi - lo)
		out[len(jitter)+i] = int(math.Round(displayFloor + math.Pow(norm, displayExponent)*displaySpread))
	}
	return out
}
