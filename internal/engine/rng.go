package engine

import (
	"hash/fnv"
	"strconv"
)

// RNG is a deterministic pseudo-random generator (mulberry32). The sequence
// depends only on the seed: pure 32-bit integer arithmetic, with a single
// division into [0,1) at the end, so the same seed reproduces the same quest
// choices across sessions and platforms.
type RNG struct {
	state uint32
}

func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Float64 returns the next number in [0,1).
func (r *RNG) Float64() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// IntN returns the next number in [0,n). n <= 0 yields 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// PickInt draws one element from choices.
func (r *RNG) PickInt(choices []int) int {
	if len(choices) == 0 {
		return 0
	}
	return choices[r.IntN(len(choices))]
}

// DeriveSeed hashes the given parts into an RNG seed via FNV-1a. Each
// independent randomization (quest choice, per-quest params, reroll) must
// derive its own seed so outcomes stay uncorrelated.
func DeriveSeed(parts ...string) uint32 {
	h := fnv.New32a()
	for i, p := range parts {
		if i > 0 {
			_, _ = h.Write([]byte(":"))
		}
		_, _ = h.Write([]byte(p))
	}
	return h.Sum32()
}

// rerollSeed derives the reroll stream for an assignment, distinct from the
// seed that chose the original quest set.
func rerollSeed(dayKey, installID string, assignmentSeed uint32) uint32 {
	return DeriveSeed(dayKey, installID, strconv.FormatUint(uint64(assignmentSeed), 10), "reroll")
}

// paramsSeed derives the per-quest parameter stream.
func paramsSeed(dayKey, installID, questID string) uint32 {
	return DeriveSeed(dayKey, installID, questID, "params")
}
