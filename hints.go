package wfc

import (
	"math"
	"slices"
)

// FrequencyHints holds the relative frequency of every tile. A tile's weight
// is how often it appeared in the source; heavier tiles are sampled more.
type FrequencyHints struct {
	weights      []int
	weightLogW   []float64
	totalWeight  int
	totalWeightL float64
}

// NewFrequencyHints validates counts and copies them. Every count must be at
// least 1.
func NewFrequencyHints(counts []int) (*FrequencyHints, error) {
	for i, c := range counts {
		if c < 1 {
			return nil, configErrorf("frequency hints", "tile %d has count %d", i, c)
		}
	}
	return newFrequencyHints(counts), nil
}

func newFrequencyHints(counts []int) *FrequencyHints {
	h := &FrequencyHints{
		weights:    slices.Clone(counts),
		weightLogW: make([]float64, len(counts)),
	}
	for i, w := range h.weights {
		h.weightLogW[i] = float64(w) * math.Log2(float64(w))
		h.totalWeight += w
		h.totalWeightL += h.weightLogW[i]
	}
	return h
}

func (h *FrequencyHints) Len() int { return len(h.weights) }

// Weight returns the occurrence count of tile t.
func (h *FrequencyHints) Weight(t TileIndex) int { return h.weights[t] }

func (h *FrequencyHints) weightLogWeight(t TileIndex) float64 { return h.weightLogW[t] }
