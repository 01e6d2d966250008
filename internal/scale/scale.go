package scale

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"wardrobe-tryon/internal/measure"
)

// Reference holds the body proportions the base templates were modelled at.
var Reference = [measure.NumKeys]float64{
	measure.Neck:     38,
	measure.Shoulder: 45,
	measure.Chest:    95,
	measure.Waist:    85,
	measure.Stomach:  88,
	measure.Hips:     95,
	measure.Thigh:    55,
	measure.Inseam:   80,
	measure.Height:   175,
	measure.Weight:   70,
}

// Composite weights.
var (
	depthWeights = []float64{0.5, 0.5} // waist, hips
	widthWeights = []float64{0.7, 0.3} // shoulder, chest
)

// Factors is the dimensionless scale set derived from a measurement vector.
type Factors struct {
	ByKey [measure.NumKeys]float64
	Depth float64 // overall body depth
	Width float64 // overall body width
}

// Of returns the factor for k.
func (f Factors) Of(k measure.Key) float64 {
	return f.ByKey[k]
}

func (f Factors) Height() float64 { return f.ByKey[measure.Height] }

// Unit returns the factor set of a body at the reference proportions.
func Unit() Factors {
	var f Factors
	for i := range f.ByKey {
		f.ByKey[i] = 1
	}
	f.Depth, f.Width = 1, 1
	return f
}

// Derive maps a measurement vector to scale factors. Every slot must hold
// its own measurement; values are clamped into the canonical bounds first
// and non-finite values are an error.
func Derive(v measure.Vector) (Factors, error) {
	if err := v.Complete(); err != nil {
		return Factors{}, fmt.Errorf("scale: %w", err)
	}
	canon := measure.Default()
	var f Factors
	for i, m := range v {
		if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
			return Factors{}, fmt.Errorf("scale: %w: %s=%v", measure.ErrInvalidValue, m.Key, m.Value)
		}
		f.ByKey[i] = canon[i].Clamp(m.Value) / Reference[i]
	}
	f.Depth = stat.Mean([]float64{f.ByKey[measure.Waist], f.ByKey[measure.Hips]}, depthWeights)
	f.Width = stat.Mean([]float64{f.ByKey[measure.Shoulder], f.ByKey[measure.Chest]}, widthWeights)
	return f, nil
}

// Selector picks the factor that scales one dimension of a template.
type Selector func(Factors) float64

// By selects the factor of a single measurement.
func By(k measure.Key) Selector {
	return func(f Factors) float64 { return f.ByKey[k] }
}

// Blend selects a weighted mean of several measurement factors.
func Blend(keys []measure.Key, weights []float64) Selector {
	return func(f Factors) float64 {
		xs := make([]float64, len(keys))
		for i, k := range keys {
			xs[i] = f.ByKey[k]
		}
		return stat.Mean(xs, weights)
	}
}

var (
	// Fixed leaves a dimension at its base value.
	Fixed Selector = func(Factors) float64 { return 1 }
	// DepthOf selects the composite depth factor.
	DepthOf Selector = func(f Factors) float64 { return f.Depth }
	// WidthOf selects the composite width factor.
	WidthOf Selector = func(f Factors) float64 { return f.Width }
)

// Apply scales base by s, treating a nil selector as Fixed.
func (s Selector) Apply(f Factors, base float64) float64 {
	if s == nil {
		return base
	}
	return base * s(f)
}
