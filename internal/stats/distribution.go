// Package stats implements the A/B comparison: it turns raw experiment
// observations into per-arm sampling distributions and runs a one-sided
// z-test on the difference of their means.
//
// Numeric degeneracies are not trapped. A zero sample size, a negative
// variance or a zero baseline mean flows through as NaN or ±Inf, and callers
// that want to refuse such inputs run Validate first.
package stats

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeStdDev is returned when a distribution is built with a negative
// standard deviation.
var ErrNegativeStdDev = errors.New("standard deviation must not be negative")

// SampleDistribution is the normal approximation of the sampling
// distribution of one arm's mean.
type SampleDistribution struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

// NewSampleDistribution builds a distribution. Only a negative stddev is
// refused; NaN passes through.
func NewSampleDistribution(mean, stddev float64) (SampleDistribution, error) {
	if stddev < 0 {
		return SampleDistribution{}, fmt.Errorf("%w: %v", ErrNegativeStdDev, stddev)
	}
	return SampleDistribution{Mean: mean, StdDev: stddev}, nil
}

// Variance returns StdDev squared.
func (d SampleDistribution) Variance() float64 {
	return d.StdDev * d.StdDev
}

// BinomialDistribution returns the distribution of a conversion rate with
// c conversions out of n trials: mean c/n and the binomial standard error
// sqrt(p(1-p)/n).
func BinomialDistribution(c, n float64) SampleDistribution {
	p := c / n
	return SampleDistribution{
		Mean:   p,
		StdDev: math.Sqrt(p * (1 - p) / n),
	}
}

// NormalDistribution returns the distribution of a sample mean x whose raw
// metric has population variance v over n observations.
func NormalDistribution(x, v, n float64) SampleDistribution {
	return SampleDistribution{
		Mean:   x,
		StdDev: math.Sqrt(v / n),
	}
}
