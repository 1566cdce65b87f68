package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TestResult is the outcome of a comparison.
type TestResult struct {
	// PValue is Φ(z), the standard normal CDF at the standardized lift.
	// It is the lower-tail probability and is reported as is.
	PValue float64 `json:"p_value" yaml:"p_value"`
	// Uplift is MeanB/MeanA - 1.
	Uplift float64 `json:"uplift" yaml:"uplift"`
}

// Comparison keeps the intermediate values of one evaluation.
type Comparison struct {
	Experiment Experiment
	A          SampleDistribution
	B          SampleDistribution
	StdErr     float64 // sqrt(σA² + σB²)
	Z          float64
	Result     TestResult
}

// StdErrDiff returns the standard error of mean_B - mean_A for independent
// arms.
func StdErrDiff(a, b SampleDistribution) float64 {
	return math.Sqrt(a.Variance() + b.Variance())
}

// ZScore returns (mean_B - mean_A) / StdErrDiff(a, b).
func ZScore(a, b SampleDistribution) float64 {
	return (b.Mean - a.Mean) / StdErrDiff(a, b)
}

// ZTest compares arm B against arm A.
func ZTest(a, b SampleDistribution) TestResult {
	return TestResult{
		PValue: distuv.UnitNormal.CDF(ZScore(a, b)),
		Uplift: b.Mean/a.Mean - 1,
	}
}

// Compare builds both arm distributions for exp and tests B against A.
func Compare(exp Experiment) (Comparison, error) {
	a, b, err := exp.Distributions()
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Experiment: exp,
		A:          a,
		B:          b,
		StdErr:     StdErrDiff(a, b),
		Z:          ZScore(a, b),
		Result:     ZTest(a, b),
	}, nil
}

// Evaluate is Compare without the intermediates.
func Evaluate(exp Experiment) (TestResult, error) {
	c, err := Compare(exp)
	if err != nil {
		return TestResult{}, err
	}
	return c.Result, nil
}

// Degenerate reports whether the result carries NaN or ±Inf.
func (r TestResult) Degenerate() bool {
	return isSpecial(r.PValue) || isSpecial(r.Uplift)
}

func isSpecial(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
