package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownMode is returned for a mode name that is not registered.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrArity is returned when a mode receives the wrong number of values.
	ErrArity = errors.New("wrong number of values")
	// ErrNoObservations is returned by an Experiment without a payload.
	ErrNoObservations = errors.New("experiment has no observations")
)

// Mode names an input variant.
type Mode string

const (
	ModeBinomial Mode = "binomial"
	ModeNormal   Mode = "normal"
)

// Observations is the mode-specific payload of an experiment.
type Observations interface {
	Mode() Mode
	// Distributions derives arm A and arm B given the shared sample sizes.
	Distributions(n1, n2 float64) (a, b SampleDistribution, err error)
	// Values returns the payload in the order of the mode's fields.
	Values() []float64
}

// Experiment is one A/B test: the sample sizes shared by every mode plus a
// mode payload.
type Experiment struct {
	N1           float64
	N2           float64
	Observations Observations
}

// Mode returns the payload's mode, or "" when there is none.
func (e Experiment) Mode() Mode {
	if e.Observations == nil {
		return ""
	}
	return e.Observations.Mode()
}

// Distributions derives the two arm distributions.
func (e Experiment) Distributions() (a, b SampleDistribution, err error) {
	if e.Observations == nil {
		return a, b, ErrNoObservations
	}
	return e.Observations.Distributions(e.N1, e.N2)
}

// Binomial holds conversion counts, used for rates such as conversion rate.
type Binomial struct {
	C1 float64
	C2 float64
}

func (Binomial) Mode() Mode { return ModeBinomial }

func (o Binomial) Values() []float64 { return []float64{o.C1, o.C2} }

func (o Binomial) Distributions(n1, n2 float64) (a, b SampleDistribution, err error) {
	da := BinomialDistribution(o.C1, n1)
	db := BinomialDistribution(o.C2, n2)
	if a, err = NewSampleDistribution(da.Mean, da.StdDev); err != nil {
		return a, b, fmt.Errorf("arm A: %w", err)
	}
	if b, err = NewSampleDistribution(db.Mean, db.StdDev); err != nil {
		return a, b, fmt.Errorf("arm B: %w", err)
	}
	return a, b, nil
}

// Normal holds per-arm means and variances, used for continuous metrics
// such as revenue.
type Normal struct {
	X1 float64
	X2 float64
	V1 float64
	V2 float64
}

func (Normal) Mode() Mode { return ModeNormal }

func (o Normal) Values() []float64 { return []float64{o.X1, o.X2, o.V1, o.V2} }

func (o Normal) Distributions(n1, n2 float64) (a, b SampleDistribution, err error) {
	da := NormalDistribution(o.X1, o.V1, n1)
	db := NormalDistribution(o.X2, o.V2, n2)
	if a, err = NewSampleDistribution(da.Mean, da.StdDev); err != nil {
		return a, b, fmt.Errorf("arm A: %w", err)
	}
	if b, err = NewSampleDistribution(db.Mean, db.StdDev); err != nil {
		return a, b, fmt.Errorf("arm B: %w", err)
	}
	return a, b, nil
}

// Field describes one positional value of a mode.
type Field struct {
	Name string
	Help string
}

// ModeSpec describes a registered mode.
type ModeSpec struct {
	Name   Mode
	Short  string
	Fields []Field
	build  func(v []float64) Observations
}

// Usage returns the positional synopsis, e.g. "<c1> <c2>".
func (s ModeSpec) Usage() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = "<" + f.Name + ">"
	}
	return strings.Join(parts, " ")
}

// Build turns parsed values into the mode payload.
func (s ModeSpec) Build(values []float64) (Observations, error) {
	if len(values) != len(s.Fields) {
		return nil, fmt.Errorf("%w: %s takes %d values (%s), got %d",
			ErrArity, s.Name, len(s.Fields), s.Usage(), len(values))
	}
	return s.build(values), nil
}

var modes = []ModeSpec{
	{
		Name:  ModeBinomial,
		Short: "Test a rate, e.g. conversion rate",
		Fields: []Field{
			{Name: "c1", Help: "conversions in A"},
			{Name: "c2", Help: "conversions in B"},
		},
		build: func(v []float64) Observations {
			return Binomial{C1: v[0], C2: v[1]}
		},
	},
	{
		Name:  ModeNormal,
		Short: "Test a continuous metric, e.g. revenue",
		Fields: []Field{
			{Name: "x1", Help: "mean of A"},
			{Name: "x2", Help: "mean of B"},
			{Name: "v1", Help: "variance of A"},
			{Name: "v2", Help: "variance of B"},
		},
		build: func(v []float64) Observations {
			return Normal{X1: v[0], X2: v[1], V1: v[2], V2: v[3]}
		},
	},
}

// Modes lists the registered modes in display order.
func Modes() []ModeSpec {
	out := make([]ModeSpec, len(modes))
	copy(out, modes)
	return out
}

// LookupMode finds a mode by name.
func LookupMode(name string) (ModeSpec, error) {
	for _, m := range modes {
		if string(m.Name) == name {
			return m, nil
		}
	}
	return ModeSpec{}, fmt.Errorf("%w %q (valid: %s)", ErrUnknownMode, name, modeNames())
}

func modeNames() string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m.Name)
	}
	return strings.Join(names, ", ")
}

// ParseFloat parses one named value. Go float syntax applies, so "NaN",
// "inf" and exponents are accepted.
func ParseFloat(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for %s: %w", s, field, err)
	}
	return f, nil
}

// ParseExperiment parses the sample sizes and the mode's positional values.
func ParseExperiment(mode Mode, n1, n2 string, values []string) (Experiment, error) {
	spec, err := LookupMode(string(mode))
	if err != nil {
		return Experiment{}, err
	}
	if len(values) != len(spec.Fields) {
		return Experiment{}, fmt.Errorf("%w: %s takes %d values (%s), got %d",
			ErrArity, spec.Name, len(spec.Fields), spec.Usage(), len(values))
	}

	exp := Experiment{}
	if exp.N1, err = ParseFloat("n1", n1); err != nil {
		return Experiment{}, err
	}
	if exp.N2, err = ParseFloat("n2", n2); err != nil {
		return Experiment{}, err
	}

	parsed := make([]float64, len(values))
	for i, v := range values {
		if parsed[i], err = ParseFloat(spec.Fields[i].Name, v); err != nil {
			return Experiment{}, err
		}
	}
	if exp.Observations, err = spec.Build(parsed); err != nil {
		return Experiment{}, err
	}
	return exp, nil
}
