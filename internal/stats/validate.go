package stats

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput matches every rejection produced by Validate.
var ErrInvalidInput = errors.New("invalid input")

// Reason classifies a rejected value.
type Reason string

const (
	ReasonNotFinite              Reason = "not_finite"
	ReasonNonPositiveSampleSize  Reason = "non_positive_sample_size"
	ReasonNegativeCount          Reason = "negative_count"
	ReasonCountExceedsSampleSize Reason = "count_exceeds_sample_size"
	ReasonNegativeVariance       Reason = "negative_variance"
)

// Rejection is one value that cannot describe a real experiment.
type Rejection struct {
	Field  string
	Reason Reason
	Value  float64
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s=%s: %s", r.Field, strconv.FormatFloat(r.Value, 'g', -1, 64), r.Reason)
}

func (r *Rejection) Unwrap() error { return ErrInvalidInput }

// RejectionList collects every rejection of one experiment.
type RejectionList []*Rejection

func (l RejectionList) Error() string {
	msgs := make([]string, len(l))
	for i, r := range l {
		msgs[i] = r.Error()
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (l RejectionList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, r := range l {
		errs[i] = r
	}
	return errs
}

// Flattened views so cross-field rules (count <= sample size) can be
// expressed as struct tags.
type binomialInput struct {
	N1 float64 `name:"n1" validate:"finite,gt=0"`
	N2 float64 `name:"n2" validate:"finite,gt=0"`
	C1 float64 `name:"c1" validate:"finite,gte=0,ltefield=N1"`
	C2 float64 `name:"c2" validate:"finite,gte=0,ltefield=N2"`
}

type normalInput struct {
	N1 float64 `name:"n1" validate:"finite,gt=0"`
	N2 float64 `name:"n2" validate:"finite,gt=0"`
	X1 float64 `name:"x1" validate:"finite"`
	X2 float64 `name:"x2" validate:"finite"`
	V1 float64 `name:"v1" validate:"finite,gte=0"`
	V2 float64 `name:"v2" validate:"finite,gte=0"`
}

var inputValidate *validator.Validate

func init() {
	inputValidate = validator.New()
	inputValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("name")
	})
	_ = inputValidate.RegisterValidation("finite", validateFinite)
}

func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate rejects experiments no real test could produce: non-finite
// values, non-positive sample sizes, negative or impossible counts and
// negative variances. It returns nil or a RejectionList.
func Validate(exp Experiment) error {
	var (
		view      any
		gteReason Reason
	)
	switch o := exp.Observations.(type) {
	case Binomial:
		view = binomialInput{N1: exp.N1, N2: exp.N2, C1: o.C1, C2: o.C2}
		gteReason = ReasonNegativeCount
	case Normal:
		view = normalInput{N1: exp.N1, N2: exp.N2, X1: o.X1, X2: o.X2, V1: o.V1, V2: o.V2}
		gteReason = ReasonNegativeVariance
	case nil:
		return ErrNoObservations
	default:
		return fmt.Errorf("%w %q", ErrUnknownMode, o.Mode())
	}

	err := inputValidate.Struct(view)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate experiment: %w", err)
	}

	list := make(RejectionList, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		value, _ := fe.Value().(float64)
		list = append(list, &Rejection{
			Field:  fe.Field(),
			Reason: reasonFor(fe.Tag(), gteReason),
			Value:  value,
		})
	}
	return list
}

func reasonFor(tag string, gteReason Reason) Reason {
	switch tag {
	case "finite":
		return ReasonNotFinite
	case "gt":
		return ReasonNonPositiveSampleSize
	case "ltefield":
		return ReasonCountExceedsSampleSize
	default:
		return gteReason
	}
}
