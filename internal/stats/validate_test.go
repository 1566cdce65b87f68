package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		exp  Experiment
		want map[string]Reason
	}{
		{
			name: "valid binomial",
			exp:  Experiment{N1: 100, N2: 100, Observations: Binomial{C1: 10, C2: 12}},
		},
		{
			name: "valid normal with negative means",
			exp:  Experiment{N1: 10, N2: 10, Observations: Normal{X1: -1, X2: -2, V1: 0, V2: 3}},
		},
		{
			name: "zero sample size",
			exp:  Experiment{N1: 0, N2: 100, Observations: Normal{X1: 1, X2: 1, V1: 1, V2: 1}},
			want: map[string]Reason{"n1": ReasonNonPositiveSampleSize},
		},
		{
			name: "negative count",
			exp:  Experiment{N1: 100, N2: 100, Observations: Binomial{C1: -1, C2: 5}},
			want: map[string]Reason{"c1": ReasonNegativeCount},
		},
		{
			name: "count above sample size",
			exp:  Experiment{N1: 100, N2: 50, Observations: Binomial{C1: 10, C2: 60}},
			want: map[string]Reason{"c2": ReasonCountExceedsSampleSize},
		},
		{
			name: "negative variance",
			exp:  Experiment{N1: 10, N2: 10, Observations: Normal{X1: 1, X2: 1, V1: -0.1, V2: 1}},
			want: map[string]Reason{"v1": ReasonNegativeVariance},
		},
		{
			name: "not finite",
			exp:  Experiment{N1: 10, N2: math.Inf(1), Observations: Normal{X1: math.NaN(), X2: 1, V1: 1, V2: 1}},
			want: map[string]Reason{"n2": ReasonNotFinite, "x1": ReasonNotFinite},
		},
		{
			name: "several problems at once",
			exp:  Experiment{N1: -5, N2: 10, Observations: Normal{X1: 1, X2: 1, V1: 1, V2: -2}},
			want: map[string]Reason{"n1": ReasonNonPositiveSampleSize, "v2": ReasonNegativeVariance},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.exp)
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var list RejectionList
			require.True(t, errors.As(err, &list), "expected RejectionList, got %T", err)
			got := make(map[string]Reason, len(list))
			for _, r := range list {
				got[r.Field] = r.Reason
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_RejectionDetails(t *testing.T) {
	err := Validate(Experiment{N1: 100, N2: 100, Observations: Binomial{C1: 10, C2: -3}})
	require.Error(t, err)

	var rej *Rejection
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, "c2", rej.Field)
	assert.Equal(t, -3.0, rej.Value)
	assert.Equal(t, "c2=-3: negative_count", rej.Error())
	assert.Equal(t, "invalid input: c2=-3: negative_count", err.Error())
}

func TestValidate_NoObservations(t *testing.T) {
	assert.ErrorIs(t, Validate(Experiment{N1: 1, N2: 1}), ErrNoObservations)
}
