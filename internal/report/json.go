package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"abtest/internal/stats"
)

// jsonFloat encodes finite values as JSON numbers and NaN/±Inf as the
// strings "NaN", "inf" and "-inf", which encoding/json cannot represent
// natively.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte(strconv.Quote(FormatFloat(v, -1))), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

type jsonArm struct {
	N      jsonFloat `json:"n"`
	Mean   jsonFloat `json:"mean"`
	StdDev jsonFloat `json:"stddev"`
}

type jsonReport struct {
	Mode   string               `json:"mode"`
	Inputs map[string]jsonFloat `json:"inputs"`
	A      jsonArm              `json:"a"`
	B      jsonArm              `json:"b"`
	StdErr jsonFloat            `json:"std_err"`
	Z      jsonFloat            `json:"z"`
	PValue jsonFloat            `json:"p_value"`
	Uplift jsonFloat            `json:"uplift"`
}

func renderJSON(w io.Writer, c stats.Comparison) error {
	rep := jsonReport{
		Mode:   string(c.Experiment.Mode()),
		Inputs: make(map[string]jsonFloat),
		A:      jsonArm{N: jsonFloat(c.Experiment.N1), Mean: jsonFloat(c.A.Mean), StdDev: jsonFloat(c.A.StdDev)},
		B:      jsonArm{N: jsonFloat(c.Experiment.N2), Mean: jsonFloat(c.B.Mean), StdDev: jsonFloat(c.B.StdDev)},
		StdErr: jsonFloat(c.StdErr),
		Z:      jsonFloat(c.Z),
		PValue: jsonFloat(c.Result.PValue),
		Uplift: jsonFloat(c.Result.Uplift),
	}
	if spec, err := stats.LookupMode(rep.Mode); err == nil && c.Experiment.Observations != nil {
		for i, v := range c.Experiment.Observations.Values() {
			rep.Inputs[spec.Fields[i].Name] = jsonFloat(v)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode json report: %w", err)
	}
	return nil
}
