package cycle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Missing returns the names of the fields left empty. Whitespace-only
// values count as empty.
func (r RawInputs) Missing() []string {
	var missing []string
	for _, f := range r.fields() {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Parse converts the raw fields to numbers. A field that is empty or not a
// finite number fails the whole set.
func (r RawInputs) Parse() (Inputs, error) {
	if missing := r.Missing(); len(missing) > 0 {
		return Inputs{}, fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}

	values := make([]float64, 0, 3)
	for _, f := range r.fields() {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.value), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Inputs{}, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, f.name, f.value)
		}
		values = append(values, v)
	}

	return Inputs{
		BoilerPressure:    values[0],
		BoilerTemp:        values[1],
		CondenserPressure: values[2],
	}, nil
}

type rawField struct {
	name  string
	value string
}

func (r RawInputs) fields() []rawField {
	return []rawField{
		{name: "boiler_pressure", value: r.BoilerPressure},
		{name: "boiler_temp", value: r.BoilerTemp},
		{name: "condenser_pressure", value: r.CondenserPressure},
	}
}
