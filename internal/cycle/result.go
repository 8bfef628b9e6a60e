package cycle

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// HasDiagram reports whether the response carries an image.
func (r Result) HasDiagram() bool {
	return r.Diagram != nil && *r.Diagram != ""
}

// HasMetrics reports whether any metric field is present.
func (r Result) HasMetrics() bool {
	return r.Efficiency != nil || r.TurbineWork != nil || r.PumpWork != nil || r.HeatAdded != nil
}

// Metrics returns the metric group. ok is false unless all four are present.
func (r Result) Metrics() (m Metrics, ok bool) {
	if r.Efficiency == nil || r.TurbineWork == nil || r.PumpWork == nil || r.HeatAdded == nil {
		return Metrics{}, false
	}
	return Metrics{
		Efficiency:  *r.Efficiency,
		TurbineWork: *r.TurbineWork,
		PumpWork:    *r.PumpWork,
		HeatAdded:   *r.HeatAdded,
	}, true
}

// Validate checks the response shape before anything is rendered. The
// diagram is optional, the metrics come as a group of four or not at all,
// and at least one of the two must be present.
func (r Result) Validate() error {
	if !r.HasDiagram() && !r.HasMetrics() {
		return ErrEmptyResult
	}

	if r.HasDiagram() {
		if err := validateDiagram(*r.Diagram); err != nil {
			return err
		}
	}

	if r.HasMetrics() {
		m, ok := r.Metrics()
		if !ok {
			return ErrIncompleteMetrics
		}
		for name, v := range map[string]float64{
			"efficiency":   m.Efficiency,
			"turbine_work": m.TurbineWork,
			"pump_work":    m.PumpWork,
			"heat_added":   m.HeatAdded,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s", ErrInvalidMetric, name)
			}
		}
	}

	return nil
}

func validateDiagram(data string) error {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDiagram, err)
	}
	if !bytes.HasPrefix(raw, pngSignature) {
		return fmt.Errorf("%w: missing PNG signature", ErrInvalidDiagram)
	}
	return nil
}
