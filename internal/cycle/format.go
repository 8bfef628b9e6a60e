package cycle

import "strconv"

// Metric is one formatted line of the results block.
type Metric struct {
	Label string
	Value string // rounded to two decimals, unit included
}

// Lines formats the metrics in display order.
func (m Metrics) Lines() []Metric {
	return []Metric{
		{Label: "Thermal Efficiency", Value: fixed2(m.Efficiency) + " %"},
		{Label: "Turbine Work", Value: fixed2(m.TurbineWork) + " kJ/kg"},
		{Label: "Pump Work", Value: fixed2(m.PumpWork) + " kJ/kg"},
		{Label: "Heat Added", Value: fixed2(m.HeatAdded) + " kJ/kg"},
	}
}

func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
