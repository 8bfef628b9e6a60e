package cycle

// Kind selects which diagram the backend renders for a cycle.
type Kind string

const (
	KindTS Kind = "ts" // temperature-entropy
	KindPV Kind = "pv" // pressure-volume
)

// Kinds lists every diagram kind the backend understands.
var Kinds = []Kind{KindTS, KindPV}

// Path returns the backend endpoint path for the diagram kind.
func (k Kind) Path() string {
	return "/generate-" + string(k)
}

// Valid reports whether k is one of the known diagram kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindTS, KindPV:
		return true
	}
	return false
}

// Label is the human-readable diagram name.
func (k Kind) Label() string {
	switch k {
	case KindTS:
		return "T-S"
	case KindPV:
		return "P-V"
	}
	return string(k)
}

// RawInputs holds the three input fields as typed by the user.
type RawInputs struct {
	BoilerPressure    string
	BoilerTemp        string
	CondenserPressure string
}

// Inputs is the JSON body sent to the backend.
type Inputs struct {
	BoilerPressure    float64 `json:"boiler_pressure"`    // bar
	BoilerTemp        float64 `json:"boiler_temp"`        // °C
	CondenserPressure float64 `json:"condenser_pressure"` // bar
}

// Result is the backend response. Every field is optional on the wire, so
// presence is tracked with pointers.
type Result struct {
	Diagram     *string  `json:"diagram,omitempty"`
	Efficiency  *float64 `json:"efficiency,omitempty"`   // %
	TurbineWork *float64 `json:"turbine_work,omitempty"` // kJ/kg
	PumpWork    *float64 `json:"pump_work,omitempty"`    // kJ/kg
	HeatAdded   *float64 `json:"heat_added,omitempty"`   // kJ/kg
}

// Metrics is the complete set of cycle performance figures.
type Metrics struct {
	Efficiency  float64
	TurbineWork float64
	PumpWork    float64
	HeatAdded   float64
}
