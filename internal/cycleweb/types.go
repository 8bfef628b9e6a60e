package cycleweb

import (
	"net/url"

	"steam-cycle-viewer/internal/cycle"
)

// Form field names, shared with the input element ids on the page.
const (
	FieldBoilerPressure    = "boilerPressure"
	FieldBoilerTemp        = "boilerTemp"
	FieldCondenserPressure = "condenserPressure"
)

// maxFormBytes bounds a submitted form body.
const maxFormBytes = 64 << 10

func rawInputsFromForm(form url.Values) cycle.RawInputs {
	return cycle.RawInputs{
		BoilerPressure:    form.Get(FieldBoilerPressure),
		BoilerTemp:        form.Get(FieldBoilerTemp),
		CondenserPressure: form.Get(FieldCondenserPressure),
	}
}
