package view

import "steam-cycle-viewer/internal/cycle"

// Messages shown to the user.
const (
	MsgMissingInputs = "Please fill all required fields!"
	MsgInvalidInputs = "Please enter valid numbers for all fields!"
	MsgRequestFailed = "Failed to calculate cycle. Please make sure the backend is running."
)

// View owns the two output regions: the diagram region (image or status
// text) and the results region (metrics block or empty).
type View interface {
	// ShowLoading puts a status message in the diagram region and clears
	// the results region.
	ShowLoading()
	// ShowError puts a styled error in the diagram region and clears the
	// results region.
	ShowError(message string)
	// RenderDiagram shows the base64 PNG in the diagram region.
	RenderDiagram(imageData string)
	// RestoreDiagram puts back the last rendered diagram, or empties the
	// diagram region when none was rendered yet.
	RestoreDiagram()
	// RenderResults shows the metrics block in the results region.
	RenderResults(m cycle.Metrics)
}

// Phase is what the view is currently showing.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseResults Phase = "results"
)
