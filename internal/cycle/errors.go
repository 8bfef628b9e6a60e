package cycle

import "errors"

var (
	ErrMissingInput  = errors.New("missing input field")
	ErrInvalidNumber = errors.New("input is not a finite number")

	ErrEmptyResult       = errors.New("response has neither diagram nor metrics")
	ErrIncompleteMetrics = errors.New("response metrics are incomplete")
	ErrInvalidMetric     = errors.New("response metric is not finite")
	ErrInvalidDiagram    = errors.New("response diagram is not base64 PNG data")
)
