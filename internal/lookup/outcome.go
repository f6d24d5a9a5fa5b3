package lookup

import (
	"errors"
)

// Outcome is how a pipeline run ended.
type Outcome int

const (
	Success Outcome = iota
	NotFound
	DataUnavailable
	TransportOrParse
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NotFound:
		return "not_found"
	case DataUnavailable:
		return "data_unavailable"
	case TransportOrParse:
		return "transport_or_parse"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// UserVisible reports whether the outcome is surfaced in the UI rather than
// only logged.
func (o Outcome) UserVisible() bool {
	return o == NotFound
}

// Classify maps a Run error onto the outcome taxonomy. Anything not
// recognised, including cancellation, is a transport or parse failure.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrEmptyQuery):
		return Skipped
	case errors.Is(err, ErrNotFound):
		return NotFound
	case errors.Is(err, ErrDataUnavailable):
		return DataUnavailable
	default:
		return TransportOrParse
	}
}
