package ai

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUpstreamEmptyResponse = errors.New("AI did not return text output")
	ErrMalformedModelOutput  = errors.New("model output is not a valid project JSON object")
	ErrUpstream              = errors.New("AI service call failed")
)

// MalformedOutputError carries the cleaned model text that failed to parse.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	if e.Err != nil {
		return ErrMalformedModelOutput.Error() + ": " + e.Err.Error()
	}
	return ErrMalformedModelOutput.Error()
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrMalformedModelOutput.
func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedModelOutput
}

// upstreamError keeps the provider error for logging while matching ErrUpstream.
type upstreamError struct {
	err error
}

func (e *upstreamError) Error() string { return ErrUpstream.Error() + ": " + e.err.Error() }

func (e *upstreamError) Unwrap() []error { return []error{ErrUpstream, e.err} }
