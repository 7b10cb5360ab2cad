package generator

import (
	"context"
	"errors"
	"fmt"
)

type Kind int

const (
	// KindTransport covers network, API and timeout failures of the call itself.
	KindTransport Kind = iota
	KindEmptyResponse
	KindMalformedReport
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindEmptyResponse:
		return "empty_response"
	case KindMalformedReport:
		return "malformed_report"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. A *GenerationError matches the sentinel of its Kind.
var (
	ErrTransport       = errors.New("generation service call failed")
	ErrEmptyResponse   = errors.New("generation service returned an empty response")
	ErrMalformedReport = errors.New("generation service returned a malformed report")
)

type GenerationError struct {
	Kind     Kind
	Provider string
	// PayloadBytes is the size of the text payload that failed to decode.
	PayloadBytes int
	Err          error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrEmptyResponse:
		return e.Kind == KindEmptyResponse
	case ErrMalformedReport:
		return e.Kind == KindMalformedReport
	}
	return false
}

// KindOf returns the Kind of a generation failure. Errors that are not a
// *GenerationError count as transport failures.
func KindOf(err error) Kind {
	var gerr *GenerationError
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return KindTransport
}

// UserMessage turns a generation failure into the text shown to the user.
func UserMessage(err error) string {
	const prefix = "Failed to retrieve the report from the AI: "

	switch KindOf(err) {
	case KindEmptyResponse:
		return prefix + "the model returned an empty response. Please try again."
	case KindMalformedReport:
		return prefix + "the model returned an invalid format. Please try again."
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return prefix + "the AI service took too long to respond. Please try again."
	}
	return prefix + "the AI service could not be reached. Please try again."
}
