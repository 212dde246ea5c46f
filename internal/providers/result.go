package providers

import (
	"errors"
	"time"
)

type ErrorKind string

const (
	TransportError       ErrorKind = "transport_error"
	ProviderQuotaOrError ErrorKind = "provider_error"
	TextNotFound         ErrorKind = "text_not_found"
	MalformedPayload     ErrorKind = "malformed_payload"
	UnknownProvider      ErrorKind = "unknown_provider"
)

// Failure is a classified dispatch error.
type Failure struct {
	Kind   ErrorKind
	Detail string
}

func (f *Failure) Error() string {
	if f.Detail == "" {
		return string(f.Kind)
	}
	return string(f.Kind) + ": " + f.Detail
}

func fail(kind ErrorKind, detail string) *Failure {
	return &Failure{Kind: kind, Detail: detail}
}

// asFailure classifies any error; unclassified errors count as transport errors.
func asFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return fail(TransportError, err.Error())
}

// Result is the single value returned by every dispatch.
type Result struct {
	Provider   ID
	DispatchID string
	Answer     string
	Failure    *Failure
	Latency    time.Duration
}

func (r Result) OK() bool { return r.Failure == nil }

func (r Result) String() string {
	if r.Failure != nil {
		if r.Failure.Detail == "" {
			return "Error: " + string(r.Failure.Kind)
		}
		return "Error: " + r.Failure.Detail
	}
	return "Success: " + r.Answer
}
