package provider

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a provider could not produce candidates.
type ErrorKind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown ErrorKind = iota
	// KindTransportFailure covers network, DNS, timeout and non-2xx HTTP errors.
	KindTransportFailure
	// KindEmptyResult means the provider answered but nothing usable came back.
	KindEmptyResult
	// KindMalformedElement marks a single element missing a name or coordinate.
	KindMalformedElement
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransportFailure:
		return "transport_failure"
	case KindEmptyResult:
		return "empty_result"
	case KindMalformedElement:
		return "malformed_element"
	default:
		return "unknown"
	}
}

// ProviderError is returned by spatial and geocoding providers.
type ProviderError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider: %s: %v", e.Message, e.Err)
	}
	return "provider: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ProviderError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or KindUnknown when err is not a ProviderError.
func KindOf(err error) ErrorKind {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return KindUnknown
}

func transportError(msg string, err error) error {
	return &ProviderError{Kind: KindTransportFailure, Message: msg, Err: err}
}

func emptyResult(msg string) error {
	return &ProviderError{Kind: KindEmptyResult, Message: msg}
}
