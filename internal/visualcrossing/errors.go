package visualcrossing

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fetch failures for logs and metrics. Users only ever see one message.
type ErrorKind string

const (
	KindNetwork  ErrorKind = "network"
	KindStatus   ErrorKind = "status"
	KindDecode   ErrorKind = "decode"
	KindShape    ErrorKind = "shape"
	KindCanceled ErrorKind = "canceled"
)

// FetchError is returned for every failed timeline request
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // Set for KindStatus
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("timeline request failed: status %d", e.StatusCode)
	}
	if e.Err == nil {
		return fmt.Sprintf("timeline request failed: %s", e.Kind)
	}
	return fmt.Sprintf("timeline request failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf reports the failure kind of err, or KindNetwork for foreign errors
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindNetwork
}

// IsCanceled reports whether the request was abandoned by its caller
func IsCanceled(err error) bool {
	return err != nil && KindOf(err) == KindCanceled
}
