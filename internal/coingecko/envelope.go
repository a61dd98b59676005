package coingecko

import "time"

// Meta carries side-band information about how a result was produced.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

// Envelope is the uniform result shape returned by every public
// operation in this package and by the aggregators built on top of it.
// Data is meaningful only when Success is true; Error is meaningful
// only when it is false. Error is a human-readable message, never a
// structured code.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
	Cached  bool   `json:"cached,omitempty"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T, cached bool) Envelope[T] {
	return Envelope[T]{
		Success: true,
		Data:    data,
		Meta:    &Meta{Timestamp: time.Now().UTC()},
		Cached:  cached,
	}
}

// Fail wraps err in a failed envelope.
func Fail[T any](err error) Envelope[T] {
	return Envelope[T]{
		Success: false,
		Error:   err.Error(),
		Meta:    &Meta{Timestamp: time.Now().UTC()},
	}
}

// Err converts a failed envelope back into an error for callers that
// compose envelopes with errgroup-style fan-out.
func (e Envelope[T]) Err() error {
	if e.Success {
		return nil
	}
	return &envelopeError{msg: e.Error}
}

type envelopeError struct{ msg string }

func (e *envelopeError) Error() string { return e.msg }
