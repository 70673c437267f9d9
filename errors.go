// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpparse

// ErrorKind is the flat error taxonomy returned by Parse. It is modeled
// after the teacher's ErrorHdr convention: a small iota-based code with a
// pretty-printer, instead of allocation-heavy wrapped errors for the
// common, expected fault cases.
type ErrorKind uint8

// error kinds, see ParseError.Kind
const (
	ErrNone ErrorKind = iota
	ErrInvalidMethod
	ErrInvalidURL
	ErrInvalidVersion
	ErrInvalidRequestLine
	ErrInvalidStatusCode
	ErrInvalidStatusLine
	ErrInvalidHeaderField
	ErrInvalidHeaders
	ErrInvalidEOFState
	ErrAnyIO
	ErrOther
)

var errKindStr = [...]string{
	ErrNone:               "no error",
	ErrInvalidMethod:      "invalid method",
	ErrInvalidURL:         "invalid url",
	ErrInvalidVersion:     "invalid http version",
	ErrInvalidRequestLine: "invalid request line",
	ErrInvalidStatusCode:  "invalid status code",
	ErrInvalidStatusLine:  "invalid status line",
	ErrInvalidHeaderField: "invalid header field",
	ErrInvalidHeaders:     "invalid headers",
	ErrInvalidEOFState:    "invalid eof state",
	ErrAnyIO:              "handler error",
	ErrOther:              "parse error",
}

// String implements the Stringer interface.
func (k ErrorKind) String() string {
	if int(k) >= len(errKindStr) {
		return "unknown error"
	}
	return errKindStr[k]
}

// ParseError is the error type returned from Parse. It carries the flat
// error kind plus, for ErrAnyIO, the handler-reported cause.
type ParseError struct {
	Kind  ErrorKind
	Cause error // non-nil only for ErrAnyIO
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Cause.Error()
	}
	return e.Kind.String()
}

// Unwrap allows errors.Is/errors.As to reach the handler-reported cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether err's Kind matches target's, so callers can write
// errors.Is(err, &ParseError{Kind: ErrInvalidMethod}).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(k ErrorKind) error {
	return &ParseError{Kind: k}
}

func newIOErr(cause error) error {
	return &ParseError{Kind: ErrAnyIO, Cause: cause}
}

// errOther is the generic error returned on Crashed re-entry.
var errOther = &ParseError{Kind: ErrOther}
