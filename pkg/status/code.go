// Package status defines the single enumerated status type returned from
// every fallible CSP operation (spec §7). The structured status-reply
// bodies carried by a Status message live in package framing.
//
// Import graph: status has no internal dependencies, so it can be imported
// by wire, traits, codec, version, framing, registry, and server alike
// without creating import cycles.
package status

import "fmt"

// Code is the discriminant of every CSP error. Zero value is Success.
type Code int

const (
	// Success indicates no error.
	Success Code = iota

	// NoFurtherProcessingRequired is not an error. It is the cooperative
	// sentinel a version converter or a simply-assignable fast path
	// returns to tell its caller "I already did the work; do not also
	// serialize the current layout / emit fields."
	NoFurtherProcessingRequired

	// Protocol errors.
	ErrNotSupportedProtocolVersion
	ErrNotCompatibleCommonFlagsSettings

	// Schema errors.
	ErrNotSupportedInterfaceVersion
	ErrNotSupportedInOutInterfaceVersion
	ErrMismatchOfStructID
	ErrNotCompatibleDataFlagsSettings
	ErrNotSupportedSerializationSettingsForStruct
	ErrInvalidType
	ErrTypeSizeIsTooBig

	// Buffer errors.
	ErrOverflow
	ErrDataCorrupted

	// Lookup errors.
	ErrNoSuchHandler
	ErrMoreEntries

	// Resource errors.
	ErrNoMemory

	// Usage errors.
	ErrInvalidArgument
	ErrAlreadyInited
	ErrNotInited
	ErrInternal
)

// String returns a human-readable name for the code, used in log lines and
// wrapped errors.
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case NoFurtherProcessingRequired:
		return "NoFurtherProcessingRequired"
	case ErrNotSupportedProtocolVersion:
		return "NotSupportedProtocolVersion"
	case ErrNotCompatibleCommonFlagsSettings:
		return "NotCompatibleCommonFlagsSettings"
	case ErrNotSupportedInterfaceVersion:
		return "NotSupportedInterfaceVersion"
	case ErrNotSupportedInOutInterfaceVersion:
		return "NotSupportedInOutInterfaceVersion"
	case ErrMismatchOfStructID:
		return "MismatchOfStructId"
	case ErrNotCompatibleDataFlagsSettings:
		return "NotCompatibleDataFlagsSettings"
	case ErrNotSupportedSerializationSettingsForStruct:
		return "NotSupportedSerializationSettingsForStruct"
	case ErrInvalidType:
		return "InvalidType"
	case ErrTypeSizeIsTooBig:
		return "TypeSizeIsTooBig"
	case ErrOverflow:
		return "Overflow"
	case ErrDataCorrupted:
		return "DataCorrupted"
	case ErrNoSuchHandler:
		return "NoSuchHandler"
	case ErrMoreEntries:
		return "MoreEntries"
	case ErrNoMemory:
		return "NoMemory"
	case ErrInvalidArgument:
		return "InvalidArgument"
	case ErrAlreadyInited:
		return "AlreadyInited"
	case ErrNotInited:
		return "NotInited"
	case ErrInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// IsError reports whether c represents a failure. Success and
// NoFurtherProcessingRequired are not errors.
func (c Code) IsError() bool {
	return c != Success && c != NoFurtherProcessingRequired
}

// Error wraps a Code with context, implementing the error interface so
// codec code can use errors.As/errors.Is against a specific Code while
// still satisfying ordinary Go error handling.
type Error struct {
	Code    Code
	Message string
	Cause   error

	// Body carries a kind-specific diagnostic payload (e.g.
	// framing.InterfaceVersionMismatch) for callers that need to reply with
	// more than a bare code. It is opaque here to avoid importing the
	// framing/context packages from status; callers type-assert it back to
	// whatever concrete type they attached with NewWithBody.
	Body any
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewWithBody is New plus a diagnostic body to carry alongside the code,
// for callers (e.g. multicast dispatch) that build the status reply from an
// error value after the fact and still need the same body a single-handler
// call site would have attached directly.
func NewWithBody(code Code, message string, body any) *Error {
	return &Error{Code: code, Message: message, Body: body}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// BodyOf returns the diagnostic body attached to err via NewWithBody, or nil
// if err is not a *Error or carries none.
func BodyOf(err error) any {
	var se *Error
	if ok := asError(err, &se); ok {
		return se.Body
	}
	return nil
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// CodeOf extracts the Code carried by err, or ErrInternal if err is not a
// *Error (e.g. an I/O error that escaped un-wrapped).
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var se *Error
	if ok := asError(err, &se); ok {
		return se.Code
	}
	return ErrInternal
}

// asError is a tiny errors.As specialization kept local to avoid importing
// the standard errors package twice across this small file.
func asError(err error, target **Error) bool {
	for err != nil {
		if se, ok := err.(*Error); ok {
			*target = se
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
