package code

import (
	"errors"
	"fmt"
)

// Code is a service error code. Codes are returned through the common
// reply envelope and double as sentinel errors inside the service layer.
type Code int32

const (
	Success Code = 0

	// generic
	UnknownErr       Code = 10000
	ParamErr         Code = 10001
	UnLogin          Code = 10002
	PermissionDenied Code = 10003
	RecordNotFound   Code = 10004

	// domain
	FormNotFound          Code = 20001
	SampleNotFound        Code = 20002
	FormCreateErr         Code = 20003
	FormUpdateErr         Code = 20004
	SampleCreateErr       Code = 20005
	SampleUpdateErr       Code = 20006
	DuplicateSampleNumber Code = 20007
	FormImmutable         Code = 20008
	PreconditionFailed    Code = 20010
	IllegalTransition     Code = 20011
	SelectionErr          Code = 20012
	PlanningErr           Code = 20013

	// infrastructure
	StoreUnavailable Code = 30001
	RPCHttpErr       Code = 30002
	RPCHttpCodeErr   Code = 30003
	NotifyDupAction  Code = 30004
	NotifySendErr    Code = 30005
)

var messages = map[Code]string{
	Success:               "success",
	UnknownErr:            "unknown error",
	ParamErr:              "invalid parameter",
	UnLogin:               "not logged in",
	PermissionDenied:      "permission denied",
	RecordNotFound:        "record not found",
	FormNotFound:          "sample form not found",
	SampleNotFound:        "sample not found",
	FormCreateErr:         "create sample form failed",
	FormUpdateErr:         "update sample form failed",
	SampleCreateErr:       "create sample failed",
	SampleUpdateErr:       "update sample failed",
	DuplicateSampleNumber: "sample number already used in this form",
	FormImmutable:         "sample form is no longer editable",
	PreconditionFailed:    "transition precondition failed",
	IllegalTransition:     "illegal status transition",
	SelectionErr:          "bacteria selection store failed",
	PlanningErr:           "analysis planning operation failed",
	StoreUnavailable:      "sample store unavailable",
	RPCHttpErr:            "remote http call failed",
	RPCHttpCodeErr:        "remote http call returned bad code",
	NotifyDupAction:       "notify action already registered",
	NotifySendErr:         "broadcast message failed",
}

func (c Code) String() string {
	if msg, ok := messages[c]; ok {
		return msg
	}
	return fmt.Sprintf("code(%d)", int32(c))
}

func (c Code) Error() string {
	return c.String()
}

func (c Code) WithMsg(msg string) error {
	return &Error{Code: c, Msg: msg}
}

func (c Code) WithMsgf(format string, args ...any) error {
	return &Error{Code: c, Msg: fmt.Sprintf(format, args...)}
}

func (c Code) WithErr(err error) error {
	if err == nil {
		return c
	}
	return &Error{Code: c, Msg: err.Error()}
}

// Error attaches a detail message to a Code while staying matchable
// with errors.Is(err, code.Xxx).
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Code
}

// From resolves any error to a reply code and message. Unrecognized
// errors map to UnknownErr so the raw message still reaches the caller.
func From(err error) (Code, string) {
	if err == nil {
		return Success, ""
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code, ce.Msg
	}
	var c Code
	if errors.As(err, &c) {
		return c, ""
	}
	return UnknownErr, err.Error()
}
