// Package code defines the registry of API result codes. Every service
// error is a *Code value; handlers serialize them through pkg/app.Response.
package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	code   int
	status bool
	// Lang holds the localized message variants.
	Lang        lang
	data        interface{}
	haveData    bool
	details     []string
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers a failure code. Duplicate registration is a
// programming error and panics at init time.
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already registered", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

var sussCodes = map[int]string{}

// NewSuss registers a success code.
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("success code %d already registered", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

// Clone returns a copy without data or details, so that WithData and
// WithDetails never mutate the registered singleton.
func (e *Code) Clone() *Code {
	return &Code{
		code:   e.code,
		status: e.status,
		Lang:   e.Lang,
	}
}

// Error implements the error interface.
func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append(c.details, details...)
	return c
}

// StatusCode maps the result code onto an HTTP status. The API keeps
// the envelope at 200 except for auth, not-found and rate-limit kinds.
func (e *Code) StatusCode() int {
	switch e.code {
	case ErrorNotUserAuthToken.code, ErrorInvalidUserAuthToken.code, ErrorTokenBlacklisted.code:
		return http.StatusUnauthorized
	case ErrorPermissionDenied.code:
		return http.StatusForbidden
	case ErrorEventNotFound.code, ErrorVersionNotFound.code,
		ErrorChangelogNotFound.code, ErrorPermissionNotFound.code, ErrorUserNotFound.code:
		return http.StatusNotFound
	case ErrorVersionConflict.code:
		return http.StatusConflict
	case ErrorTooManyRequests.code:
		return http.StatusTooManyRequests
	}
	return http.StatusOK
}
