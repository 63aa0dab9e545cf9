// MIT License
//
// Copyright (c) 2023 Lack
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	json "github.com/json-iterator/go"
)

// Error is the typed error returned by the exporter, the importer and the
// layout config codecs.
type Error struct {
	Code   int32  `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
	Status string `json:"status,omitempty"`
}

type StatusCode int32

func (c StatusCode) String() string {
	return http.StatusText(int(c))
}

const (
	StatusBadRequest          StatusCode = 400
	StatusNotFound            StatusCode = 404
	StatusCancel              StatusCode = 408
	StatusConflict            StatusCode = 409
	StatusPreconditionFiled   StatusCode = 412
	StatusUnprocessable       StatusCode = 422
	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
	StatusServiceUnavailable  StatusCode = 503
	StatusGatewayTimeout      StatusCode = 504
)

// New generates a custom error.
func New(detail string, code StatusCode) *Error {
	e := &Error{
		Code:   int32(code),
		Detail: detail,
		Status: code.String(),
	}
	return e
}

func (e Error) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Parse tries to parse a JSON string into an error. If that
// fails, it will set the given string as the error detail.
func Parse(err string) *Error {
	e := new(Error)
	errr := json.Unmarshal([]byte(err), e)
	if errr != nil || (e.Code == 0 && e.Detail == "") {
		e = &Error{Detail: err}
	}
	return e
}

// BadRequest generates a 400 error.
func BadRequest(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusBadRequest)
}

// NotFound generates a 404 error.
func NotFound(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusNotFound)
}

// Cancel generates a 408 error.
func Cancel(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusCancel)
}

// Conflict generates a 409 error.
func Conflict(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusConflict)
}

// PreconditionFailed generates a 412 error.
func PreconditionFailed(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusPreconditionFiled)
}

// Unprocessable generates a 422 error.
func Unprocessable(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusUnprocessable)
}

// InternalServerError generates a 500 error.
func InternalServerError(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusInternalServerError)
}

// NotImplemented generates a 501 error
func NotImplemented(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusNotImplemented)
}

// ServiceUnavailable generates a 503 error
func ServiceUnavailable(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusServiceUnavailable)
}

// GatewayTimeout generates a 504 error
func GatewayTimeout(format string, a ...interface{}) *Error {
	return New(fmt.Sprintf(format, a...), StatusGatewayTimeout)
}

// IsCode reports whether err carries the given status code.
func IsCode(err error, code StatusCode) bool {
	if err == nil {
		return false
	}
	return FromErr(err).Code == int32(code)
}

// FromErr try to convert go error go *Error
func FromErr(err error) *Error {
	if err == nil {
		return nil
	}

	var verr *Error
	if errors.As(err, &verr) && verr != nil {
		return verr
	}

	switch {
	case errors.Is(err, context.Canceled):
		return Cancel("%v", err)
	case errors.Is(err, context.DeadlineExceeded):
		return GatewayTimeout("%v", err)
	}

	return Parse(err.Error())
}
