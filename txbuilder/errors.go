// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package txbuilder

import (
	"fmt"
)

// ErrorKind classifies builder failures
type ErrorKind uint8

const (
	KindWalletUnavailable ErrorKind = iota + 1
	KindEncoding
	KindInputSelection
	KindAssembly
	KindSigning
	KindCommit
)

func (k ErrorKind) String() string {
	switch k {
	case KindWalletUnavailable:
		return "wallet unavailable"
	case KindEncoding:
		return "encoding"
	case KindInputSelection:
		return "input selection"
	case KindAssembly:
		return "assembly"
	case KindSigning:
		return "signing"
	case KindCommit:
		return "commit"
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// Error is the error type returned by the builder. It matches the Err*
// sentinels of its kind with errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
	Cause   error
}

// Sentinels for errors.Is
var (
	ErrWalletUnavailable = &Error{Kind: KindWalletUnavailable}
	ErrEncoding          = &Error{Kind: KindEncoding}
	ErrInputSelection    = &Error{Kind: KindInputSelection}
	ErrAssembly          = &Error{Kind: KindAssembly}
	ErrSigning           = &Error{Kind: KindSigning}
	ErrCommit            = &Error{Kind: KindCommit}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

func (e *Error) withDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}
