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


package payload

import (
	"errors"
	"fmt"
)

var (
	ErrNoPayload      = errors.New("no embedded payload found")
	ErrEmptyPayload   = errors.New("payload is empty")
	ErrNoCurvePoint   = errors.New("no valid curve point for data packet")
	ErrInvalidAddress = errors.New("address is not valid")
)

// EncodingError is returned when a payload cannot be embedded
type EncodingError struct {
	Reason string
	Cause  error
}

func (e EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("encoding failed: %s: %s", e.Reason, e.Cause)
	}
	return "encoding failed: " + e.Reason
}

func (e EncodingError) Unwrap() error {
	return e.Cause
}

// NonCanonicalError is returned when an embedding decodes but is not the
// unique encoding of the payload it carries
type NonCanonicalError struct {
	Reason string
}

func (e NonCanonicalError) Error() string {
	return "non-canonical payload embedding: " + e.Reason
}
